// Package checker validates manifests against the pinning rules.
package checker

import (
	"errors"
	"fmt"

	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/zerr"
)

// Options configures a check.
type Options struct {
	// Severities overrides the default severity of rules. Rules set to off are skipped.
	Severities map[domain.Rule]domain.Severity
	// Ignore reports packages the tree rules leave alone, such as packaging tools.
	Ignore func(name string) bool
}

// Checker runs the rules over a manifest.
type Checker struct{}

// New creates a new Checker.
func New() *Checker {
	return &Checker{}
}

// Check validates m. The tree rules run only when graph is non-nil.
// The graph is read but never modified.
func (c *Checker) Check(m *domain.Manifest, graph *domain.Graph, opts Options) domain.Report {
	r := &run{
		manifest:   m,
		severities: domain.DefaultSeverities(),
		ignore:     opts.Ignore,
	}
	for rule, sev := range opts.Severities {
		r.severities[rule] = sev
	}
	if r.ignore == nil {
		r.ignore = func(string) bool { return false }
	}

	r.checkLines()
	r.checkHeader()
	if graph != nil {
		r.checkTree(graph)
	}

	report := domain.Report{
		Path:       m.Path,
		Violations: r.violations,
		Stats:      m.Stats(),
	}
	report.Sort()
	return report
}

type run struct {
	manifest   *domain.Manifest
	severities map[domain.Rule]domain.Severity
	ignore     func(string) bool
	violations []domain.Violation
}

func (r *run) enabled(rule domain.Rule) bool {
	return r.severities[rule] != domain.SeverityOff
}

func (r *run) report(rule domain.Rule, line int, pkg, format string, args ...any) {
	if !r.enabled(rule) {
		return
	}
	r.violations = append(r.violations, domain.Violation{
		Line:     line,
		Rule:     rule,
		Severity: r.severities[rule],
		Message:  fmt.Sprintf(format, args...),
		Package:  pkg,
	})
}

// checkLines runs the rules that look at single lines and at repeated pins.
func (r *run) checkLines() {
	first := make(map[string]domain.Entry)

	for _, e := range r.manifest.Entries {
		switch e.Kind {
		case domain.KindInvalid:
			r.report(domain.RuleSyntax, e.Line, "", "unrecognised line %q, expected name==version or git+<url>@<commit>",
				e.Pin())
			continue
		case domain.KindBlank, domain.KindComment:
			continue
		case domain.KindRegistry, domain.KindVCS:
		}

		if e.Comment != "" {
			r.report(domain.RuleInlineComment, e.Line, e.Name, "inline comment after %s, move it to its own line", e.Name)
		}
		if e.Spaced {
			r.report(domain.RuleSpacing, e.Line, e.Name, "unexpected whitespace in %q, expected %q", e.Raw, e.Pin())
		}
		if e.Kind == domain.KindVCS {
			switch {
			case e.Ref == "":
				r.report(domain.RuleVCSUnpinned, e.Line, e.Name, "%s is not pinned to a commit", e.Name)
			case !domain.IsCommitHash(e.Ref):
				r.report(domain.RuleVCSRef, e.Line, e.Name, "%s is pinned to %q, which is not a commit hash", e.Name, e.Ref)
			}
		}

		prev, seen := first[e.Key()]
		if !seen {
			first[e.Key()] = e
			continue
		}
		if prev.Target() == e.Target() {
			r.report(domain.RuleDuplicate, e.Line, e.Name, "%s is already pinned on line %d", e.Name, prev.Line)
		} else {
			r.report(domain.RuleConflict, e.Line, e.Name, "%s is pinned as %s, but line %d pins %s",
				e.Name, e.Pin(), prev.Line, prev.Pin())
		}
	}
}

func (r *run) checkHeader() {
	if len(r.manifest.Header()) == 0 {
		r.report(domain.RuleHeader, 1, "", "manifest does not start with a comment block")
	}
}

// checkTree runs the rules that compare the pins with the installed tree.
func (r *run) checkTree(graph *domain.Graph) {
	pins := make(map[domain.InternedString]domain.Entry)
	var order []domain.InternedString
	for _, e := range r.manifest.Pins() {
		key := domain.PackageKey(e.Name)
		if _, seen := pins[key]; seen {
			continue
		}
		pins[key] = e
		order = append(order, key)
	}

	r.checkVersions(graph, pins, order)
	r.checkUnpinned(graph, pins, order)

	if err := graph.Validate(); err != nil {
		var zErr *zerr.Error
		if errors.As(err, &zErr) && zErr.Message() == domain.ErrCycleDetected.Error() {
			cycle, _ := zErr.Metadata()["cycle"].(string)
			r.report(domain.RuleCycle, 0, "", "dependency tree contains a cycle: %s", cycle)
			return
		}
	}
	r.checkOrder(graph, pins, order)
}

func (r *run) checkVersions(graph *domain.Graph, pins map[domain.InternedString]domain.Entry, order []domain.InternedString) {
	for _, key := range order {
		e := pins[key]
		if e.Kind != domain.KindRegistry {
			continue
		}
		pkg, ok := graph.Get(key)
		if !ok || pkg.Missing || pkg.Version == e.Version {
			continue
		}
		r.report(domain.RuleVersionMismatch, e.Line, e.Name, "%s is pinned at %s but %s is installed",
			e.Name, e.Version, pkg.Version)
	}
}

// checkUnpinned reports packages reachable from the pins that are not pinned themselves.
func (r *run) checkUnpinned(graph *domain.Graph, pins map[domain.InternedString]domain.Entry, order []domain.InternedString) {
	type item struct {
		key    domain.InternedString
		parent string
		line   int
	}

	seen := make(map[domain.InternedString]bool)
	var queue []item
	for _, key := range order {
		seen[key] = true
		queue = append(queue, item{key: key, parent: pins[key].Name, line: pins[key].Line})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, dep := range graph.Dependencies(cur.key) {
			if seen[dep] {
				continue
			}
			seen[dep] = true

			name := dep.String()
			if pkg, ok := graph.Get(dep); ok {
				name = pkg.Name
			}
			if r.ignore(name) {
				continue
			}
			r.report(domain.RuleUnpinnedDependency, cur.line, name, "%s is required by %s but not pinned", name, cur.parent)
			queue = append(queue, item{key: dep, parent: name, line: cur.line})
		}
	}
}

// checkOrder reports pins that precede a pinned package they depend on.
// Dependencies are followed through packages that are not pinned.
func (r *run) checkOrder(graph *domain.Graph, pins map[domain.InternedString]domain.Entry, order []domain.InternedString) {
	for _, key := range order {
		e := pins[key]
		seen := map[domain.InternedString]bool{key: true}
		stack := append([]domain.InternedString(nil), graph.Dependencies(key)...)

		for len(stack) > 0 {
			dep := stack[0]
			stack = stack[1:]
			if seen[dep] {
				continue
			}
			seen[dep] = true

			pinned, ok := pins[dep]
			if !ok {
				stack = append(stack, graph.Dependencies(dep)...)
				continue
			}
			if pinned.Line > e.Line {
				r.report(domain.RuleOrder, e.Line, e.Name, "%s must come after its dependency %s (line %d)",
					e.Name, pinned.Name, pinned.Line)
			}
		}
	}
}
