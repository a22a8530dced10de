package domain

import (
	"cmp"
	"slices"

	"go.trai.ch/zerr"
)

// Severity is how a rule violation affects the outcome of a check.
type Severity uint8

const (
	// SeverityOff disables a rule.
	SeverityOff Severity = iota
	// SeverityWarning reports a violation without failing the check.
	SeverityWarning
	// SeverityError fails the check.
	SeverityError
)

var severityNames = [...]string{"off", "warning", "error"}

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

// ParseSeverity converts a config value to a Severity.
func ParseSeverity(s string) (Severity, error) {
	for i, name := range severityNames {
		if name == s {
			return Severity(i), nil
		}
	}
	return SeverityOff, zerr.With(ErrInvalidSeverity, "severity", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Rule identifies one check performed on a manifest.
type Rule string

// Rules checked on every manifest.
const (
	RuleSyntax        Rule = "syntax"
	RuleInlineComment Rule = "inline-comment"
	RuleSpacing       Rule = "spacing"
	RuleVCSUnpinned   Rule = "vcs-unpinned"
	RuleVCSRef        Rule = "vcs-ref"
	RuleDuplicate     Rule = "duplicate"
	RuleConflict      Rule = "conflict"
	RuleHeader        Rule = "header"
)

// Rules that need a dependency tree.
const (
	RuleOrder              Rule = "order"
	RuleUnpinnedDependency Rule = "unpinned-dependency"
	RuleVersionMismatch    Rule = "version-mismatch"
	RuleCycle              Rule = "cycle"
)

// DefaultSeverities returns the severity of every known rule when not configured.
func DefaultSeverities() map[Rule]Severity {
	return map[Rule]Severity{
		RuleSyntax:             SeverityError,
		RuleInlineComment:      SeverityError,
		RuleSpacing:            SeverityWarning,
		RuleVCSUnpinned:        SeverityError,
		RuleVCSRef:             SeverityError,
		RuleDuplicate:          SeverityWarning,
		RuleConflict:           SeverityError,
		RuleHeader:             SeverityOff,
		RuleOrder:              SeverityError,
		RuleUnpinnedDependency: SeverityWarning,
		RuleVersionMismatch:    SeverityWarning,
		RuleCycle:              SeverityError,
	}
}

// KnownRule reports whether r names a rule.
func KnownRule(r Rule) bool {
	_, ok := DefaultSeverities()[r]
	return ok
}

// Violation is a single rule failure.
type Violation struct {
	Line     int      `json:"line,omitzero"`
	Rule     Rule     `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Package  string   `json:"package,omitzero"`
}

// Report is the result of checking one manifest.
type Report struct {
	Path       string      `json:"path"`
	Violations []Violation `json:"violations"`
	Stats      Stats       `json:"stats"`
}

// Sort orders violations by line, then rule, then message.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Violations, func(a, b Violation) int {
		return cmp.Or(
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Rule, b.Rule),
			cmp.Compare(a.Message, b.Message),
		)
	})
}

// Count returns the number of violations with the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any violation has error severity.
func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Failed reports whether the report fails a check. In strict mode warnings fail too.
func (r *Report) Failed(strict bool) bool {
	if strict {
		return len(r.Violations) > 0
	}
	return r.HasErrors()
}
