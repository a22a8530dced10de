// Package sorter orders, generates and formats manifests.
package sorter

import (
	"slices"
	"strings"

	"go.trai.ch/pinfile/internal/core/domain"
)

// GenerateOptions configures Generate.
type GenerateOptions struct {
	// Header lines are written first. A '#' is prepended where missing.
	Header []string
	// Exclude lists packages left out of the manifest.
	Exclude []string
	// VCS maps a normalised package name to the pin that replaces its registry pin.
	VCS map[string]domain.Entry
}

// Sorter rewrites manifests.
type Sorter struct{}

// New creates a new Sorter.
func New() *Sorter {
	return &Sorter{}
}

// group is a pin together with the lines that travel with it.
type group struct {
	entries []domain.Entry
}

// Reorder returns a copy of m with its pins in dependency order.
// Pins that are free to move keep their original relative order. Comments,
// blanks and unparsable lines move with the pin that follows them, the header
// block stays first and trailing lines stay last. Repeated pins of a package
// are placed after its first pin.
func (s *Sorter) Reorder(m *domain.Manifest, graph *domain.Graph) (*domain.Manifest, error) {
	entries := m.Entries
	head := 0
	for head < len(entries) && entries[head].Kind == domain.KindComment {
		head++
	}
	if head > 0 {
		for head < len(entries) && entries[head].Kind == domain.KindBlank {
			head++
		}
	}

	groups := make(map[domain.InternedString]*group)
	var keys []domain.InternedString
	var pending []domain.Entry
	for _, e := range entries[head:] {
		if !e.Kind.IsPin() {
			pending = append(pending, e)
			continue
		}
		key := domain.PackageKey(e.Name)
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			keys = append(keys, key)
		}
		g.entries = append(g.entries, pending...)
		g.entries = append(g.entries, e)
		pending = nil
	}

	rank := make(map[domain.InternedString]int, len(keys))
	for i, k := range keys {
		rank[k] = i
	}
	order, err := graph.SortBy(keys, func(k domain.InternedString) int { return rank[k] })
	if err != nil {
		return nil, err
	}

	out := &domain.Manifest{Path: m.Path, Entries: make([]domain.Entry, 0, len(entries))}
	out.Entries = append(out.Entries, entries[:head]...)
	for _, k := range order {
		out.Entries = append(out.Entries, groups[k].entries...)
	}
	out.Entries = append(out.Entries, pending...)
	renumber(out)
	return out, nil
}

// Generate builds a manifest that pins every installed package of graph in
// dependency order. Ties are broken by key.
func (s *Sorter) Generate(graph *domain.Graph, opts GenerateOptions) (*domain.Manifest, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[domain.NormalizeName(name)] = true
	}

	m := &domain.Manifest{}
	for _, line := range opts.Header {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			line = strings.TrimSpace("# " + line)
		}
		m.Entries = append(m.Entries, domain.Entry{Kind: domain.KindComment, Raw: line})
	}
	if len(m.Entries) > 0 {
		m.Entries = append(m.Entries, domain.Entry{Kind: domain.KindBlank})
	}

	for pkg := range graph.Walk() {
		key := pkg.Key.String()
		if pkg.Missing || excluded[key] {
			continue
		}
		if vcs, ok := opts.VCS[key]; ok {
			vcs.Raw = vcs.Pin()
			m.Entries = append(m.Entries, vcs)
			continue
		}
		e := domain.Entry{Kind: domain.KindRegistry, Name: pkg.Name, Version: pkg.Version}
		e.Raw = e.Pin()
		m.Entries = append(m.Entries, e)
	}

	if len(m.Entries) > 0 && m.Entries[len(m.Entries)-1].Kind == domain.KindBlank {
		m.Entries = m.Entries[:len(m.Entries)-1]
	}
	renumber(m)
	return m, nil
}

// Format returns the canonical form of m: pins without whitespace, inline
// comments moved to their own line above the pin, single blank lines between
// blocks and no repeated identical pins.
func (s *Sorter) Format(m *domain.Manifest) *domain.Manifest {
	out := &domain.Manifest{Path: m.Path, Entries: make([]domain.Entry, 0, len(m.Entries))}
	seen := make(map[string]bool)

	for _, e := range m.Entries {
		switch e.Kind {
		case domain.KindBlank:
			if n := len(out.Entries); n == 0 || out.Entries[n-1].Kind == domain.KindBlank {
				continue
			}
			out.Entries = append(out.Entries, domain.Entry{Kind: domain.KindBlank})
		case domain.KindComment, domain.KindInvalid:
			e.Raw = strings.TrimSpace(e.Raw)
			out.Entries = append(out.Entries, e)
		case domain.KindRegistry, domain.KindVCS:
			// A repeated pin goes away together with its inline comment.
			id := e.Key() + " " + e.Target()
			if seen[id] {
				continue
			}
			seen[id] = true
			if e.Comment != "" {
				out.Entries = append(out.Entries, domain.Entry{Kind: domain.KindComment, Raw: "# " + e.Comment})
			}
			e.Comment = ""
			e.Spaced = false
			e.Raw = e.Pin()
			out.Entries = append(out.Entries, e)
		}
	}

	for n := len(out.Entries); n > 0 && out.Entries[n-1].Kind == domain.KindBlank; n-- {
		out.Entries = out.Entries[:n-1]
	}
	renumber(out)
	return out
}

// Equal reports whether two manifests hold the same lines.
func Equal(a, b *domain.Manifest) bool {
	return slices.EqualFunc(a.Entries, b.Entries, func(x, y domain.Entry) bool {
		return x.Kind == y.Kind && x.Raw == y.Raw
	})
}

func renumber(m *domain.Manifest) {
	for i := range m.Entries {
		m.Entries[i].Line = i + 1
	}
}
