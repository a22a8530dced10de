package domain

// Manifest is a parsed dependency manifest.
// Entries keep every source line, so a manifest can be written back without loss.
type Manifest struct {
	Path    string  `json:"path"`
	Entries []Entry `json:"entries"`
}

// Pins returns the registry and VCS entries in file order.
func (m *Manifest) Pins() []Entry {
	pins := make([]Entry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if e.Kind.IsPin() {
			pins = append(pins, e)
		}
	}
	return pins
}

// Header returns the leading block of comment lines.
func (m *Manifest) Header() []Entry {
	var header []Entry
	for _, e := range m.Entries {
		if e.Kind != KindComment {
			break
		}
		header = append(header, e)
	}
	return header
}

// Stats summarises the composition of a manifest.
type Stats struct {
	Registry int `json:"registry"`
	VCS      int `json:"vcs"`
	Comments int `json:"comments"`
	Invalid  int `json:"invalid"`
}

// Stats counts the entries by kind.
func (m *Manifest) Stats() Stats {
	var s Stats
	for _, e := range m.Entries {
		switch e.Kind {
		case KindRegistry:
			s.Registry++
		case KindVCS:
			s.VCS++
		case KindComment:
			s.Comments++
		case KindInvalid:
			s.Invalid++
		case KindBlank:
		}
	}
	return s
}
