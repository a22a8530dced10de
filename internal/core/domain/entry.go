package domain

import (
	"regexp"
	"strings"
)

// EntryKind classifies a single manifest line.
type EntryKind uint8

const (
	// KindBlank is an empty or whitespace-only line.
	KindBlank EntryKind = iota
	// KindComment is a line starting with '#'.
	KindComment
	// KindRegistry is a "name==version" pin resolved from a package index.
	KindRegistry
	// KindVCS is a "git+<url>@<ref>" pin resolved from source control.
	KindVCS
	// KindInvalid is any other line.
	KindInvalid
)

var kindNames = map[EntryKind]string{
	KindBlank:    "blank",
	KindComment:  "comment",
	KindRegistry: "registry",
	KindVCS:      "vcs",
	KindInvalid:  "invalid",
}

// String returns the lower-case name of the kind.
func (k EntryKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k EntryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EntryKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	*k = KindInvalid
	return nil
}

// IsPin reports whether the kind names a dependency.
func (k EntryKind) IsPin() bool {
	return k == KindRegistry || k == KindVCS
}

// Entry is one line of a manifest.
type Entry struct {
	// Line is the 1-based line number in the source file. Zero for generated entries.
	Line int `json:"line,omitzero"`

	// Raw is the line exactly as read, without the line terminator.
	Raw string `json:"raw,omitzero"`

	Kind EntryKind `json:"kind"`

	// Name is the package name as written, or derived from the URL for VCS pins.
	Name string `json:"name,omitzero"`

	// Version is the pinned version of a registry pin.
	Version string `json:"version,omitzero"`

	// URL is the "git+..." reference of a VCS pin without its ref and fragment.
	URL string `json:"url,omitzero"`

	// Ref is the text after '@' of a VCS pin, normally a commit hash.
	Ref string `json:"ref,omitzero"`

	// Fragment is the text after '#' of a VCS pin, e.g. "egg=taxtastic".
	Fragment string `json:"fragment,omitzero"`

	// Comment is the text of an inline comment following a pin.
	Comment string `json:"comment,omitzero"`

	// Spaced records surrounding whitespace or spaces around "==".
	Spaced bool `json:"spaced,omitzero"`
}

// Key returns the normalised package name.
func (e *Entry) Key() string {
	return NormalizeName(e.Name)
}

// Target returns what the pin resolves to: the version or the VCS location.
// Two pins of the same package with equal targets are duplicates, otherwise they conflict.
func (e *Entry) Target() string {
	switch e.Kind {
	case KindRegistry:
		return "==" + e.Version
	case KindVCS:
		return e.URL + "@" + e.Ref
	default:
		return ""
	}
}

// Resolved returns the human-facing version of the pin: the version or the ref.
func (e *Entry) Resolved() string {
	if e.Kind == KindVCS {
		return e.Ref
	}
	return e.Version
}

// Pin returns the canonical text of the line.
// Non-pin lines return their raw text with surrounding whitespace removed.
func (e *Entry) Pin() string {
	switch e.Kind {
	case KindRegistry:
		return e.Name + "==" + e.Version
	case KindVCS:
		var b strings.Builder
		b.WriteString(e.URL)
		if e.Ref != "" {
			b.WriteString("@")
			b.WriteString(e.Ref)
		}
		if e.Fragment != "" {
			b.WriteString("#")
			b.WriteString(e.Fragment)
		}
		return b.String()
	default:
		return strings.TrimSpace(e.Raw)
	}
}

var (
	separatorRun = regexp.MustCompile(`[-_.]+`)
	commitHash   = regexp.MustCompile(`^(?:[0-9a-f]{7,40}|[0-9a-f]{64})$`)
)

// NormalizeName returns the comparable form of a package name:
// lower case with runs of '-', '_' and '.' collapsed to a single '-'.
func NormalizeName(name string) string {
	return separatorRun.ReplaceAllString(strings.ToLower(name), "-")
}

// IsCommitHash reports whether ref is an abbreviated or full hex commit id.
func IsCommitHash(ref string) bool {
	return commitHash.MatchString(strings.ToLower(ref))
}
