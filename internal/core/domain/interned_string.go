package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// Package keys repeat across graphs, manifests and inventories, so they are interned.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// PackageKey interns the normalised form of a package name, so "Pandas",
// "pandas" and "PANDAS" share one key.
func PackageKey(name string) InternedString {
	return NewInternedString(NormalizeName(name))
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
