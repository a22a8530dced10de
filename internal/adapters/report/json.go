package report

import (
	"encoding/json"
	"io"

	"go.trai.ch/pinfile/internal/core/domain"
)

// JSON writes reports as indented JSON for other tools.
type JSON struct{}

// NewJSON creates a new JSON reporter.
func NewJSON() *JSON {
	return &JSON{}
}

// WriteReports writes the reports as a JSON array.
func (j *JSON) WriteReports(w io.Writer, reports []domain.Report) error {
	out := make([]domain.Report, len(reports))
	for i, r := range reports {
		if r.Violations == nil {
			r.Violations = []domain.Violation{}
		}
		out[i] = r
	}
	return encode(w, out)
}

// WriteDiff writes the diff as a JSON object.
func (j *JSON) WriteDiff(w io.Writer, d *domain.Diff) error {
	out := *d
	out.Added = nonNil(out.Added)
	out.Removed = nonNil(out.Removed)
	out.Changed = nonNil(out.Changed)
	out.Moved = nonNil(out.Moved)
	return encode(w, out)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
