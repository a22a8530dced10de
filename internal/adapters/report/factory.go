// Package report writes check reports and manifest diffs.
package report

import (
	"fmt"

	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ReporterFactory = (*Factory)(nil)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists every supported format name.
var Formats = []string{FormatText, FormatJSON, FormatMarkdown, FormatHTML}

// Factory implements ports.ReporterFactory.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Reporter returns the reporter for format. An empty format means text.
func (f *Factory) Reporter(format string) (ports.Reporter, error) {
	switch format {
	case "", FormatText:
		return NewText(), nil
	case FormatJSON:
		return NewJSON(), nil
	case FormatMarkdown, "md":
		return NewMarkdown(), nil
	case FormatHTML:
		return NewHTML(), nil
	default:
		return nil, zerr.With(domain.ErrUnsupportedFormat, "format", format)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func problemSummary(r *domain.Report) string {
	return plural(r.Count(domain.SeverityError), "error") + ", " + plural(r.Count(domain.SeverityWarning), "warning")
}

func diffSummary(d *domain.Diff) string {
	return fmt.Sprintf("%d added, %d removed, %d changed, %d moved",
		len(d.Added), len(d.Removed), len(d.Changed), len(d.Moved))
}

func pinCount(r *domain.Report) int {
	return r.Stats.Registry + r.Stats.VCS
}
