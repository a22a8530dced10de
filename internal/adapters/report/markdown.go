package report

import (
	"io"
	"strconv"
	"strings"

	"go.trai.ch/pinfile/internal/core/domain"
)

// Markdown writes reports as GitHub flavoured markdown, for pull request comments.
type Markdown struct{}

// NewMarkdown creates a new Markdown reporter.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// WriteReports writes one section with a violation table per report.
func (m *Markdown) WriteReports(w io.Writer, reports []domain.Report) error {
	var sb strings.Builder
	for i := range reports {
		report := &reports[i]
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## `" + report.Path + "`\n\n")

		if len(report.Violations) == 0 {
			sb.WriteString("No problems found (" + plural(pinCount(report), "pin") + ").\n")
			continue
		}

		sb.WriteString("| Line | Severity | Rule | Message |\n")
		sb.WriteString("| ---: | --- | --- | --- |\n")
		for _, v := range report.Violations {
			line := "-"
			if v.Line > 0 {
				line = strconv.Itoa(v.Line)
			}
			sb.WriteString("| " + line + " | " + v.Severity.String() + " | `" + string(v.Rule) + "` | " +
				escapeCell(v.Message) + " |\n")
		}
		sb.WriteString("\n**" + problemSummary(report) + "**\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteDiff writes the diff as lists and a change table.
func (m *Markdown) WriteDiff(w io.Writer, d *domain.Diff) error {
	var sb strings.Builder
	sb.WriteString("## `" + d.From + "` → `" + d.To + "`\n\n")

	if d.Empty() && len(d.Moved) == 0 {
		sb.WriteString("No differences.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	if len(d.Added) > 0 {
		sb.WriteString("### Added\n\n")
		for _, c := range d.Added {
			sb.WriteString("- `" + c.To + "`\n")
		}
		sb.WriteString("\n")
	}
	if len(d.Removed) > 0 {
		sb.WriteString("### Removed\n\n")
		for _, c := range d.Removed {
			sb.WriteString("- `" + c.From + "`\n")
		}
		sb.WriteString("\n")
	}
	if len(d.Changed) > 0 {
		sb.WriteString("### Changed\n\n")
		sb.WriteString("| Package | From | To |\n")
		sb.WriteString("| --- | --- | --- |\n")
		for _, c := range d.Changed {
			sb.WriteString("| `" + c.Name + "` | " + escapeCell(c.From) + " | " + escapeCell(c.To) + " |\n")
		}
		sb.WriteString("\n")
	}
	if len(d.Moved) > 0 {
		sb.WriteString("### Moved\n\n")
		for _, name := range d.Moved {
			sb.WriteString("- `" + name + "`\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("_" + diffSummary(d) + "_\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
