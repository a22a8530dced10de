package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/ui/output"
	"go.trai.ch/pinfile/internal/ui/style"
)

const (
	lineWidth     = 4
	severityWidth = 7
	ruleWidth     = 19
)

// Text writes reports for a terminal.
// Colors follow the terminal's capabilities and NO_COLOR.
type Text struct{}

// NewText creates a new Text reporter.
func NewText() *Text {
	return &Text{}
}

// WriteReports writes each report as a block, separated by blank lines.
func (t *Text) WriteReports(w io.Writer, reports []domain.Report) error {
	r := output.NewRenderer(w)
	bold := r.NewStyle().Bold(true)
	faint := r.NewStyle().Foreground(style.Slate)
	ok := r.NewStyle().Foreground(style.Green)

	var sb strings.Builder
	for i := range reports {
		report := &reports[i]
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(bold.Render(report.Path))
		sb.WriteString("\n")

		if len(report.Violations) == 0 {
			sb.WriteString("  " + ok.Render(style.Check) + " no problems (" + plural(pinCount(report), "pin") + ")\n")
			continue
		}

		for _, v := range report.Violations {
			icon, color := style.Severity(v.Severity)
			sev := r.NewStyle().Foreground(color)

			line := "-"
			if v.Line > 0 {
				line = strconv.Itoa(v.Line)
			}

			sb.WriteString("  ")
			sb.WriteString(padLeft(line, lineWidth))
			sb.WriteString("  ")
			sb.WriteString(sev.Render(icon))
			sb.WriteString(" ")
			sb.WriteString(padRight(sev.Render(v.Severity.String()), v.Severity.String(), severityWidth))
			sb.WriteString("  ")
			sb.WriteString(padRight(faint.Render(string(v.Rule)), string(v.Rule), ruleWidth))
			sb.WriteString("  ")
			sb.WriteString(v.Message)
			sb.WriteString("\n")
		}
		sb.WriteString("  " + problemSummary(report) + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteDiff writes a diff in a unified-diff-like layout.
func (t *Text) WriteDiff(w io.Writer, d *domain.Diff) error {
	r := output.NewRenderer(w)
	added := r.NewStyle().Foreground(style.Green)
	removed := r.NewStyle().Foreground(style.Red)
	changed := r.NewStyle().Foreground(style.Yellow)
	moved := r.NewStyle().Foreground(style.Iris)

	var sb strings.Builder
	sb.WriteString(removed.Render("--- "+d.From) + "\n")
	sb.WriteString(added.Render("+++ "+d.To) + "\n")

	if d.Empty() && len(d.Moved) == 0 {
		sb.WriteString("no differences\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	for _, c := range d.Added {
		sb.WriteString(added.Render(style.Plus+" "+c.To) + "\n")
	}
	for _, c := range d.Removed {
		sb.WriteString(removed.Render(style.Minus+" "+c.From) + "\n")
	}
	for _, c := range d.Changed {
		sb.WriteString(changed.Render(style.Tilde+" "+c.Name) + " " + c.From + " " + style.Arrow + " " + c.To + "\n")
	}
	for _, name := range d.Moved {
		sb.WriteString(moved.Render(style.Arrow+" "+name) + " moved\n")
	}
	sb.WriteString(diffSummary(d) + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func padLeft(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// padRight pads a styled string by the width of its unstyled text.
func padRight(styled, raw string, width int) string {
	if n := width - lipgloss.Width(raw); n > 0 {
		return styled + strings.Repeat(" ", n)
	}
	return styled
}
