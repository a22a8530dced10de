package app

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/pinfile/internal/ui/output"
	"go.trai.ch/pinfile/internal/ui/style"
	"go.trai.ch/zerr"
)

// writeTable prints rows under a bold header, styled for the output's color profile.
func (a *App) writeTable(headers []string, rows [][]string) error {
	r := output.NewRenderer(a.stdout)
	header := r.NewStyle().Bold(true).Foreground(style.Iris).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(style.Slate)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	if _, err := fmt.Fprintln(a.stdout, t.Render()); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}
	return nil
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}
	return nil
}
