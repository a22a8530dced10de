// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/pinfile/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Plus    = "+"
	Minus   = "-"
	Tilde   = "~"
)

// Severity returns the icon and color used to present a violation.
func Severity(sev domain.Severity) (string, lipgloss.Color) {
	switch sev {
	case domain.SeverityError:
		return Cross, Red
	case domain.SeverityWarning:
		return Warning, Yellow
	default:
		return Tilde, Slate
	}
}
