package ports

import (
	"io"

	"go.trai.ch/pinfile/internal/core/domain"
)

// Reporter writes check reports and diffs in one output format.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// WriteReports writes the reports of one check run.
	WriteReports(w io.Writer, reports []domain.Report) error

	// WriteDiff writes the difference between two manifests.
	WriteDiff(w io.Writer, d *domain.Diff) error
}

// ReporterFactory selects a Reporter by format name.
type ReporterFactory interface {
	// Reporter returns the reporter for a format: text, json, markdown or html.
	Reporter(format string) (Reporter, error)
}
