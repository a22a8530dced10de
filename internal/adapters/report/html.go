package report

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.trai.ch/pinfile/internal/core/domain"
)

// HTML renders the markdown report to an HTML fragment.
type HTML struct {
	markdown *Markdown
	md       goldmark.Markdown
}

// NewHTML creates a new HTML reporter.
func NewHTML() *HTML {
	return &HTML{
		markdown: NewMarkdown(),
		md:       goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// WriteReports writes the reports as HTML.
func (h *HTML) WriteReports(w io.Writer, reports []domain.Report) error {
	var src bytes.Buffer
	if err := h.markdown.WriteReports(&src, reports); err != nil {
		return err
	}
	return h.md.Convert(src.Bytes(), w)
}

// WriteDiff writes the diff as HTML.
func (h *HTML) WriteDiff(w io.Writer, d *domain.Diff) error {
	var src bytes.Buffer
	if err := h.markdown.WriteDiff(&src, d); err != nil {
		return err
	}
	return h.md.Convert(src.Bytes(), w)
}
