package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan signals which manifests are about to be processed.
	EmitPlan(ctx context.Context, manifests []string)
	// Shutdown flushes pending spans.
	Shutdown(ctx context.Context) error
}

// Span represents a unit of work.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// Count attributes. A trace renderer prints them as "<n> <key>" when the span ends.
const (
	AttrPackages   = "packages"
	AttrPins       = "pins"
	AttrViolations = "violations"
)

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Manifest is the manifest path the span works on.
	Manifest string
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithManifest tags a span with the manifest it works on.
func WithManifest(path string) SpanOption {
	return func(c *SpanConfig) {
		c.Manifest = path
	}
}
