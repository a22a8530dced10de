package ports

import "time"

// Renderer presents the progress of an operation.
// Spans reach it through the telemetry bridge, so the app never calls it directly.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnPlanEmit is called with the manifests an operation will process.
	OnPlanEmit(manifests []string)

	// OnStepStart is called when a span begins.
	// parentID is empty for root spans.
	OnStepStart(spanID, parentID, name string, startTime time.Time)

	// OnStepLog is called when a span emits output.
	OnStepLog(spanID string, data []byte)

	// OnStepComplete is called when a span ends. err is nil on success.
	OnStepComplete(spanID string, endTime time.Time, err error)

	// Flush writes any buffered output.
	Flush() error
}
