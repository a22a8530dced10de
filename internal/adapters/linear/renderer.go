// Package linear provides a synchronous, line-buffered trace renderer.
package linear

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/pinfile/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer as chronological log lines.
// Nested steps are indented under their parent.
type Renderer struct {
	w      io.Writer
	output *termenv.Output

	mu    sync.Mutex
	steps map[string]*stepState
}

type stepState struct {
	name      string
	depth     int
	startTime time.Time
	buf       bytes.Buffer
}

// NewRenderer creates a new Renderer writing to w with the given color profile.
func NewRenderer(w io.Writer, profile termenv.Profile) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	return &Renderer{
		w:      w,
		output: termenv.NewOutput(w, termenv.WithProfile(profile)),
		steps:  make(map[string]*stepState),
	}
}

// OnPlanEmit prints the manifests about to be processed.
func (r *Renderer) OnPlanEmit(manifests []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.w, "Planning %d manifest(s): %s\n", len(manifests), strings.Join(manifests, ", "))
}

// OnStepStart prints a step start message.
func (r *Renderer) OnStepStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	depth := 0
	if parent, ok := r.steps[parentID]; ok {
		depth = parent.depth + 1
	}
	step := &stepState{name: name, depth: depth, startTime: startTime}
	r.steps[spanID] = step

	_, _ = fmt.Fprintf(r.w, "%s started\n", r.prefixLocked(step))
}

// OnStepLog buffers output and prints complete lines with the step prefix.
func (r *Renderer) OnStepLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}

	step.buf.Write(data)
	for {
		idx := bytes.IndexByte(step.buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := step.buf.Next(idx + 1)
		r.printLineLocked(step, line)
	}
}

// OnStepComplete flushes the step's partial line and prints its outcome.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}
	r.flushStepLocked(step)

	duration := endTime.Sub(step.startTime)
	prefix := r.prefixLocked(step)
	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.w, "%s %s failed after %v: %v\n", prefix, symbol, duration, err)
	} else {
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.w, "%s %s done in %v\n", prefix, symbol, duration)
	}

	delete(r.steps, spanID)
}

// Flush prints the partial lines of steps that have not completed.
func (r *Renderer) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, step := range r.steps {
		r.flushStepLocked(step)
	}
	return nil
}

// flushStepLocked must be called with r.mu held.
func (r *Renderer) flushStepLocked(step *stepState) {
	if step.buf.Len() > 0 {
		r.printLineLocked(step, step.buf.Bytes())
		step.buf.Reset()
	}
}

// printLineLocked must be called with r.mu held.
func (r *Renderer) printLineLocked(step *stepState, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s %s\n", r.prefixLocked(step), line)
}

func (r *Renderer) prefixLocked(step *stepState) string {
	label := r.output.String(fmt.Sprintf("[%s]", step.name)).Faint().String()
	return strings.Repeat("  ", step.depth) + label
}
