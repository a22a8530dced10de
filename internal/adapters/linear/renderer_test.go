package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinfile/internal/adapters/linear"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRenderer_StepLifecycle(t *testing.T) {
	var buf bytes.Buffer
	r := linear.NewRenderer(&buf, termenv.Ascii)

	r.OnPlanEmit([]string{"requirements.txt", "dev.txt"})
	r.OnStepStart("root", "", "check", start)
	r.OnStepStart("child", "root", "check requirements.txt", start)
	r.OnStepLog("child", []byte("parsed 12 entries\nchecked "))
	r.OnStepLog("child", []byte("12 rules\n"))
	r.OnStepComplete("child", start.Add(15*time.Millisecond), nil)
	r.OnStepComplete("root", start.Add(20*time.Millisecond), errors.New("1 manifest failed"))
	require.NoError(t, r.Flush())

	expected := "Planning 2 manifest(s): requirements.txt, dev.txt\n" +
		"[check] started\n" +
		"  [check requirements.txt] started\n" +
		"  [check requirements.txt] parsed 12 entries\n" +
		"  [check requirements.txt] checked 12 rules\n" +
		"  [check requirements.txt] ✓ done in 15ms\n" +
		"[check] ✗ failed after 20ms: 1 manifest failed\n"
	assert.Equal(t, expected, buf.String())
}

func TestRenderer_PartialLineFlushedOnComplete(t *testing.T) {
	var buf bytes.Buffer
	r := linear.NewRenderer(&buf, termenv.Ascii)

	r.OnStepStart("s", "", "fmt", start)
	r.OnStepLog("s", []byte("partial"))
	assert.NotContains(t, buf.String(), "partial")

	r.OnStepComplete("s", start, nil)
	assert.Contains(t, buf.String(), "[fmt] partial\n")
}

func TestRenderer_FlushPendingSteps(t *testing.T) {
	var buf bytes.Buffer
	r := linear.NewRenderer(&buf, termenv.Ascii)

	r.OnStepStart("s", "", "order", start)
	r.OnStepLog("s", []byte("still running"))
	require.NoError(t, r.Flush())

	assert.Contains(t, buf.String(), "[order] still running\n")
}

func TestRenderer_UnknownSpan(t *testing.T) {
	var buf bytes.Buffer
	r := linear.NewRenderer(&buf, termenv.Ascii)

	r.OnStepLog("missing", []byte("ignored\n"))
	r.OnStepComplete("missing", start, nil)

	assert.Empty(t, buf.String())
}

func TestRenderer_ANSI(t *testing.T) {
	var buf bytes.Buffer
	r := linear.NewRenderer(&buf, termenv.ANSI)

	r.OnStepStart("s", "", "check", start)
	r.OnStepComplete("s", start, nil)

	assert.Contains(t, buf.String(), "\x1b[")
}
