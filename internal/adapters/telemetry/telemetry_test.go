package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinfile/internal/adapters/telemetry"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/pinfile/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_ForwardsSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	var rootID, childID string
	gomock.InOrder(
		renderer.EXPECT().OnStepStart(gomock.Any(), "", "check", gomock.Any()).
			Do(func(id, _, _ string, _ any) { rootID = id }),
		renderer.EXPECT().OnPlanEmit([]string{"requirements.txt"}),
		renderer.EXPECT().OnStepStart(gomock.Any(), gomock.Any(), "check requirements.txt", gomock.Any()).
			Do(func(id, parent, _ string, _ any) {
				childID = id
				assert.Equal(t, rootID, parent)
			}),
		renderer.EXPECT().OnStepLog(gomock.Any(), []byte("resolving\n")).
			Do(func(id string, _ []byte) { assert.Equal(t, childID, id) }),
		renderer.EXPECT().OnStepLog(gomock.Any(), []byte("12 pins\n")).
			Do(func(id string, _ []byte) { assert.Equal(t, childID, id) }),
		renderer.EXPECT().OnStepComplete(gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(id string, _ any, err error) {
				assert.Equal(t, childID, id)
				require.EqualError(t, err, "conflict on line 3")
			}),
		renderer.EXPECT().OnStepComplete(gomock.Any(), gomock.Any(), nil).
			Do(func(id string, _ any, _ error) { assert.Equal(t, rootID, id) }),
		renderer.EXPECT().Flush().Return(nil),
	)

	tracer := telemetry.NewOTelTracer("pinfile-test", renderer)
	ctx := context.Background()

	ctx, root := tracer.Start(ctx, "check")
	tracer.EmitPlan(ctx, []string{"requirements.txt"})

	_, child := tracer.Start(ctx, "check requirements.txt", ports.WithManifest("requirements.txt"))
	child.SetAttribute(ports.AttrPins, 12)
	child.SetAttribute("tree", "pipdeptree.json")
	n, err := child.Write([]byte("resolving\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	child.RecordError(errors.New("conflict on line 3"))
	child.End()

	root.RecordError(nil)
	root.End()

	require.NoError(t, tracer.Shutdown(ctx))
}

func TestBridge_NilRenderer(t *testing.T) {
	b := telemetry.NewBridge(nil)
	require.NoError(t, b.ForceFlush(context.Background()))
	require.NoError(t, b.Shutdown(context.Background()))
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "check", ports.WithManifest("requirements.txt"))
	assert.Equal(t, ctx, got)

	tracer.EmitPlan(ctx, []string{"requirements.txt"})
	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()

	require.NoError(t, tracer.Shutdown(ctx))
}
