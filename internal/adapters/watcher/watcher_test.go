package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinfile/internal/adapters/watcher"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.uber.org/goleak"
)

const waitTimeout = 5 * time.Second

func collect(w *watcher.Watcher) <-chan ports.WatchEvent {
	out := make(chan ports.WatchEvent, 16)
	go func() {
		defer close(out)
		for ev := range w.Events() {
			out <- ev
		}
	}()
	return out
}

func TestWatcher_ReportsWatchedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "requirements.txt")
	otherPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(manifestPath, []byte("six==1.15.0\n"), 0o600))

	w, err := watcher.NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), []string{manifestPath}))
	events := collect(w)

	require.NoError(t, os.WriteFile(otherPath, []byte("ignored\n"), 0o600))
	require.NoError(t, os.WriteFile(manifestPath, []byte("six==1.16.0\n"), 0o600))

	select {
	case ev := <-events:
		assert.Equal(t, []string{manifestPath}, ev.Paths)
	case <-time.After(waitTimeout):
		t.Fatal("no event for the watched file")
	}

	require.NoError(t, w.Stop())
	for range events {
		// Drain until the iterator ends.
	}
}

func TestWatcher_ContextCancelEndsEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	w, err := watcher.NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx, []string{path}))
	events := collect(w)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(waitTimeout):
		t.Fatal("events did not end after cancel")
	}
	require.NoError(t, w.Stop())
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := watcher.NewWatcher(watcher.DefaultDebounceWindow)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	for range w.Events() {
		t.Fatal("no events expected")
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.NewWatcher(watcher.DefaultDebounceWindow)
	require.NoError(t, err)
	defer w.Stop() //nolint:errcheck // test cleanup

	err = w.Start(context.Background(), []string{filepath.Join(t.TempDir(), "missing", "requirements.txt")})
	require.Error(t, err)
}
