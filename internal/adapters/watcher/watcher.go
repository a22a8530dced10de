package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is the default time window for coalescing file events.
const DefaultDebounceWindow = 100 * time.Millisecond

const eventChannelBuffer = 16

// relevantOps are the operations that change a watched file's content.
// Editors that save atomically produce Create or Rename instead of Write.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher implements ports.Watcher using fsnotify.
// It watches the parent directories of the given files and filters events
// down to the files themselves.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	files     map[string]struct{}
	events    chan ports.WatchEvent
	done      chan struct{}
	stopOnce  sync.Once
	started   bool
}

// NewWatcher creates a new file watcher coalescing bursts within window.
func NewWatcher(window time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	w := &Watcher{
		fsWatcher: fsWatcher,
		files:     make(map[string]struct{}),
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		done:      make(chan struct{}),
	}
	w.debouncer = NewDebouncer(window, w.emit)
	return w, nil
}

// Start begins watching the given files.
func (w *Watcher) Start(ctx context.Context, files []string) error {
	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", f)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", dir)
		}
	}

	w.started = true
	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.fsWatcher.Close()
		if w.started {
			<-w.done
		} else {
			close(w.done)
		}
	})
	return err
}

// Events returns an iterator of coalesced change batches.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for {
			select {
			case <-w.done:
				return
			case event := <-w.events:
				if !yield(event) {
					return
				}
			}
		}
	}
}

// emit hands a coalesced batch to Events unless the watcher has stopped.
func (w *Watcher) emit(paths []string) {
	select {
	case w.events <- ports.WatchEvent{Paths: paths}:
	case <-w.done:
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer w.debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			if _, watched := w.files[filepath.Clean(event.Name)]; watched {
				w.debouncer.Add(filepath.Clean(event.Name))
			}
		case _, ok := <-w.fsWatcher.Errors:
			// Overflow and similar errors are not fatal; the next event still arrives.
			if !ok {
				return
			}
		}
	}
}
