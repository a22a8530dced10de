// Package app implements the application layer for pinfile.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/pinfile/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/core/domain"
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/pinfile/internal/engine/checker"
	"go.trai.ch/pinfile/internal/engine/sorter"
	"go.trai.ch/pinfile/internal/ui/output"
	"go.trai.ch/zerr"
)

// Deps are the components an App is built from.
type Deps struct {
	ConfigLoader ports.ConfigLoader
	Codec        ports.ManifestCodec
	Finder       ports.ManifestFinder
	Trees        ports.TreeLoader
	Store        ports.SnapshotStore
	Inventory    ports.InventoryOpener
	Watcher      ports.Watcher
	Reporters    ports.ReporterFactory
	Logger       ports.Logger
	Tracer       ports.Tracer
	Checker      *checker.Checker
	Sorter       *sorter.Sorter
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	codec        ports.ManifestCodec
	finder       ports.ManifestFinder
	trees        ports.TreeLoader
	store        ports.SnapshotStore
	inventory    ports.InventoryOpener
	watcher      ports.Watcher
	reporters    ports.ReporterFactory
	logger       ports.Logger
	tracer       ports.Tracer
	checker      *checker.Checker
	sorter       *sorter.Sorter

	stdout     io.Writer
	stderr     io.Writer
	configPath string
	now        func() time.Time
	newScanID  func() string
}

// New creates a new App instance.
func New(deps Deps) *App {
	return &App{
		configLoader: deps.ConfigLoader,
		codec:        deps.Codec,
		finder:       deps.Finder,
		trees:        deps.Trees,
		store:        deps.Store,
		inventory:    deps.Inventory,
		watcher:      deps.Watcher,
		reporters:    deps.Reporters,
		logger:       deps.Logger,
		tracer:       deps.Tracer,
		checker:      deps.Checker,
		sorter:       deps.Sorter,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		now:          time.Now,
		newScanID:    uuid.NewString,
	}
}

// WithOutput sets where reports and traces are written.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithClock replaces the clock used to timestamp snapshots.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithScanIDs replaces the generator of inventory scan ids.
// This is primarily used for testing.
func (a *App) WithScanIDs(next func() string) *App {
	a.newScanID = next
	return a
}

// GlobalOptions are the settings shared by every command.
type GlobalOptions struct {
	// ConfigPath is an explicit config file. Empty means discovery.
	ConfigPath string
	// LogJSON switches the logger to JSON lines.
	LogJSON bool
	// Trace enables timing output on stderr: "auto", "tty" or "ci". Empty disables it.
	Trace string
}

// Configure applies the global options. It must be called before any operation.
func (a *App) Configure(opts GlobalOptions) {
	a.configPath = opts.ConfigPath

	if j, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		j.SetJSON(opts.LogJSON)
	}

	if opts.Trace == "" {
		return
	}
	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.Trace)
	profile := output.ColorProfileANSI()
	if mode == detector.ModeTTY {
		profile = output.ColorProfile()
	}
	a.tracer = telemetry.NewOTelTracer("pinfile", linear.NewRenderer(a.stderr, profile))
}

// Shutdown flushes pending trace output.
func (a *App) Shutdown(ctx context.Context) error {
	return a.tracer.Shutdown(ctx)
}

func (a *App) loadConfig() (*domain.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}
	cfg, err := a.configLoader.Load(cwd, a.configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// loadTree loads the tree named by the flag, or the configured one.
// It returns nil when neither is set.
func (a *App) loadTree(ctx context.Context, cfg *domain.Config, flag string) (*domain.Graph, error) {
	path := flag
	if path == "" {
		path = cfg.Tree
	}
	if path == "" {
		return nil, nil
	}

	_, span := a.tracer.Start(ctx, "load tree")
	defer span.End()
	span.SetAttribute("tree", path)

	graph, err := a.trees.Load(path)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "failed to load dependency tree")
	}
	span.SetAttribute(ports.AttrPackages, graph.Len())
	return graph, nil
}

func (a *App) requireTree(ctx context.Context, cfg *domain.Config, flag string) (*domain.Graph, error) {
	graph, err := a.loadTree(ctx, cfg, flag)
	if err != nil {
		return nil, err
	}
	if graph == nil {
		return nil, domain.ErrTreeRequired
	}
	return graph, nil
}

// relPath shortens p to a path below the project root when it is one.
func relPath(cfg *domain.Config, p string) string {
	rel, err := filepath.Rel(cfg.Root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return rel
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Snapshots removes only the snapshot store.
	Snapshots bool
	// Inventory removes only the inventory database.
	Inventory bool
}

// Clean removes pinfile state. Without options the whole state directory goes.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	var errs error

	remove := func(path string, name string) {
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	switch {
	case options.Snapshots || options.Inventory:
		if options.Snapshots {
			remove(domain.StorePath(cfg.StateDir), "snapshot store")
		}
		if options.Inventory {
			db := domain.InventoryPath(cfg.StateDir)
			for _, suffix := range []string{"", "-wal", "-shm"} {
				remove(db+suffix, "inventory"+suffix)
			}
		}
	default:
		remove(cfg.StateDir, "state directory")
	}

	return errs
}
