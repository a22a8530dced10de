package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinfile/internal/adapters/cas"        //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/inventory"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/manifest"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/pipdeptree" //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/report"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/pinfile/internal/engine/checker"
	"go.trai.ch/pinfile/internal/engine/sorter"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			manifest.NodeID,
			fs.NodeID,
			pipdeptree.NodeID,
			cas.NodeID,
			inventory.NodeID,
			watcher.NodeID,
			report.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			checker.NodeID,
			sorter.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	var deps Deps
	var err error

	if deps.ConfigLoader, err = graft.Dep[ports.ConfigLoader](ctx); err != nil {
		return nil, err
	}
	if deps.Codec, err = graft.Dep[ports.ManifestCodec](ctx); err != nil {
		return nil, err
	}
	if deps.Finder, err = graft.Dep[ports.ManifestFinder](ctx); err != nil {
		return nil, err
	}
	if deps.Trees, err = graft.Dep[ports.TreeLoader](ctx); err != nil {
		return nil, err
	}
	if deps.Store, err = graft.Dep[ports.SnapshotStore](ctx); err != nil {
		return nil, err
	}
	if deps.Inventory, err = graft.Dep[ports.InventoryOpener](ctx); err != nil {
		return nil, err
	}
	if deps.Watcher, err = graft.Dep[ports.Watcher](ctx); err != nil {
		return nil, err
	}
	if deps.Reporters, err = graft.Dep[ports.ReporterFactory](ctx); err != nil {
		return nil, err
	}
	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if deps.Tracer, err = graft.Dep[ports.Tracer](ctx); err != nil {
		return nil, err
	}
	if deps.Checker, err = graft.Dep[*checker.Checker](ctx); err != nil {
		return nil, err
	}
	if deps.Sorter, err = graft.Dep[*sorter.Sorter](ctx); err != nil {
		return nil, err
	}

	return New(deps), nil
}
