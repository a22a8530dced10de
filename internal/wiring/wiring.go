// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pinfile/internal/adapters/cas"
	_ "go.trai.ch/pinfile/internal/adapters/config"
	_ "go.trai.ch/pinfile/internal/adapters/fs"
	_ "go.trai.ch/pinfile/internal/adapters/inventory"
	_ "go.trai.ch/pinfile/internal/adapters/logger"
	_ "go.trai.ch/pinfile/internal/adapters/manifest"
	_ "go.trai.ch/pinfile/internal/adapters/pipdeptree"
	_ "go.trai.ch/pinfile/internal/adapters/report"
	_ "go.trai.ch/pinfile/internal/adapters/telemetry"
	_ "go.trai.ch/pinfile/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/pinfile/internal/app"
	_ "go.trai.ch/pinfile/internal/engine/checker"
	_ "go.trai.ch/pinfile/internal/engine/sorter"
)
