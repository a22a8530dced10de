package ports

import "go.trai.ch/pinfile/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for the given working directory.
	// An explicit path must exist; otherwise the nearest config file is used,
	// and defaults apply when there is none.
	Load(cwd, explicit string) (*domain.Config, error)
}
