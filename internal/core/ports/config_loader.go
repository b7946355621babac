package ports

import "go.trai.ch/riagen/internal/core/domain"

// ConfigLoader defines the interface for loading the generator configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. Relative paths inside it are made absolute.
	Load(path string) (*domain.Config, error)
}
