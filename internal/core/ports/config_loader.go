package ports

import "go.trai.ch/sackd/internal/core/domain"

// ConfigLoader defines the interface for loading the daemon configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path. An empty path searches the default
	// locations and falls back to domain.DefaultConfig when none exists.
	Load(path string) (*domain.Config, error)
}
