package ports

import "go.trai.ch/scango/internal/core/domain"

// ConfigLoader defines the interface for loading the session configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration file by walking up from cwd and returns the
	// resolved configuration. Built-in defaults are returned when no file exists.
	Load(cwd string) (*domain.Config, error)
}
