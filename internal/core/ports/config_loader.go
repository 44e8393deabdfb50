package ports

import "go.trai.ch/lockstep/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd to find lockstep.yaml and returns the
	// workspace configuration.
	Load(cwd string) (domain.Config, error)
}
