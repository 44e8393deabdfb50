// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/lockstep/internal/core/domain"
)

// ManifestStore supplies package records and persists updated ones.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Discover scans the configured package roots and returns all package
	// records found, in a stable directory order.
	Discover(ctx context.Context, cfg domain.Config) ([]*domain.PackageRecord, error)

	// Write persists a package record back to its manifest file.
	Write(record *domain.PackageRecord) error

	// UpdateRootVersion updates the version field of the workspace root
	// manifest, if one exists. A missing root manifest is not an error.
	UpdateRootVersion(cfg domain.Config, version string) error
}
