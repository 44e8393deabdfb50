package ports

import "context"

// PublishRequest carries everything the registry needs to publish one package.
type PublishRequest struct {
	// Dir is the package directory to publish from.
	Dir string

	// Access is the registry access level, e.g. "public" or "restricted".
	// Empty means the registry default.
	Access string

	// DistTag is the fully resolved distribution tag.
	DistTag string

	// DryRun reports what would be published without side effects.
	DryRun bool
}

// Publisher executes a single package publish against the registry.
//
//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks
type Publisher interface {
	// Publish runs one synchronous, blocking publish. A returned error
	// aborts the remaining publish sequence.
	Publish(ctx context.Context, req PublishRequest) error
}
