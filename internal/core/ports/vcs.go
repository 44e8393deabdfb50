package ports

import "context"

// VCS exposes the version-control queries and actions lockstep needs.
// The core never constructs command strings itself.
//
//go:generate mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type VCS interface {
	// LastReleaseTag returns the most recent release tag reachable from
	// HEAD. ok is false when no release marker exists yet.
	LastReleaseTag(ctx context.Context) (tag string, ok bool, err error)

	// ChangedFiles lists the file names changed since the given marker.
	ChangedFiles(ctx context.Context, since string) ([]string, error)

	// CommitSubjectsSince lists commit subject lines after the given marker,
	// oldest first.
	CommitSubjectsSince(ctx context.Context, since string) ([]string, error)

	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)

	// StageAll stages every pending change in the working tree.
	StageAll(ctx context.Context) error

	// Commit records a commit with the given message.
	Commit(ctx context.Context, message string) error

	// Tag creates a tag with the given name at HEAD.
	Tag(ctx context.Context, name string) error

	// PushWithTags pushes commits and tags to the remote.
	PushWithTags(ctx context.Context) error
}
