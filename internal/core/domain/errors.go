package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidSemver is returned when a version string does not match MAJOR.MINOR.PATCH.
	ErrInvalidSemver = zerr.New("invalid semantic version")

	// ErrInconsistentVersions is returned when workspace packages do not share a single version.
	ErrInconsistentVersions = zerr.New("workspace packages carry inconsistent versions")

	// ErrCycleDetected is returned when no valid publish order exists for the workspace.
	ErrCycleDetected = zerr.New("cycle detected in workspace dependencies")

	// ErrMissingTag is returned when publish is invoked without a distribution tag.
	ErrMissingTag = zerr.New("missing distribution tag")

	// ErrPackageNotFound is returned when a sequenced package name has no record in the workspace.
	ErrPackageNotFound = zerr.New("package not found in workspace")

	// ErrUnknownBumpType is returned when a bump type is not patch, minor, major or auto.
	ErrUnknownBumpType = zerr.New("unknown bump type, expected 'patch', 'minor', 'major' or 'auto'")

	// ErrConfigNotFound is returned when no lockstep.yaml can be found from the working directory upward.
	ErrConfigNotFound = zerr.New("could not find lockstep.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrManifestReadFailed is returned when a package manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package manifest")

	// ErrManifestParseFailed is returned when a package manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse package manifest")

	// ErrManifestWriteFailed is returned when a package manifest cannot be written back.
	ErrManifestWriteFailed = zerr.New("failed to write package manifest")

	// ErrPublishFailed is returned when the publish operation fails.
	ErrPublishFailed = zerr.New("publish operation failed")
)
