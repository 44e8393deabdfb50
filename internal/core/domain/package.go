// Package domain contains the core domain models and business logic for
// lockstep versioning and ordered publishing of workspace packages.
package domain

import "encoding/json"

// PackageRecord is the in-memory representation of a package manifest.
// The four dependency maps mirror the manifest's dependency sections and map
// dependency names to version-range expressions. Extra holds every manifest
// field lockstep does not model, preserved verbatim on write-back.
type PackageRecord struct {
	Name                 string
	Version              string
	Dir                  string
	ManifestPath         string
	Dependencies         map[string]string
	DevDependencies      map[string]string
	PeerDependencies     map[string]string
	OptionalDependencies map[string]string
	Extra                map[string]json.RawMessage
}

// DependencyMaps returns the record's dependency sections in a stable order:
// runtime, dev, peer, optional. Nil maps are returned as-is so callers can
// range over them without allocation.
func (p *PackageRecord) DependencyMaps() []map[string]string {
	return []map[string]string{
		p.Dependencies,
		p.DevDependencies,
		p.PeerDependencies,
		p.OptionalDependencies,
	}
}

// Config is the workspace configuration passed into the orchestrator.
// It is loaded once per invocation; there is no process-wide state.
type Config struct {
	// Root is the workspace root directory containing lockstep.yaml.
	Root string

	// Packages are glob patterns, relative to Root, under which package
	// manifests are discovered.
	Packages []string

	// Manifest is the manifest file name, "package.json" by default.
	Manifest string

	// Access is the default registry access level for publish.
	Access string
}
