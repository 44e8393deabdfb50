package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Workspace is the complete set of package records plus the derived
// dependency graph. Graph maps a package name to the names of the packages
// that depend on it, so a forward walk emits dependencies before dependents.
type Workspace struct {
	Packages []*PackageRecord
	ByName   map[string]*PackageRecord
	Graph    map[string][]string
}

// BuildWorkspace derives the dependency graph for the given package records.
// An edge dep -> dependent is recorded for every dependency entry whose name
// matches another workspace member. Self-references are ignored. An empty
// package set yields an empty workspace.
func BuildWorkspace(packages []*PackageRecord) *Workspace {
	w := &Workspace{
		Packages: packages,
		ByName:   make(map[string]*PackageRecord, len(packages)),
		Graph:    make(map[string][]string, len(packages)),
	}

	for _, pkg := range packages {
		w.ByName[pkg.Name] = pkg
		w.Graph[pkg.Name] = []string{}
	}

	for _, pkg := range packages {
		for _, deps := range pkg.DependencyMaps() {
			for depName := range deps {
				if depName == pkg.Name {
					continue
				}
				if _, internal := w.ByName[depName]; !internal {
					continue
				}
				w.Graph[depName] = append(w.Graph[depName], pkg.Name)
			}
		}
	}

	return w
}

// SharedVersion returns the single version carried by every package in the
// workspace. It returns ErrInconsistentVersions, listing the distinct
// versions found, if the lockstep invariant is violated.
func (w *Workspace) SharedVersion() (string, error) {
	if len(w.Packages) == 0 {
		return "", zerr.Wrap(ErrInconsistentVersions, "workspace contains no packages")
	}

	seen := make(map[string]bool)
	var distinct []string
	for _, pkg := range w.Packages {
		if !seen[pkg.Version] {
			seen[pkg.Version] = true
			distinct = append(distinct, pkg.Version)
		}
	}

	if len(distinct) > 1 {
		err := zerr.Wrap(ErrInconsistentVersions, "found versions: "+strings.Join(distinct, ", "))
		return "", zerr.With(err, "packages", len(w.Packages))
	}
	return distinct[0], nil
}
