// Package manifest implements the package.json manifest store.
package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// discoverConcurrency bounds parallel manifest reads during discovery.
const discoverConcurrency = 8

// knownFields are the manifest fields lockstep models explicitly. Everything
// else is carried in PackageRecord.Extra and written back verbatim.
var knownFields = map[string]struct{}{
	"name":                 {},
	"version":              {},
	"dependencies":         {},
	"devDependencies":      {},
	"peerDependencies":     {},
	"optionalDependencies": {},
}

// Store reads and writes package manifests on disk.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Discover resolves the configured package globs under the workspace root
// and loads every directory that contains a manifest file. Results are
// ordered by directory path so graph construction and tie-breaking stay
// deterministic across runs.
func (s *Store) Discover(ctx context.Context, cfg domain.Config) ([]*domain.PackageRecord, error) {
	dirs, err := resolvePackageDirs(cfg)
	if err != nil {
		return nil, err
	}

	// Each goroutine writes its own slot, so the slice needs no locking.
	records := make([]*domain.PackageRecord, len(dirs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(discoverConcurrency)
	for i, dir := range dirs {
		g.Go(func() error {
			record, readErr := readRecord(filepath.Join(dir, cfg.Manifest), dir)
			if readErr != nil {
				return readErr
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// Write persists a package record back to its manifest file, pretty-printed
// with a trailing newline. The write goes through a temporary file and a
// rename so a crash never leaves a half-written manifest.
func (s *Store) Write(record *domain.PackageRecord) error {
	doc := make(map[string]json.RawMessage, len(record.Extra)+6)
	for k, v := range record.Extra {
		doc[k] = v
	}

	var err error
	if doc["name"], err = json.Marshal(record.Name); err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	if doc["version"], err = json.Marshal(record.Version); err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	sections := map[string]map[string]string{
		"dependencies":         record.Dependencies,
		"devDependencies":      record.DevDependencies,
		"peerDependencies":     record.PeerDependencies,
		"optionalDependencies": record.OptionalDependencies,
	}
	for field, deps := range sections {
		if deps == nil {
			continue
		}
		raw, marshalErr := json.Marshal(deps)
		if marshalErr != nil {
			return zerr.Wrap(marshalErr, domain.ErrManifestWriteFailed.Error())
		}
		doc[field] = raw
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	data = append(data, '\n')

	return atomicWrite(record.ManifestPath, data)
}

// UpdateRootVersion rewrites the version field of the workspace root
// manifest. A workspace without a root manifest is left untouched.
func (s *Store) UpdateRootVersion(cfg domain.Config, version string) error {
	rootManifest := filepath.Join(cfg.Root, cfg.Manifest)
	if _, err := os.Stat(rootManifest); os.IsNotExist(err) {
		return nil
	}

	record, err := readRecord(rootManifest, cfg.Root)
	if err != nil {
		return err
	}
	if record.Version == "" {
		return nil
	}

	record.Version = version
	return s.Write(record)
}

func resolvePackageDirs(cfg domain.Config) ([]string, error) {
	seen := make(map[string]struct{})
	var dirs []string

	for _, pattern := range cfg.Packages {
		matches, err := filepath.Glob(filepath.Join(cfg.Root, pattern))
		if err != nil {
			return nil, zerr.Wrap(err, "glob pattern failed: "+pattern)
		}

		for _, match := range matches {
			info, statErr := os.Stat(match)
			if statErr != nil || !info.IsDir() {
				continue
			}
			if filepath.Base(match) == "node_modules" {
				continue
			}
			if _, statErr := os.Stat(filepath.Join(match, cfg.Manifest)); statErr != nil {
				continue
			}
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			dirs = append(dirs, match)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

func readRecord(manifestPath, dir string) (*domain.PackageRecord, error) {
	// #nosec G304 -- manifestPath is derived from configured package globs
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", manifestPath)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", manifestPath)
	}

	record := &domain.PackageRecord{
		Dir:          dir,
		ManifestPath: manifestPath,
		Extra:        make(map[string]json.RawMessage),
	}

	if nameRaw, ok := doc["name"]; ok {
		if err := json.Unmarshal(nameRaw, &record.Name); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", manifestPath)
		}
	}
	if versionRaw, ok := doc["version"]; ok {
		if err := json.Unmarshal(versionRaw, &record.Version); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", manifestPath)
		}
	}

	record.Dependencies = decodeDependencies(doc["dependencies"])
	record.DevDependencies = decodeDependencies(doc["devDependencies"])
	record.PeerDependencies = decodeDependencies(doc["peerDependencies"])
	record.OptionalDependencies = decodeDependencies(doc["optionalDependencies"])

	for field, value := range doc {
		if _, known := knownFields[field]; !known {
			record.Extra[field] = slices.Clone(value)
		}
	}

	return record, nil
}

// decodeDependencies reads a dependency section, silently dropping entries
// whose ranges are not strings. A missing or malformed section yields nil.
func decodeDependencies(raw json.RawMessage) map[string]string {
	if raw == nil {
		return nil
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil
	}

	deps := make(map[string]string, len(loose))
	for name, value := range loose {
		var rangeExpr string
		if err := json.Unmarshal(value, &rangeExpr); err != nil {
			continue
		}
		deps[name] = rangeExpr
	}
	return deps
}

func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	return nil
}
