// Package config provides the workspace configuration loader for lockstep.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file name.
const FileName = "lockstep.yaml"

// defaultManifest is the manifest file name used when the config omits one.
const defaultManifest = "package.json"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load walks up from cwd until it finds lockstep.yaml and returns the
// workspace configuration rooted at that directory.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return domain.Config{}, err
	}

	// #nosec G304 -- configPath is resolved from the working directory
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file Lockfile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return domain.Config{}, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg := domain.Config{
		Root:     filepath.Dir(configPath),
		Packages: file.Packages,
		Manifest: file.Manifest,
		Access:   file.Access,
	}
	if cfg.Manifest == "" {
		cfg.Manifest = defaultManifest
	}
	if len(cfg.Packages) == 0 {
		cfg.Packages = []string{"packages/*"}
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	if abs, err := filepath.Abs(cwd); err == nil {
		currentDir = abs
	}

	for {
		configPath := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}
