package config

// Lockfile represents the structure of the lockstep.yaml configuration file.
type Lockfile struct {
	Version  string   `yaml:"version"`
	Packages []string `yaml:"packages"`
	Manifest string   `yaml:"manifest"`
	Access   string   `yaml:"access"`
}
