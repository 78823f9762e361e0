package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run-history recording configuration
type HistoryConfig struct {
	// Enabled turns on recording of run summaries to the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the SQLite history database
	DBPath string `yaml:"db_path"`
}

// Config represents caserun configuration options
type Config struct {
	// Root is the suite root directory that discovery walks
	Root string `yaml:"root"`

	// Entrypoint is the per-case entry script name
	Entrypoint string `yaml:"entrypoint"`

	// Template is the reserved directory name excluded from discovery
	Template string `yaml:"template"`

	// Jobs is the worker count (0 = auto-detect host parallelism)
	Jobs int `yaml:"jobs"`

	// History contains run-history recording configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfigFile is the config file name looked up in the working
// directory when no explicit path is given.
const DefaultConfigFile = "caserun.yaml"

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Root:       "cases",
		Entrypoint: "run_case.sh",
		Template:   "case_template",
		Jobs:       0, // auto-detect
		History: HistoryConfig{
			Enabled: false,
			DBPath:  filepath.Join(".caserun", "history.db"),
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flag values into the configuration.
// Only non-nil pointers override the config file values; nil means the flag
// was not set on the command line.
func (c *Config) MergeWithFlags(root *string, jobs *int) {
	if root != nil {
		c.Root = *root
	}
	if jobs != nil {
		c.Jobs = *jobs
	}
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root directory must not be empty")
	}
	if c.Entrypoint == "" {
		return fmt.Errorf("entrypoint script name must not be empty")
	}
	if filepath.Base(c.Entrypoint) != c.Entrypoint {
		return fmt.Errorf("entrypoint must be a bare file name, got %q", c.Entrypoint)
	}
	if c.Template == "" {
		return fmt.Errorf("template directory name must not be empty")
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history db_path must not be empty when history is enabled")
	}
	return nil
}
