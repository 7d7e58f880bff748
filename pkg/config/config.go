// Package config handles configuration loading and validation for
// conancheck. It supports an optional YAML config file (.conancheck.yml)
// that supplies defaults for the update target, lookup timeout, output
// format, and package filter patterns.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/conancheck/pkg/semver"
	"github.com/ajxudir/conancheck/pkg/verbose"
)

// DefaultTimeoutSeconds is the global lookup deadline applied when neither
// the config file nor the command line sets one.
const DefaultTimeoutSeconds = 30

// LocalConfigName is the config file probed in the working directory.
const LocalConfigName = ".conancheck.yml"

// Output formats accepted by the format option.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds the effective tool configuration.
//
// Fields:
//   - Target: Update aggressiveness limit ("major", "minor" or "patch")
//   - TimeoutSeconds: Global deadline for the whole lookup batch in seconds
//   - Format: Output format ("table" or "json")
//   - Filter: Default package filter patterns
type Config struct {
	Target         string   `yaml:"target"`
	TimeoutSeconds int      `yaml:"timeout"`
	Format         string   `yaml:"format"`
	Filter         []string `yaml:"filter"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - *Config: Major target, 30s timeout, table output, no filter
func Default() *Config {
	return &Config{
		Target:         semver.PartMajor.String(),
		TimeoutSeconds: DefaultTimeoutSeconds,
		Format:         FormatTable,
	}
}

// Load loads configuration from the specified path or defaults.
//
// If configPath is provided, that file is loaded and must exist. Otherwise
// .conancheck.yml is probed in the working directory, and the built-in
// defaults are used when it is absent. Unset fields fall back to defaults.
//
// Parameters:
//   - configPath: Path to a config file, or empty to probe workDir
//   - workDir: Working directory to probe for a local config
//
// Returns:
//   - *Config: The loaded and validated configuration
//   - error: Any error during reading, parsing, or validation
func Load(configPath, workDir string) (*Config, error) {
	if configPath != "" {
		verbose.Infof("Loading config from: %s", configPath)
		cfg, err := loadFile(configPath)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	local := filepath.Join(workDir, LocalConfigName)
	if _, err := os.Stat(local); err == nil {
		verbose.Infof("Found local config: %s", local)
		return loadFile(local)
	}

	verbose.Infof("Using built-in default configuration")
	return Default(), nil
}

// loadFile reads and validates a single YAML config file.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
//
// Returns:
//   - error: When the target, timeout, or format value is invalid
func (c *Config) Validate() error {
	if _, err := semver.ParseVersionPart(c.Target); err != nil {
		return err
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", c.TimeoutSeconds)
	}
	switch c.Format {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (expected table or json)", c.Format)
	}
	return nil
}

// TargetPart returns the configured target as a VersionPart.
//
// Validate must have accepted the config first.
//
// Returns:
//   - semver.VersionPart: The parsed update target
func (c *Config) TargetPart() semver.VersionPart {
	part, err := semver.ParseVersionPart(c.Target)
	if err != nil {
		return semver.PartMajor
	}
	return part
}
