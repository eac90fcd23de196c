// Package config loads triggergen settings from YAML, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"triggergen/internal/output"
	"triggergen/internal/trigger"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".triggergen.yaml"

// Config holds all triggergen configuration.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Output     OutputConfig     `yaml:"output"`
	Export     ExportConfig     `yaml:"export"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig controls the size of the dataset.
type GenerationConfig struct {
	Count int `yaml:"count" env:"TRIGGERGEN_COUNT"`
}

// OutputConfig controls where the JSON dataset is written.
type OutputConfig struct {
	Path string `yaml:"path" env:"TRIGGERGEN_OUTPUT"`
}

// ExportConfig configures the optional SQLite mirror. Empty path disables it.
type ExportConfig struct {
	SQLitePath string `yaml:"sqlite_path" env:"TRIGGERGEN_SQLITE"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"TRIGGERGEN_LOG_LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"TRIGGERGEN_LOG_FORMAT"` // json, console
}

// DefaultConfig returns the configuration of a plain, flagless run.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Count: trigger.DefaultCount,
		},
		Output: OutputConfig{
			Path: output.DefaultPath,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a YAML file and applies environment overrides.
// A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects settings that cannot produce a dataset.
func (c *Config) Validate() error {
	if c.Generation.Count < 1 {
		return fmt.Errorf("generation.count must be positive, got %d", c.Generation.Count)
	}
	if c.Output.Path == "" {
		return errors.New("output.path must not be empty")
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}
