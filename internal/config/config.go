// Package config loads scormpkg configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	yaml "gopkg.in/yaml.v2"
)

const (
	DefaultPackageSizeLimit = "300MiB"
	DefaultOutputDir        = "./scorm-packages"
	DefaultLogLevel         = "info"
)

// Environment variables that override file values.
const (
	EnvPackageSizeLimit = "SCORM_PACKAGE_SIZE_LIMIT"
	EnvOutputDir        = "SCORM_OUTPUT_DIR"
	EnvLogLevel         = "SCORM_LOG_LEVEL"
)

// Config holds all scormpkg configuration.
type Config struct {
	Scorm   ScormConfig   `yaml:"scorm"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScormConfig configures package extraction.
type ScormConfig struct {
	// PackageSizeLimit is a byte count or human size ("300MiB", "50MB").
	PackageSizeLimit string `yaml:"package_size_limit"`
}

// StorageConfig configures where extracted packages are stored.
type StorageConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scorm:   ScormConfig{PackageSizeLimit: DefaultPackageSizeLimit},
		Storage: StorageConfig{OutputDir: DefaultOutputDir},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPackageSizeLimit); v != "" {
		c.Scorm.PackageSizeLimit = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Storage.OutputDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if _, err := c.SizeLimitBytes(); err != nil {
		return err
	}
	if c.Storage.OutputDir == "" {
		return errors.New("storage.output_dir must not be empty")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// SizeLimitBytes parses scorm.package_size_limit.
func (c *Config) SizeLimitBytes() (int64, error) {
	n, err := humanize.ParseBytes(c.Scorm.PackageSizeLimit)
	if err != nil {
		return 0, fmt.Errorf("invalid scorm.package_size_limit %q: %w", c.Scorm.PackageSizeLimit, err)
	}
	if n == 0 || n > 1<<62 {
		return 0, fmt.Errorf("scorm.package_size_limit %q is out of range", c.Scorm.PackageSizeLimit)
	}
	return int64(n), nil
}
