package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces every environment override (ODP_LOGGING_LEVEL, ...).
const envPrefix = "ODP"

// configFileName is looked up in the working directory.
const configFileName = "config.yaml"

// Config is the complete application configuration for the extraction
// binaries. Precedence: defaults, then config.yaml, then environment.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Extract ExtractConfig `yaml:"extract" envconfig:"EXTRACT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
}

// PathsConfig contains the default data directories
type PathsConfig struct {
	SourceDir    string `yaml:"source_dir" envconfig:"SOURCE_DIR" validate:"required"`
	ProcessedDir string `yaml:"processed_dir" envconfig:"PROCESSED_DIR" validate:"required"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// ExtractConfig tunes the tabular engine
type ExtractConfig struct {
	// ScanRows bounds the header search window.
	ScanRows int `yaml:"scan_rows" envconfig:"SCAN_ROWS" validate:"min=1,max=100"`
	// NoTrim keeps footnote rows below the grand-total row.
	NoTrim bool `yaml:"no_trim" envconfig:"NO_TRIM"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/odpcli.log",
		},
		Paths: PathsConfig{
			SourceDir:    "goc_data_source",
			ProcessedDir: "goc_data_processed",
			LogsDir:      "logs",
		},
		Extract: ExtractConfig{
			ScanRows: 12,
		},
	}
}

// Load builds the configuration from the defaults, then the config.yaml
// file if present, then environment variables (highest precedence), and
// validates the result.
func Load() (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(configFileName); err == nil {
		if err := loadFromFile(configFileName, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Without default tags envconfig leaves fields untouched unless the
	// variable is actually set, which keeps the precedence order honest.
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against the struct constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// loadFromFile overlays YAML file values onto cfg.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
