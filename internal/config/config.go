// =============================================================================
// Cart Parser - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file and
// applies defaults for anything left unset.
//
// CONFIGURATION FILE (config.yaml):
//   log_level: info
//   log_format: text
//   output_dir: ./output
//   archive_dir: ""
//   write_error_log: true
//   report:
//     formats: [text]
//     currency: USD
//     precision: 2
//     file_name_format: "{name}_{timestamp}_{uuid}"
//   server:
//     addr: ":8080"
//     max_body_bytes: 1048576
//   source:
//     http_timeout: 30s
//     s3_region: ""
//
// The file is optional: with no path, Default() is used as-is.
//
// =============================================================================

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvorobets/cart-parser/internal/report"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the slog handler.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// OutputDir is where report files and error logs are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir receives local cart files after they parsed.
	// Empty disables archival.
	ArchiveDir string `yaml:"archive_dir"`

	// WriteErrorLog writes an error log to OutputDir when a cart is invalid.
	// Default: true
	WriteErrorLog *bool `yaml:"write_error_log"`

	Report ReportConfig `yaml:"report"`
	Server ServerConfig `yaml:"server"`
	Source SourceConfig `yaml:"source"`
}

// ReportConfig controls how parsed carts are rendered.
type ReportConfig struct {
	// Formats lists the formats written by `parse --output-dir`.
	// Default: ["text"]
	Formats []string `yaml:"formats"`

	// Currency is printed next to totals.
	// Default: "USD"
	Currency string `yaml:"currency"`

	// Precision is the number of decimal places of money values.
	// Default: 2
	Precision *int32 `yaml:"precision"`

	// FileNameFormat names report files; see utils.GenerateOutputFileName.
	// Default: "{name}_{timestamp}_{uuid}"
	FileNameFormat string `yaml:"file_name_format"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: ":8080"
	Addr string `yaml:"addr"`

	// MaxBodyBytes caps request bodies.
	// Default: 1 MiB
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// Default: 15s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// Default: 15s
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// SourceConfig controls remote source readers.
type SourceConfig struct {
	// HTTPTimeout bounds http(s) source requests.
	// Default: 30s
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// S3Region overrides the region from the AWS environment.
	S3Region string `yaml:"s3_region"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: Path to the YAML file. Empty means built-in defaults.
//
// RETURNS:
//   - The configuration with defaults applied.
//   - An error if the file cannot be read, parsed or fails validation.
func Load(configPath string) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// ShouldWriteErrorLog reports whether invalid carts get an error log.
func (c *Config) ShouldWriteErrorLog() bool {
	return c.WriteErrorLog == nil || *c.WriteErrorLog
}

// MoneyPrecision returns the configured precision.
func (c *Config) MoneyPrecision() int32 {
	if c.Report.Precision == nil {
		return 2
	}
	return *c.Report.Precision
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}

	if len(config.Report.Formats) == 0 {
		config.Report.Formats = []string{report.FormatText}
	}
	if config.Report.Currency == "" {
		config.Report.Currency = "USD"
	}
	if config.Report.Precision == nil {
		precision := int32(2)
		config.Report.Precision = &precision
	}
	if config.Report.FileNameFormat == "" {
		config.Report.FileNameFormat = "{name}_{timestamp}_{uuid}"
	}

	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Server.MaxBodyBytes == 0 {
		config.Server.MaxBodyBytes = 1 << 20
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 15 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 15 * time.Second
	}

	if config.Source.HTTPTimeout == 0 {
		config.Source.HTTPTimeout = 30 * time.Second
	}
}

// validate rejects values the rest of the program cannot use.
func validate(config *Config) error {
	if _, err := ParseLevel(config.LogLevel); err != nil {
		return err
	}

	switch config.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", config.LogFormat)
	}

	for _, format := range config.Report.Formats {
		if !report.IsFormat(format) {
			return fmt.Errorf("unknown report format %q", format)
		}
	}

	if p := *config.Report.Precision; p < 0 || p > 8 {
		return fmt.Errorf("report precision must be between 0 and 8, got %d", p)
	}

	if config.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server max_body_bytes must not be negative")
	}

	return nil
}

// =============================================================================
// LOGGING
// =============================================================================

// ParseLevel converts a log level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", name)
	}
}

// NewLogger builds the application logger writing to w.
func NewLogger(config *Config, w io.Writer) *slog.Logger {
	level, _ := ParseLevel(config.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	if config.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
