// Package config provides configuration types and defaults for textobjects.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/textobjects/internal/finder"
	"github.com/zjrosen/textobjects/internal/log"
	"github.com/zjrosen/textobjects/internal/paths"
	"github.com/zjrosen/textobjects/internal/textobject"
)

// Config holds all configuration options for textobjects.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine" yaml:"engine"`
	Picker  PickerConfig  `mapstructure:"picker" yaml:"picker"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Watch   WatchConfig   `mapstructure:"watch" yaml:"watch"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// EngineConfig tunes text object resolution.
type EngineConfig struct {
	// MaxScanWidth caps how far (in UTF-16 code units from the cursor) the
	// balanced-pair and tag scanners look for a delimiter. 0 disables the cap.
	// Default: 100000
	MaxScanWidth int `mapstructure:"max_scan_width" yaml:"max_scan_width"`
}

// Options returns resolution options for this engine configuration.
func (e EngineConfig) Options(includeDelimiter bool) textobject.Options {
	return textobject.Options{
		IncludeDelimiter: includeDelimiter,
		MaxScanWidth:     e.MaxScanWidth,
	}
}

// PickerConfig holds interactive picker options.
type PickerConfig struct {
	MaxVisibleItems int    `mapstructure:"max_visible_items" yaml:"max_visible_items"` // Rows shown before scrolling
	Placeholder     string `mapstructure:"placeholder" yaml:"placeholder"`             // Filter input placeholder (empty = built-in)
}

// CacheConfig controls the in-memory document cache used by serve and watch.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL             time.Duration `mapstructure:"ttl" yaml:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`
}

// WatchConfig controls file watching.
type WatchConfig struct {
	// Debounce is how long to wait after the last change before re-resolving.
	// Default: 200ms
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/textobjects/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling, in (0.0, 1.0].
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "textobjects"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/textobjects/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	dir := paths.UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			MaxScanWidth: finder.DefaultMaxScanWidth,
		},
		Picker: PickerConfig{
			MaxVisibleItems: 8,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
			ServiceName:  "textobjects",
		},
	}
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	if err := ValidateEngine(c.Engine); err != nil {
		return err
	}
	if err := ValidatePicker(c.Picker); err != nil {
		return err
	}
	if err := ValidateCache(c.Cache); err != nil {
		return err
	}
	if err := ValidateWatch(c.Watch); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateEngine checks engine configuration for errors.
func ValidateEngine(e EngineConfig) error {
	if e.MaxScanWidth < 0 {
		return fmt.Errorf("engine.max_scan_width must be >= 0, got %d", e.MaxScanWidth)
	}
	return nil
}

// ValidatePicker checks picker configuration for errors.
func ValidatePicker(p PickerConfig) error {
	if p.MaxVisibleItems <= 0 {
		return fmt.Errorf("picker.max_visible_items must be positive, got %d", p.MaxVisibleItems)
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
// Durations are only checked when the cache is enabled.
func ValidateCache(c CacheConfig) error {
	if !c.Enabled {
		return nil
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when the cache is enabled, got %s", c.TTL)
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("cache.cleanup_interval must be >= 0, got %s", c.CleanupInterval)
	}
	return nil
}

// ValidateWatch checks watch configuration for errors.
func ValidateWatch(w WatchConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0, got %s", w.Debounce)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate <= 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be in (0.0, 1.0], got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate endpoint requirements when tracing is enabled
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# textobjects configuration

# Resolution engine
engine:
  # Maximum distance (UTF-16 code units from the cursor) scanned for a
  # bracket, quote or tag delimiter. 0 disables the cap.
  max_scan_width: 100000

# Interactive picker (textobjects pick)
picker:
  max_visible_items: 8
  # placeholder: "Select a text object"

# Document cache used by serve and watch
cache:
  enabled: true
  ttl: 10m              # How long an unchanged document stays cached
  cleanup_interval: 30m # How often expired documents are evicted

# File watching (textobjects watch)
watch:
  debounce: 200ms

# Distributed tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/textobjects/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate (0.0, 1.0] (default: 1.0)
#   service_name: textobjects
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
