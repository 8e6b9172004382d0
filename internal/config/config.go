// Package config provides configuration types and defaults for lexreg.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/lexreg/internal/log"
	"github.com/zjrosen/lexreg/internal/tracing"
)

// Output formats accepted by OutputConfig.Format.
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Config holds all configuration options for lexreg.
type Config struct {
	Catalog CatalogConfig   `mapstructure:"catalog"`
	Cache   CacheConfig     `mapstructure:"cache"`
	Output  OutputConfig    `mapstructure:"output"`
	Log     LogConfig       `mapstructure:"log"`
	Tracing tracing.Config  `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// CatalogConfig selects where concept and article definitions are loaded from.
// Sources are merged; a code defined by two sources is a load error.
type CatalogConfig struct {
	// DisableBuiltin skips the catalogs compiled into the binary.
	DisableBuiltin bool `mapstructure:"disable_builtin"`

	// Dir is a directory containing a catalogs/ tree of catalog.yaml files.
	Dir string `mapstructure:"dir"`

	// UserDir is the user catalog root, used when the user-catalog flag is on.
	// Default: ~/.lexreg
	UserDir string `mapstructure:"user_dir"`

	// SQLitePath is an SQLite catalog database.
	SQLitePath string `mapstructure:"sqlite_path"`

	// WatchDebounce delays reloads after catalog file changes.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// CacheConfig configures the resolved spec list cache.
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RefreshOnHit    bool          `mapstructure:"refresh_on_hit"` // extend TTL on every hit
}

// OutputConfig holds CLI output options.
type OutputConfig struct {
	Format string `mapstructure:"format"` // "json" (default) or "table"
}

// LogConfig holds debug log options.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	File  string `mapstructure:"file"`  // default: lexreg.log when debugging
}

// DefaultUserDir returns ~/.lexreg or empty string if home dir unavailable.
func DefaultUserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lexreg")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/lexreg/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lexreg", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()

	return Config{
		Catalog: CatalogConfig{
			UserDir:       DefaultUserDir(),
			WatchDebounce: 500 * time.Millisecond,
		},
		Cache: CacheConfig{
			TTL:             10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Output:  OutputConfig{Format: FormatJSON},
		Log:     LogConfig{Level: "debug", File: "lexreg.log"},
		Tracing: tc,
	}
}

// Validate checks every section of cfg.
func Validate(cfg Config) error {
	if err := ValidateCatalog(cfg.Catalog); err != nil {
		return err
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	if err := ValidateOutput(cfg.Output); err != nil {
		return err
	}
	if err := ValidateLog(cfg.Log); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateCatalog checks catalog configuration for errors.
func ValidateCatalog(c CatalogConfig) error {
	if c.WatchDebounce < 0 {
		return fmt.Errorf("catalog.watch_debounce must not be negative, got %v", c.WatchDebounce)
	}
	if c.Dir != "" {
		info, err := os.Stat(c.Dir)
		if err != nil {
			return fmt.Errorf("catalog.dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("catalog.dir %q is not a directory", c.Dir)
		}
	}
	if c.DisableBuiltin && c.Dir == "" && c.SQLitePath == "" && c.UserDir == "" {
		return fmt.Errorf("catalog.disable_builtin requires catalog.dir, catalog.sqlite_path or catalog.user_dir")
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
// A zero TTL disables caching.
func ValidateCache(c CacheConfig) error {
	if c.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", c.TTL)
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("cache.cleanup_interval must not be negative, got %v", c.CleanupInterval)
	}
	return nil
}

// ValidateOutput checks output configuration for errors.
func ValidateOutput(o OutputConfig) error {
	switch o.Format {
	case "", FormatJSON, FormatTable:
		return nil
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q", FormatJSON, FormatTable, o.Format)
	}
}

// ValidateLog checks log configuration for errors.
func ValidateLog(l LogConfig) error {
	switch l.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", l.Level)
	}
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	// Only validate path requirements when tracing is enabled
	if t.Enabled {
		if t.Exporter == tracing.ExporterFile && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# lexreg configuration

# Catalog sources. Every enabled source is merged; a code defined twice is an error.
catalog:
  # disable_builtin: false       # skip the catalogs compiled into the binary
  # dir: ./legal                 # directory holding catalogs/<group>/catalog.yaml
  # user_dir: ~/.lexreg          # user catalogs (enable with flags.user-catalog)
  # sqlite_path: ./catalog.db    # SQLite catalog database
  watch_debounce: 500ms          # delay before reloading after a change

# Resolved spec list cache
cache:
  ttl: 10m                       # 0 disables the cache
  cleanup_interval: 30m
  refresh_on_hit: false          # extend ttl on every hit

# CLI output
output:
  format: json                   # json or table

# Debug log, written when --debug or LEXREG_DEBUG is set
log:
  level: debug
  file: lexreg.log

# Distributed tracing
# tracing:
#   enabled: false
#   exporter: file               # none, file, stdout, otlp
#   file_path: ~/.config/lexreg/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

# Feature flags
flags:
  catalog-watch: false           # reload catalogs when files change
  spec-cache: true               # cache resolved spec lists
  user-catalog: false            # load catalogs from ~/.lexreg/catalogs
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
