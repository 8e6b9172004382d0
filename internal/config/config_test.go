package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/lexreg/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.False(t, cfg.Catalog.DisableBuiltin)
	require.Equal(t, 500*time.Millisecond, cfg.Catalog.WatchDebounce)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Equal(t, FormatJSON, cfg.Output.Format)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, Validate(cfg))
}

func TestValidateCatalog(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := []struct {
		name    string
		cfg     CatalogConfig
		wantErr string
	}{
		{"empty is valid", CatalogConfig{}, ""},
		{"existing dir", CatalogConfig{Dir: dir}, ""},
		{"missing dir", CatalogConfig{Dir: filepath.Join(dir, "nope")}, "catalog.dir"},
		{"dir is a file", CatalogConfig{Dir: file}, "not a directory"},
		{"negative debounce", CatalogConfig{WatchDebounce: -time.Second}, "watch_debounce"},
		{"builtin disabled without sources", CatalogConfig{DisableBuiltin: true}, "disable_builtin"},
		{"builtin disabled with sqlite", CatalogConfig{DisableBuiltin: true, SQLitePath: "x.db"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateCache(t *testing.T) {
	require.NoError(t, ValidateCache(CacheConfig{}))
	require.ErrorContains(t, ValidateCache(CacheConfig{TTL: -1}), "cache.ttl")
	require.ErrorContains(t, ValidateCache(CacheConfig{CleanupInterval: -1}), "cache.cleanup_interval")
}

func TestValidateOutput(t *testing.T) {
	require.NoError(t, ValidateOutput(OutputConfig{}))
	require.NoError(t, ValidateOutput(OutputConfig{Format: FormatTable}))
	require.ErrorContains(t, ValidateOutput(OutputConfig{Format: "xml"}), "output.format")
}

func TestValidateLog(t *testing.T) {
	require.NoError(t, ValidateLog(LogConfig{Level: "warn"}))
	require.ErrorContains(t, ValidateLog(LogConfig{Level: "trace"}), "log.level")
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     tracing.Config
		wantErr string
	}{
		{"disabled defaults", tracing.DefaultConfig(), ""},
		{"sample rate too high", tracing.Config{SampleRate: 1.5}, "sample_rate"},
		{"sample rate negative", tracing.Config{SampleRate: -0.1}, "sample_rate"},
		{"unknown exporter", tracing.Config{Exporter: "zipkin"}, "tracing.exporter"},
		{"file without path", tracing.Config{Enabled: true, Exporter: tracing.ExporterFile}, "file_path"},
		{"otlp without endpoint", tracing.Config{Enabled: true, Exporter: tracing.ExporterOTLP}, "otlp_endpoint"},
		{"disabled file without path", tracing.Config{Exporter: tracing.ExporterFile}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfigTemplate_IsValidYAML(t *testing.T) {
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))

	flags, ok := parsed["flags"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, flags["spec-cache"])
	require.Contains(t, parsed, "catalog")
	require.Contains(t, parsed, "cache")
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(content))
}
