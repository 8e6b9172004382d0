package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func readFlags(t *testing.T, path string) map[string]bool {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed struct {
		Flags map[string]bool `yaml:"flags"`
	}
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	return parsed.Flags
}

func TestSaveFlag_UpdatesExistingFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveFlag(path, "catalog-watch", true))

	flags := readFlags(t, path)
	require.True(t, flags["catalog-watch"])
	require.True(t, flags["spec-cache"])
	require.False(t, flags["user-catalog"])

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "# Resolved spec list cache", "comments in other sections are kept")
}

func TestSaveFlag_AddsNewFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveFlag(path, "experimental", true))

	flags := readFlags(t, path)
	require.True(t, flags["experimental"])
	require.Len(t, flags, 4)
}

func TestSaveFlag_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, SaveFlag(path, "spec-cache", false))

	flags := readFlags(t, path)
	require.Equal(t, map[string]bool{"spec-cache": false}, flags)
}

func TestSaveFlag_EmptyFlagsSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: table\nflags:\n"), 0o600))

	require.NoError(t, SaveFlag(path, "user-catalog", true))

	flags := readFlags(t, path)
	require.Equal(t, map[string]bool{"user-catalog": true}, flags)
}

func TestSaveFlag_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flags: [unclosed"), 0o600))

	require.Error(t, SaveFlag(path, "spec-cache", true))
}
