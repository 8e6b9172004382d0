// Package flags provides feature flags for optional registry behavior.
// Flags are read-only after initialization and provide safe defaults for unknown flags.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/lexreg/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagCatalogWatch reloads the registry when catalog files or the catalog database change.
	FlagCatalogWatch = "catalog-watch"

	// FlagSpecCache caches resolved spec lists per (period, version).
	FlagSpecCache = "spec-cache"

	// FlagUserCatalog loads catalogs from the user catalog directory (~/.lexreg/catalogs).
	FlagUserCatalog = "user-catalog"
)

// defaults applies when the configuration does not mention a known flag.
var defaults = map[string]bool{
	FlagCatalogWatch: false,
	FlagSpecCache:    true,
	FlagUserCatalog:  false,
}

// Registry holds feature flag state loaded from configuration.
// Flags are read-only after initialization.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map layered over the known flag defaults.
func New(flags map[string]bool) *Registry {
	merged := make(map[string]bool, len(defaults)+len(flags))
	maps.Copy(merged, defaults)
	maps.Copy(merged, flags)

	r := &Registry{flags: merged}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(merged), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Returns false for unknown flags and on a nil registry.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name, "result", false)
		return false
	}
	return value
}

// All returns a copy of all flags (for debugging/logging).
// Returns an empty map if the registry is nil.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}

// Known returns the names of the flags lexreg understands, sorted.
func Known() []string {
	return slices.Sorted(maps.Keys(defaults))
}

// IsKnown reports whether name is a flag lexreg understands.
func IsKnown(name string) bool {
	_, ok := defaults[name]
	return ok
}
