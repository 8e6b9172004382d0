// Package registry implements the application layer of the specification registry.
//
// SpecService owns the live registry snapshot: the concept and article factories built
// from the configured catalog sources. It bridges the pure domain factories
// (internal/domain/registry) to infrastructure concerns:
//   - Sources: the embedded builtin catalog, a catalog directory, the user catalog
//     directory and a SQLite catalog database
//   - A read-through cache of spec lists (internal/cachemanager)
//   - OpenTelemetry spans around every resolution (internal/tracing)
//   - Reload events on a pubsub broker and file watching (internal/watcher)
//
// # Snapshots
//
// Every Reload builds a complete new snapshot and swaps it in atomically. Readers
// always see either the old or the new registry, never a partial one. A failed
// reload keeps the previous snapshot.
//
// # Import Aliasing
//
// This package has the same name as the domain registry package. When importing both,
// use aliasing to disambiguate:
//
//	import (
//	    domainreg "github.com/zjrosen/lexreg/internal/domain/registry"
//	    appreg "github.com/zjrosen/lexreg/internal/registry/application"
//	)
package registry
