package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/lexreg/internal/catalog"
	"github.com/zjrosen/lexreg/internal/infrastructure/sqlite"
	"github.com/zjrosen/lexreg/internal/log"
)

// ErrNoSources is returned when no catalog source is configured.
var ErrNoSources = errors.New("no catalog sources configured")

// Sources selects the catalogs merged into a registry snapshot.
type Sources struct {
	// Builtin includes the embedded catalog.
	Builtin bool
	// Dir is a directory containing catalogs/**/catalog.yaml.
	Dir string
	// UserDir is the user catalog root (e.g. ~/.lexreg). Missing or invalid user
	// catalogs are skipped.
	UserDir string
	// SQLitePath is a catalog database written by catalog:export.
	SQLitePath string
}

// Load reads every configured source and merges them. A code defined by two sources
// is an error.
func (s Sources) Load(ctx context.Context) (*catalog.Catalog, error) {
	var parts []*catalog.Catalog

	if s.Builtin {
		c, err := catalog.Builtin()
		if err != nil {
			return nil, fmt.Errorf("load builtin catalog: %w", err)
		}
		parts = append(parts, c)
	}

	if s.Dir != "" {
		c, err := catalog.LoadFromYAML(os.DirFS(s.Dir))
		if err != nil {
			return nil, fmt.Errorf("load catalog dir %s: %w", s.Dir, err)
		}
		parts = append(parts, c)
	}

	if s.UserDir != "" {
		c, err := catalog.LoadUserCatalogFromDir(s.UserDir)
		if err != nil {
			return nil, fmt.Errorf("load user catalogs: %w", err)
		}
		if c != nil {
			parts = append(parts, c)
		}
	}

	if s.SQLitePath != "" {
		c, err := sqlite.LoadCatalog(ctx, s.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("load catalog database: %w", err)
		}
		parts = append(parts, c)
	}

	if len(parts) == 0 {
		return nil, ErrNoSources
	}

	merged, err := catalog.Merge(parts...)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatCatalog, "merged catalog sources", "sources", len(parts), "source", merged.Source())
	return merged, nil
}

// WatchPaths returns the existing filesystem paths backing the sources.
func (s Sources) WatchPaths() []string {
	var paths []string
	if s.Dir != "" {
		paths = appendExisting(paths, filepath.Join(s.Dir, catalog.CatalogRoot))
	}
	if s.UserDir != "" {
		paths = appendExisting(paths, filepath.Join(s.UserDir, catalog.CatalogRoot))
	}
	if s.SQLitePath != "" {
		paths = appendExisting(paths, s.SQLitePath)
	}
	return paths
}

func appendExisting(paths []string, path string) []string {
	if _, err := os.Stat(path); err != nil {
		return paths
	}
	return append(paths, path)
}
