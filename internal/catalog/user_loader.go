package catalog

import (
	"os"
	"path/filepath"

	"github.com/zjrosen/lexreg/internal/log"
)

// UserCatalogBaseDir returns the base directory for user catalogs.
// Returns ~/.lexreg (root for os.DirFS).
// Returns empty string if home directory cannot be determined.
func UserCatalogBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lexreg")
}

// LoadUserCatalogFromDir loads YAML catalogs from a user directory.
// baseDir should be the root directory (e.g., ~/.lexreg/) that contains a "catalogs" subdirectory.
// Returns nil, nil if the directory doesn't exist.
// Invalid catalogs are logged and skipped.
func LoadUserCatalogFromDir(baseDir string) (*Catalog, error) {
	if baseDir == "" {
		return nil, nil
	}

	info, err := os.Stat(filepath.Join(baseDir, CatalogRoot))
	if err != nil || !info.IsDir() {
		// No catalogs directory - not an error, just no user catalogs
		return nil, nil
	}

	c, err := LoadFromYAML(os.DirFS(baseDir))
	if err != nil {
		log.Warn(log.CatCatalog, "loading user catalogs", "error", err.Error(), "dir", baseDir)
		return nil, nil
	}
	return c, nil
}
