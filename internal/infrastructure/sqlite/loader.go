package sqlite

import (
	"context"
	"fmt"

	"github.com/zjrosen/lexreg/internal/catalog"
	"github.com/zjrosen/lexreg/internal/log"
)

// LoadCatalog reads the catalog stored in the database at path.
func LoadCatalog(ctx context.Context, path string) (*catalog.Catalog, error) {
	db, err := OpenReadOnly(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	file, err := db.Catalogs().Load(ctx)
	if err != nil {
		return nil, err
	}

	c, err := catalog.New(file, "sqlite:"+path)
	if err != nil {
		return nil, err
	}
	concepts, articles := c.Len()
	log.Debug(log.CatDB, "loaded SQLite catalog", "path", path, "concepts", concepts, "articles", articles)
	return c, nil
}

// SaveCatalog writes c to the database at path, creating it when missing.
func SaveCatalog(ctx context.Context, path string, c *catalog.Catalog) error {
	db, err := NewDB(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Catalogs().Save(ctx, c.Definitions()); err != nil {
		return fmt.Errorf("save catalog to %s: %w", path, err)
	}
	return nil
}
