package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/lexreg/internal/log"
)

// CatalogRoot is the directory scanned for catalog.yaml files.
const CatalogRoot = "catalogs"

// CatalogFileName is the name of a catalog definition file.
const CatalogFileName = "catalog.yaml"

// LoadFromYAML loads and merges every catalogs/**/catalog.yaml file in fsys.
// Codes defined in more than one file are an error.
func LoadFromYAML(fsys fs.FS) (*Catalog, error) {
	var catalogs []*Catalog

	err := fs.WalkDir(fsys, CatalogRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Only process catalog.yaml files
		if d.IsDir() || d.Name() != CatalogFileName {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		c, err := LoadFromBytes(content, path)
		if err != nil {
			return err
		}
		catalogs = append(catalogs, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan catalogs: %w", err)
	}

	if len(catalogs) == 0 {
		return nil, fmt.Errorf("%w: no %s/*/%s found", ErrEmptyCatalog, CatalogRoot, CatalogFileName)
	}

	merged, err := Merge(catalogs...)
	if err != nil {
		return nil, fmt.Errorf("merge catalogs: %w", err)
	}

	concepts, articles := merged.Len()
	log.Debug(log.CatCatalog, "loaded YAML catalogs", "files", len(catalogs), "concepts", concepts, "articles", articles)
	return merged, nil
}

// LoadFromBytes parses a single catalog.yaml document. Unknown fields are rejected
// so that typos in a catalog do not silently drop data.
func LoadFromBytes(content []byte, source string) (*Catalog, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	c, err := New(file, source)
	if err != nil {
		return nil, err
	}
	// Merging a catalog with nothing surfaces duplicate codes inside one file.
	if _, err := Merge(c); err != nil {
		return nil, err
	}
	return c, nil
}

// EncodeYAML renders the catalog definitions back to catalog.yaml form.
func (c *Catalog) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c.Definitions()); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}
