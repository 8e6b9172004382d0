// Package testutil provides catalog fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lexreg/internal/catalog"
)

// Builder accumulates concept and article definitions.
type Builder struct {
	t    *testing.T
	file catalog.File
}

// NewBuilder creates an empty catalog builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithConcept adds a concept. The name defaults to CONCEPT_<code> and the path to empty.
func (b *Builder) WithConcept(code int32, opts ...ConceptOption) *Builder {
	def := catalog.ConceptDef{Code: code, Name: defaultName("CONCEPT", code), Path: []int32{}}
	for _, opt := range opts {
		opt(&def)
	}
	b.file.Concepts = append(b.file.Concepts, def)
	return b
}

// WithArticle adds an article. The name defaults to ARTICLE_<code>.
func (b *Builder) WithArticle(code int32, opts ...ArticleOption) *Builder {
	def := catalog.ArticleDef{Code: code, Name: defaultName("ARTICLE", code), Sums: []int32{}}
	for _, opt := range opts {
		opt(&def)
	}
	b.file.Articles = append(b.file.Articles, def)
	return b
}

// File returns the accumulated definitions.
func (b *Builder) File() catalog.File {
	return b.file
}

// Catalog builds the catalog, failing the test on invalid definitions.
func (b *Builder) Catalog() *catalog.Catalog {
	b.t.Helper()
	c, err := catalog.New(b.file, "testutil")
	require.NoError(b.t, err)
	return c
}

// YAML encodes the definitions as a catalog.yaml document.
func (b *Builder) YAML() []byte {
	b.t.Helper()
	data, err := b.Catalog().EncodeYAML()
	require.NoError(b.t, err)
	return data
}

// WriteDir writes the definitions to dir/catalogs/<group>/catalog.yaml and returns the file path.
func (b *Builder) WriteDir(dir, group string) string {
	b.t.Helper()
	path := filepath.Join(dir, catalog.CatalogRoot, group, catalog.CatalogFileName)
	require.NoError(b.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(b.t, os.WriteFile(path, b.YAML(), 0o644))
	return path
}

func defaultName(prefix string, code int32) string {
	return prefix + "_" + strconv.FormatInt(int64(code), 10)
}
