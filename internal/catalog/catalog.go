package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zjrosen/lexreg/internal/domain/registry"
)

// Catalog errors
var (
	ErrEmptyCatalog = errors.New("catalog has no concepts or articles")
)

// Catalog is a validated set of concept and article definitions.
type Catalog struct {
	concepts []*ConceptProvider
	articles []*ArticleProvider
	defs     File
	sources  []string
}

// New validates the definitions in file and builds their providers.
// source names where the definitions came from and is used in error messages.
func New(file File, source string) (*Catalog, error) {
	c := &Catalog{defs: file}
	if source != "" {
		c.sources = []string{source}
	}

	for _, def := range file.Concepts {
		p, err := NewConceptProvider(def)
		if err != nil {
			return nil, withSource(source, err)
		}
		c.concepts = append(c.concepts, p)
	}
	for _, def := range file.Articles {
		p, err := NewArticleProvider(def)
		if err != nil {
			return nil, withSource(source, err)
		}
		c.articles = append(c.articles, p)
	}
	return c, nil
}

func withSource(source string, err error) error {
	if source == "" {
		return err
	}
	return fmt.Errorf("%s: %w", source, err)
}

// ConceptProviders returns the providers to seed a ConceptSpecFactory with.
func (c *Catalog) ConceptProviders() []registry.ConceptSpecProvider {
	out := make([]registry.ConceptSpecProvider, len(c.concepts))
	for i, p := range c.concepts {
		out[i] = p
	}
	return out
}

// ArticleProviders returns the providers to seed an ArticleSpecFactory with.
func (c *Catalog) ArticleProviders() []registry.ArticleSpecProvider {
	out := make([]registry.ArticleSpecProvider, len(c.articles))
	for i, p := range c.articles {
		out[i] = p
	}
	return out
}

// Factories builds both factories from the catalog.
func (c *Catalog) Factories() (*registry.ConceptSpecFactory, *registry.ArticleSpecFactory, error) {
	concepts, err := registry.NewConceptSpecFactory(c.ConceptProviders())
	if err != nil {
		return nil, nil, withSource(c.Source(), err)
	}
	articles, err := registry.NewArticleSpecFactory(c.ArticleProviders())
	if err != nil {
		return nil, nil, withSource(c.Source(), err)
	}
	return concepts, articles, nil
}

// Definitions returns the raw definitions the catalog was built from.
func (c *Catalog) Definitions() File {
	return File{
		Concepts: slices.Clone(c.defs.Concepts),
		Articles: slices.Clone(c.defs.Articles),
	}
}

// ConceptName returns the catalog name of a concept code, or "" when unknown.
func (c *Catalog) ConceptName(code int32) string {
	for _, p := range c.concepts {
		if p.Code().Value() == code {
			return p.Name()
		}
	}
	return ""
}

// ArticleName returns the catalog name of an article code, or "" when unknown.
func (c *Catalog) ArticleName(code int32) string {
	for _, p := range c.articles {
		if p.Code().Value() == code {
			return p.Name()
		}
	}
	return ""
}

// Len returns the number of concepts and articles.
func (c *Catalog) Len() (concepts, articles int) {
	return len(c.concepts), len(c.articles)
}

// Source returns a description of where the catalog came from.
func (c *Catalog) Source() string {
	switch len(c.sources) {
	case 0:
		return ""
	case 1:
		return c.sources[0]
	default:
		return fmt.Sprintf("%s (+%d more)", c.sources[0], len(c.sources)-1)
	}
}

// Merge combines catalogs into one. A code defined by more than one catalog is a
// *registry.DuplicateCodeError; later sources never silently shadow earlier ones.
func Merge(catalogs ...*Catalog) (*Catalog, error) {
	merged := &Catalog{}
	seenConcepts := make(map[int32]string)
	seenArticles := make(map[int32]string)

	for _, c := range catalogs {
		if c == nil {
			continue
		}
		for i, p := range c.concepts {
			code := p.Code().Value()
			if prev, ok := seenConcepts[code]; ok {
				return nil, fmt.Errorf("%s and %s: %w", prev, c.Source(), &registry.DuplicateCodeError{Space: "concept", Code: code})
			}
			seenConcepts[code] = c.Source()
			merged.concepts = append(merged.concepts, p)
			merged.defs.Concepts = append(merged.defs.Concepts, c.defs.Concepts[i])
		}
		for i, p := range c.articles {
			code := p.Code().Value()
			if prev, ok := seenArticles[code]; ok {
				return nil, fmt.Errorf("%s and %s: %w", prev, c.Source(), &registry.DuplicateCodeError{Space: "article", Code: code})
			}
			seenArticles[code] = c.Source()
			merged.articles = append(merged.articles, p)
			merged.defs.Articles = append(merged.defs.Articles, c.defs.Articles[i])
		}
		merged.sources = append(merged.sources, c.sources...)
	}
	return merged, nil
}
