package registry

import (
	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

// ArticleSpecFactory maps article codes to their providers.
type ArticleSpecFactory struct {
	specs *specFactory[types.ArticleCode, ArticleSpec, ArticleSpecProvider]
}

// NewArticleSpecFactory builds the factory from the full provider list.
// Returns a *DuplicateCodeError if two providers share a code, or ErrNilProvider.
func NewArticleSpecFactory(providers []ArticleSpecProvider) (*ArticleSpecFactory, error) {
	specs, err := newSpecFactory[types.ArticleCode, ArticleSpec](
		"article", ArticleSpecProvider(NewNotFoundArticleProvider()), providers)
	if err != nil {
		return nil, err
	}
	return &ArticleSpecFactory{specs: specs}, nil
}

// GetSpec resolves code for the period and version. Unregistered codes resolve to
// the NotFound sentinel, whose code is types.ArticleNotFound.
func (f *ArticleSpecFactory) GetSpec(code types.ArticleCode, p period.Period, v types.VersionCode) ArticleSpec {
	return f.specs.get(code, p, v)
}

// Lookup is GetSpec that also reports whether a provider is registered for code.
// On a miss it returns the NotFound spec and false.
func (f *ArticleSpecFactory) Lookup(code types.ArticleCode, p period.Period, v types.VersionCode) (ArticleSpec, bool) {
	return f.specs.lookup(code, p, v)
}

// GetSpecList resolves every registered provider, ordered by code.
// The NotFound provider is never included.
func (f *ArticleSpecFactory) GetSpecList(p period.Period, v types.VersionCode) []ArticleSpec {
	return f.specs.list(p, v)
}

// Contains reports whether a provider is registered for code.
func (f *ArticleSpecFactory) Contains(code types.ArticleCode) bool {
	return f.specs.contains(code)
}

// Codes returns the registered codes in ascending order.
func (f *ArticleSpecFactory) Codes() []types.ArticleCode {
	return f.specs.sortedCodes()
}

// Len returns the number of registered providers.
func (f *ArticleSpecFactory) Len() int {
	return len(f.specs.codes)
}

// NotFoundProvider returns the fallback provider.
func (f *ArticleSpecFactory) NotFoundProvider() ArticleSpecProvider {
	return f.specs.notFound
}
