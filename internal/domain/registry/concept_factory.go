package registry

import (
	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

// ConceptSpecFactory maps concept codes to their providers.
type ConceptSpecFactory struct {
	specs *specFactory[types.ConceptCode, ConceptSpec, ConceptSpecProvider]
}

// NewConceptSpecFactory builds the factory from the full provider list.
// Returns a *DuplicateCodeError if two providers share a code, or ErrNilProvider.
func NewConceptSpecFactory(providers []ConceptSpecProvider) (*ConceptSpecFactory, error) {
	specs, err := newSpecFactory[types.ConceptCode, ConceptSpec](
		"concept", ConceptSpecProvider(NewNotFoundConceptProvider()), providers)
	if err != nil {
		return nil, err
	}
	return &ConceptSpecFactory{specs: specs}, nil
}

// GetSpec resolves code for the period and version. Unregistered codes resolve to
// the NotFound sentinel, whose code is types.ConceptNotFound.
func (f *ConceptSpecFactory) GetSpec(code types.ConceptCode, p period.Period, v types.VersionCode) ConceptSpec {
	return f.specs.get(code, p, v)
}

// Lookup is GetSpec that also reports whether a provider is registered for code.
// On a miss it returns the NotFound spec and false.
func (f *ConceptSpecFactory) Lookup(code types.ConceptCode, p period.Period, v types.VersionCode) (ConceptSpec, bool) {
	return f.specs.lookup(code, p, v)
}

// GetSpecList resolves every registered provider, ordered by code.
// The NotFound provider is never included.
func (f *ConceptSpecFactory) GetSpecList(p period.Period, v types.VersionCode) []ConceptSpec {
	return f.specs.list(p, v)
}

// Contains reports whether a provider is registered for code.
func (f *ConceptSpecFactory) Contains(code types.ConceptCode) bool {
	return f.specs.contains(code)
}

// Codes returns the registered codes in ascending order.
func (f *ConceptSpecFactory) Codes() []types.ConceptCode {
	return f.specs.sortedCodes()
}

// Len returns the number of registered providers.
func (f *ConceptSpecFactory) Len() int {
	return len(f.specs.codes)
}

// NotFoundProvider returns the fallback provider.
func (f *ConceptSpecFactory) NotFoundProvider() ConceptSpecProvider {
	return f.specs.notFound
}
