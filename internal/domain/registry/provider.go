package registry

import (
	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

// ConceptSpecProvider resolves one concept code for a period and version.
// Spec is total: it returns a specification for every input.
type ConceptSpecProvider interface {
	Code() types.ConceptCode
	Spec(p period.Period, v types.VersionCode) ConceptSpec
}

// ArticleSpecProvider resolves one article code for a period and version.
// Spec is total: it returns a specification for every input.
type ArticleSpecProvider interface {
	Code() types.ArticleCode
	Spec(p period.Period, v types.VersionCode) ArticleSpec
}

// DefaultConceptProvider is the stub provider for a concept that is registered but
// has no definition yet. It ignores period and version.
//
// Concrete providers embed it to inherit Code and override Spec.
type DefaultConceptProvider struct {
	code types.ConceptCode
}

// NewDefaultConceptProvider creates the stub provider for code.
func NewDefaultConceptProvider(code types.ConceptCode) *DefaultConceptProvider {
	return &DefaultConceptProvider{code: code}
}

func (p *DefaultConceptProvider) Code() types.ConceptCode {
	return p.code
}

// Spec returns a degenerate specification: empty path, no delegate.
func (p *DefaultConceptProvider) Spec(_ period.Period, _ types.VersionCode) ConceptSpec {
	return NewConceptSpec(p.code, nil, nil)
}

// DefaultArticleProvider is the stub provider for an article that is registered but
// has no definition yet. It ignores period and version.
//
// Concrete providers embed it to inherit Code and override Spec.
type DefaultArticleProvider struct {
	code types.ArticleCode
}

// NewDefaultArticleProvider creates the stub provider for code.
func NewDefaultArticleProvider(code types.ArticleCode) *DefaultArticleProvider {
	return &DefaultArticleProvider{code: code}
}

func (p *DefaultArticleProvider) Code() types.ArticleCode {
	return p.code
}

// Spec returns a degenerate specification: zero seqs, NotFound role, no sums.
func (p *DefaultArticleProvider) Spec(_ period.Period, _ types.VersionCode) ArticleSpec {
	return newArticleSpec(p.code, types.ZeroSeqs(), types.NotFoundConcept(), nil)
}

// ConceptProviderFunc binds a concept code to a resolution function.
type ConceptProviderFunc struct {
	DefaultConceptProvider
	fn func(p period.Period, v types.VersionCode) ConceptSpec
}

// NewConceptProviderFunc creates a provider for code that resolves through fn.
// A nil result from fn falls back to the stub specification.
func NewConceptProviderFunc(code types.ConceptCode, fn func(p period.Period, v types.VersionCode) ConceptSpec) *ConceptProviderFunc {
	return &ConceptProviderFunc{
		DefaultConceptProvider: DefaultConceptProvider{code: code},
		fn:                     fn,
	}
}

func (p *ConceptProviderFunc) Spec(per period.Period, v types.VersionCode) ConceptSpec {
	if p.fn != nil {
		if spec := p.fn(per, v); spec != nil {
			return spec
		}
	}
	return p.DefaultConceptProvider.Spec(per, v)
}

// ArticleProviderFunc binds an article code to a resolution function.
type ArticleProviderFunc struct {
	DefaultArticleProvider
	fn func(p period.Period, v types.VersionCode) ArticleSpec
}

// NewArticleProviderFunc creates a provider for code that resolves through fn.
// A nil result from fn falls back to the stub specification.
func NewArticleProviderFunc(code types.ArticleCode, fn func(p period.Period, v types.VersionCode) ArticleSpec) *ArticleProviderFunc {
	return &ArticleProviderFunc{
		DefaultArticleProvider: DefaultArticleProvider{code: code},
		fn:                     fn,
	}
}

func (p *ArticleProviderFunc) Spec(per period.Period, v types.VersionCode) ArticleSpec {
	if p.fn != nil {
		if spec := p.fn(per, v); spec != nil {
			return spec
		}
	}
	return p.DefaultArticleProvider.Spec(per, v)
}

// Compile-time checks that the stub and adapter providers satisfy the contracts.
var (
	_ ConceptSpecProvider = (*DefaultConceptProvider)(nil)
	_ ConceptSpecProvider = (*ConceptProviderFunc)(nil)
	_ ArticleSpecProvider = (*DefaultArticleProvider)(nil)
	_ ArticleSpecProvider = (*ArticleProviderFunc)(nil)
)
