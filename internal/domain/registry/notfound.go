package registry

import (
	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

// The sentinel specifications are immutable, so one instance per code space is shared.
var (
	notFoundConceptSpec = NewConceptSpec(types.NotFoundConcept(), nil, nil)
	notFoundArticleSpec = newArticleSpec(types.NotFoundArticle(), types.ZeroSeqs(), types.NotFoundConcept(), nil)
)

// NotFoundConceptSpec returns the sentinel specification for an unknown concept.
func NotFoundConceptSpec() ConceptSpec {
	return notFoundConceptSpec
}

// NotFoundArticleSpec returns the sentinel specification for an unknown article.
// Its role is the NotFound concept.
func NotFoundArticleSpec() ArticleSpec {
	return notFoundArticleSpec
}

// IsNotFoundConcept reports whether spec is the concept sentinel.
func IsNotFoundConcept(spec ConceptSpec) bool {
	return spec == nil || spec.Code().IsNotFound()
}

// IsNotFoundArticle reports whether spec is the article sentinel.
func IsNotFoundArticle(spec ArticleSpec) bool {
	return spec == nil || spec.Code().IsNotFound()
}

// NotFoundConceptProvider always yields the concept sentinel. Its code is the
// reserved constant, never the code that was queried.
type NotFoundConceptProvider struct {
	DefaultConceptProvider
}

// NewNotFoundConceptProvider creates the concept fallback provider.
func NewNotFoundConceptProvider() *NotFoundConceptProvider {
	return &NotFoundConceptProvider{
		DefaultConceptProvider: DefaultConceptProvider{code: types.NotFoundConcept()},
	}
}

func (p *NotFoundConceptProvider) Spec(_ period.Period, _ types.VersionCode) ConceptSpec {
	return NotFoundConceptSpec()
}

// NotFoundArticleProvider always yields the article sentinel.
type NotFoundArticleProvider struct {
	DefaultArticleProvider
}

// NewNotFoundArticleProvider creates the article fallback provider.
func NewNotFoundArticleProvider() *NotFoundArticleProvider {
	return &NotFoundArticleProvider{
		DefaultArticleProvider: DefaultArticleProvider{code: types.NotFoundArticle()},
	}
}

func (p *NotFoundArticleProvider) Spec(_ period.Period, _ types.VersionCode) ArticleSpec {
	return NotFoundArticleSpec()
}
