package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zjrosen/lexreg/internal/domain/types"
)

// Builder errors
var (
	ErrSelfReference = errors.New("article cannot sum itself")
)

// ArticleSpecBuilder provides a fluent API for creating article specifications
type ArticleSpecBuilder struct {
	code types.ArticleCode
	seqs types.ArticleSeqs
	role types.ConceptCode
	sums []types.ArticleCode
}

// NewArticleSpecBuilder creates a builder for code. Until set, the sequence number is
// zero, the role is the NotFound concept and the sums are empty.
func NewArticleSpecBuilder(code types.ArticleCode) *ArticleSpecBuilder {
	return &ArticleSpecBuilder{
		code: code,
		seqs: types.ZeroSeqs(),
		role: types.NotFoundConcept(),
	}
}

// Seqs sets the sequence number within the article
func (b *ArticleSpecBuilder) Seqs(seqs types.ArticleSeqs) *ArticleSpecBuilder {
	b.seqs = seqs
	return b
}

// Role sets the concept the article plays
func (b *ArticleSpecBuilder) Role(role types.ConceptCode) *ArticleSpecBuilder {
	b.role = role
	return b
}

// Sums sets the aggregated articles, in order
func (b *ArticleSpecBuilder) Sums(codes ...types.ArticleCode) *ArticleSpecBuilder {
	b.sums = codes
	return b
}

// Build creates the specification, validating that it does not sum itself
func (b *ArticleSpecBuilder) Build() (ArticleSpec, error) {
	if slices.Contains(b.sums, b.code) {
		return nil, fmt.Errorf("%w: %s", ErrSelfReference, b.code)
	}
	return newArticleSpec(b.code, b.seqs, b.role, b.sums), nil
}

// NewArticleSpec creates an immutable article specification.
func NewArticleSpec(code types.ArticleCode, seqs types.ArticleSeqs, role types.ConceptCode, sums []types.ArticleCode) (ArticleSpec, error) {
	return NewArticleSpecBuilder(code).Seqs(seqs).Role(role).Sums(sums...).Build()
}

// MustArticleSpec is like NewArticleSpec but panics on error. Intended for static
// catalogs and tests.
func MustArticleSpec(code types.ArticleCode, seqs types.ArticleSeqs, role types.ConceptCode, sums []types.ArticleCode) ArticleSpec {
	spec, err := NewArticleSpec(code, seqs, role, sums)
	if err != nil {
		panic(err)
	}
	return spec
}
