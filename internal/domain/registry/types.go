package registry

import (
	"context"
	"slices"

	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

// ResultFunc evaluates a concept from the values already computed for the articles on
// its path.
type ResultFunc func(ctx context.Context, p period.Period, v types.VersionCode, inputs []int64) (int64, error)

// ConceptSpec is the resolved meaning of a concept code at a point in time.
type ConceptSpec interface {
	Code() types.ConceptCode
	// Path returns the articles that define or derive the concept, in traversal order.
	Path() []types.ArticleCode
	// ResultDelegate returns the evaluator, or nil when the concept has none.
	ResultDelegate() ResultFunc
}

// ArticleSpec is the resolved structural definition of an article code at a point in time.
type ArticleSpec interface {
	Code() types.ArticleCode
	Seqs() types.ArticleSeqs
	// Role returns the concept this article instantiates.
	Role() types.ConceptCode
	// Sums returns the articles this one aggregates, in order.
	Sums() []types.ArticleCode
	// Term is derived from Code and Seqs on every call.
	Term() types.ArticleTerm
	Defs() types.ArticleDefine
}

type conceptSpec struct {
	code     types.ConceptCode
	path     []types.ArticleCode
	delegate ResultFunc
}

// NewConceptSpec creates an immutable concept specification. The path is copied.
func NewConceptSpec(code types.ConceptCode, path []types.ArticleCode, delegate ResultFunc) ConceptSpec {
	return &conceptSpec{
		code:     code,
		path:     cloneCodes(path),
		delegate: delegate,
	}
}

func (s *conceptSpec) Code() types.ConceptCode {
	return s.code
}

func (s *conceptSpec) Path() []types.ArticleCode {
	return cloneCodes(s.path)
}

func (s *conceptSpec) ResultDelegate() ResultFunc {
	return s.delegate
}

type articleSpec struct {
	code types.ArticleCode
	seqs types.ArticleSeqs
	role types.ConceptCode
	sums []types.ArticleCode
}

// newArticleSpec creates an article specification (used by builder)
func newArticleSpec(code types.ArticleCode, seqs types.ArticleSeqs, role types.ConceptCode, sums []types.ArticleCode) *articleSpec {
	return &articleSpec{
		code: code,
		seqs: seqs,
		role: role,
		sums: cloneCodes(sums),
	}
}

func (s *articleSpec) Code() types.ArticleCode {
	return s.code
}

func (s *articleSpec) Seqs() types.ArticleSeqs {
	return s.seqs
}

func (s *articleSpec) Role() types.ConceptCode {
	return s.role
}

func (s *articleSpec) Sums() []types.ArticleCode {
	return cloneCodes(s.sums)
}

func (s *articleSpec) Term() types.ArticleTerm {
	return types.GetArticleTerm(s.code, s.seqs)
}

func (s *articleSpec) Defs() types.ArticleDefine {
	return types.GetArticleDefine(s.code, s.seqs, s.role)
}

// ConceptSpecEqual reports whether two concept specifications are value-equal.
// Delegates are compared by presence only.
func ConceptSpecEqual(a, b ConceptSpec) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Code() == b.Code() &&
		slices.Equal(a.Path(), b.Path()) &&
		(a.ResultDelegate() == nil) == (b.ResultDelegate() == nil)
}

// ArticleSpecEqual reports whether two article specifications are value-equal.
func ArticleSpecEqual(a, b ArticleSpec) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Defs() == b.Defs() && slices.Equal(a.Sums(), b.Sums())
}

// cloneCodes returns a non-nil copy so specs never share backing arrays with callers.
func cloneCodes(codes []types.ArticleCode) []types.ArticleCode {
	out := make([]types.ArticleCode, len(codes))
	copy(out, codes)
	return out
}
