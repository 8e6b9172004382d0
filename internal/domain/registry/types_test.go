package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

func TestConceptSpec_Getters(t *testing.T) {
	delegate := func(_ context.Context, _ period.Period, _ types.VersionCode, inputs []int64) (int64, error) {
		return int64(len(inputs)), nil
	}
	spec := NewConceptSpec(types.GetConceptCode(101), types.ArticleCodes(1, 2, 3), delegate)

	require.Equal(t, types.GetConceptCode(101), spec.Code())
	require.Equal(t, types.ArticleCodes(1, 2, 3), spec.Path())
	require.NotNil(t, spec.ResultDelegate())

	got, err := spec.ResultDelegate()(context.Background(), testPeriod, testVersion, []int64{4, 5})
	require.NoError(t, err)
	require.Equal(t, int64(2), got)
}

func TestConceptSpec_PathIsImmutable(t *testing.T) {
	path := types.ArticleCodes(1, 2)
	spec := NewConceptSpec(types.GetConceptCode(1), path, nil)

	path[0] = 99
	require.Equal(t, types.ArticleCodes(1, 2), spec.Path(), "input slice must be copied")

	out := spec.Path()
	out[1] = 99
	require.Equal(t, types.ArticleCodes(1, 2), spec.Path(), "returned slice must be a copy")
}

func TestArticleSpec_Getters(t *testing.T) {
	spec := MustArticleSpec(types.GetArticleCode(1001), types.GetArticleSeqs(20), types.GetConceptCode(7), types.ArticleCodes(1002, 1003))

	require.Equal(t, types.GetArticleCode(1001), spec.Code())
	require.Equal(t, types.GetArticleSeqs(20), spec.Seqs())
	require.Equal(t, types.GetConceptCode(7), spec.Role())
	require.Equal(t, types.ArticleCodes(1002, 1003), spec.Sums())
	require.Equal(t, types.GetArticleTerm(types.GetArticleCode(1001), types.GetArticleSeqs(20)), spec.Term())
	require.Equal(t, types.GetArticleDefine(types.GetArticleCode(1001), types.GetArticleSeqs(20), types.GetConceptCode(7)), spec.Defs())
}

func TestArticleSpec_SumsIsImmutable(t *testing.T) {
	sums := types.ArticleCodes(2, 3)
	spec := MustArticleSpec(types.GetArticleCode(1), types.ZeroSeqs(), types.GetConceptCode(1), sums)

	sums[0] = 99
	out := spec.Sums()
	out[1] = 99
	require.Equal(t, types.ArticleCodes(2, 3), spec.Sums())
}

func TestConceptSpecEqual(t *testing.T) {
	noop := func(context.Context, period.Period, types.VersionCode, []int64) (int64, error) { return 0, nil }
	a := NewConceptSpec(types.GetConceptCode(1), types.ArticleCodes(1, 2), nil)

	require.True(t, ConceptSpecEqual(a, NewConceptSpec(types.GetConceptCode(1), types.ArticleCodes(1, 2), nil)))
	require.False(t, ConceptSpecEqual(a, NewConceptSpec(types.GetConceptCode(1), types.ArticleCodes(2, 1), nil)), "path order matters")
	require.False(t, ConceptSpecEqual(a, NewConceptSpec(types.GetConceptCode(1), types.ArticleCodes(1, 2), noop)))
	require.False(t, ConceptSpecEqual(a, nil))
	require.True(t, ConceptSpecEqual(nil, nil))
}

func TestArticleSpecEqual(t *testing.T) {
	a := MustArticleSpec(types.GetArticleCode(1), types.ZeroSeqs(), types.GetConceptCode(2), types.ArticleCodes(3))

	require.True(t, ArticleSpecEqual(a, MustArticleSpec(types.GetArticleCode(1), types.ZeroSeqs(), types.GetConceptCode(2), types.ArticleCodes(3))))
	require.False(t, ArticleSpecEqual(a, MustArticleSpec(types.GetArticleCode(1), types.GetArticleSeqs(1), types.GetConceptCode(2), types.ArticleCodes(3))))
	require.False(t, ArticleSpecEqual(a, MustArticleSpec(types.GetArticleCode(1), types.ZeroSeqs(), types.GetConceptCode(2), nil)))
}
