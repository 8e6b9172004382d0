package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lexreg/internal/domain/types"
)

func TestArticleSpecBuilder_Defaults(t *testing.T) {
	spec, err := NewArticleSpecBuilder(types.GetArticleCode(10)).Build()
	require.NoError(t, err)

	require.True(t, spec.Seqs().IsZero())
	require.Equal(t, types.NotFoundConcept(), spec.Role())
	require.Empty(t, spec.Sums())
}

func TestArticleSpecBuilder_Fluent(t *testing.T) {
	spec, err := NewArticleSpecBuilder(types.GetArticleCode(10)).
		Seqs(types.GetArticleSeqs(3)).
		Role(types.GetConceptCode(4)).
		Sums(types.ArticleCodes(11, 12)...).
		Build()
	require.NoError(t, err)

	require.Equal(t, types.GetArticleSeqs(3), spec.Seqs())
	require.Equal(t, types.GetConceptCode(4), spec.Role())
	require.Equal(t, types.ArticleCodes(11, 12), spec.Sums())
}

func TestArticleSpecBuilder_RejectsSelfReference(t *testing.T) {
	_, err := NewArticleSpecBuilder(types.GetArticleCode(10)).
		Sums(types.ArticleCodes(11, 10)...).
		Build()

	require.ErrorIs(t, err, ErrSelfReference)
	require.Contains(t, err.Error(), "ARTICLE_10")
}

func TestMustArticleSpec_Panics(t *testing.T) {
	require.Panics(t, func() {
		MustArticleSpec(types.GetArticleCode(1), types.ZeroSeqs(), types.NotFoundConcept(), types.ArticleCodes(1))
	})
}
