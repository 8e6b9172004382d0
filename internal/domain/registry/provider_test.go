package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

func TestDefaultArticleProvider_StubDefaults(t *testing.T) {
	p := NewDefaultArticleProvider(types.GetArticleCode(1001))

	for _, per := range []period.Month{period.MustMonth(2000, 1), period.MustMonth(2030, 12)} {
		for _, v := range []types.VersionCode{0, 2024} {
			spec := p.Spec(per, v)
			require.Equal(t, types.GetArticleCode(1001), spec.Code())
			require.True(t, spec.Seqs().IsZero())
			require.Equal(t, types.NotFoundConcept(), spec.Role())
			require.Empty(t, spec.Sums())
		}
	}
}

func TestDefaultConceptProvider_StubDefaults(t *testing.T) {
	p := NewDefaultConceptProvider(types.GetConceptCode(101))

	spec := p.Spec(testPeriod, testVersion)
	require.Equal(t, types.GetConceptCode(101), spec.Code())
	require.Empty(t, spec.Path())
	require.Nil(t, spec.ResultDelegate())
}

func TestConceptProviderFunc_ForwardsCode(t *testing.T) {
	p := NewConceptProviderFunc(types.GetConceptCode(5), func(per period.Period, _ types.VersionCode) ConceptSpec {
		return NewConceptSpec(types.GetConceptCode(5), types.ArticleCodes(int32(per.Month())), nil)
	})

	require.Equal(t, types.GetConceptCode(5), p.Code())
	require.Equal(t, types.ArticleCodes(3), p.Spec(period.MustMonth(2024, 3), testVersion).Path())
}

func TestConceptProviderFunc_NilResultFallsBackToStub(t *testing.T) {
	p := NewConceptProviderFunc(types.GetConceptCode(5), func(period.Period, types.VersionCode) ConceptSpec {
		return nil
	})

	spec := p.Spec(testPeriod, testVersion)
	require.NotNil(t, spec)
	require.Equal(t, types.GetConceptCode(5), spec.Code())
	require.Empty(t, spec.Path())
}

func TestArticleProviderFunc_NilFunc(t *testing.T) {
	p := NewArticleProviderFunc(types.GetArticleCode(8), nil)

	spec := p.Spec(testPeriod, testVersion)
	require.Equal(t, types.GetArticleCode(8), spec.Code())
	require.Equal(t, types.NotFoundConcept(), spec.Role())
}

// wrappedArticleSpec forwards everything to the inner spec except Role.
type wrappedArticleSpec struct {
	ArticleSpec
	role types.ConceptCode
}

func (w wrappedArticleSpec) Role() types.ConceptCode { return w.role }

func TestArticleSpec_ForwardingByEmbedding(t *testing.T) {
	inner := MustArticleSpec(types.GetArticleCode(3), types.GetArticleSeqs(1), types.GetConceptCode(1), types.ArticleCodes(4))
	w := wrappedArticleSpec{ArticleSpec: inner, role: types.GetConceptCode(9)}

	require.Equal(t, inner.Code(), w.Code())
	require.Equal(t, inner.Sums(), w.Sums())
	require.Equal(t, inner.Term(), w.Term())
	require.Equal(t, types.GetConceptCode(9), w.Role())
}
