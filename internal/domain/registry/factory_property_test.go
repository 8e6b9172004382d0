package registry

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

func drawPeriod(t *rapid.T) period.Month {
	year := rapid.Int16Range(1990, 2040).Draw(t, "year")
	month := rapid.Int16Range(1, 12).Draw(t, "month")
	return period.MustMonth(year, month)
}

// Property: every registered code resolves to exactly what its provider returns,
// every other code resolves to the sentinel, and the list has one entry per code.
func TestProperty_ConceptFactoryResolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		codes := rapid.SliceOfNDistinct(rapid.Int32Range(1, 500), 0, 40, rapid.ID[int32]).Draw(t, "codes")
		providers := make([]ConceptSpecProvider, len(codes))
		byCode := make(map[types.ConceptCode]ConceptSpecProvider, len(codes))
		for i, c := range codes {
			providers[i] = newPathProvider(c)
			byCode[types.GetConceptCode(c)] = providers[i]
		}

		f, err := NewConceptSpecFactory(providers)
		require.NoError(t, err)

		per := drawPeriod(t)
		v := types.GetVersionCode(rapid.Int32Range(0, 3000).Draw(t, "version"))
		probe := types.GetConceptCode(rapid.Int32Range(1, 600).Draw(t, "probe"))

		got := f.GetSpec(probe, per, v)
		if p, ok := byCode[probe]; ok {
			require.True(t, ConceptSpecEqual(p.Spec(per, v), got))
		} else {
			require.Equal(t, types.NotFoundConcept(), got.Code())
			require.Empty(t, got.Path())
			require.Nil(t, got.ResultDelegate())
		}

		list := f.GetSpecList(per, v)
		require.Len(t, list, len(codes))
		listed := make([]types.ConceptCode, len(list))
		for i, s := range list {
			listed[i] = s.Code()
		}
		require.True(t, slices.IsSorted(listed))
		require.ElementsMatch(t, f.Codes(), listed)
	})
}

// Property: resolution is deterministic for identical inputs.
func TestProperty_ArticleFactoryDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		codes := rapid.SliceOfNDistinct(rapid.Int32Range(1, 200), 1, 20, rapid.ID[int32]).Draw(t, "codes")
		providers := make([]ArticleSpecProvider, len(codes))
		for i, c := range codes {
			providers[i] = NewDefaultArticleProvider(types.GetArticleCode(c))
		}
		f, err := NewArticleSpecFactory(providers)
		require.NoError(t, err)

		per := drawPeriod(t)
		code := types.GetArticleCode(rapid.Int32Range(0, 250).Draw(t, "code"))

		first := f.GetSpec(code, per, testVersion)
		second := f.GetSpec(code, per, testVersion)
		require.True(t, ArticleSpecEqual(first, second))
	})
}

// Property: any provider list containing a repeated code is rejected.
func TestProperty_DuplicateCodesRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		codes := rapid.SliceOfN(rapid.Int32Range(1, 10), 2, 15).Draw(t, "codes")
		providers := make([]ConceptSpecProvider, len(codes))
		seen := make(map[int32]bool)
		hasDup := false
		for i, c := range codes {
			providers[i] = NewDefaultConceptProvider(types.GetConceptCode(c))
			if seen[c] {
				hasDup = true
			}
			seen[c] = true
		}

		_, err := NewConceptSpecFactory(providers)
		if hasDup {
			require.ErrorIs(t, err, ErrDuplicateCode)
		} else {
			require.NoError(t, err)
		}
	})
}

func TestConceptSpecFactory_ConcurrentReaders(t *testing.T) {
	f := mkConceptFactory(t, 1, 2, 3, 4, 5)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				code := types.GetConceptCode(int32((i+j)%7 + 1))
				spec := f.GetSpec(code, testPeriod, testVersion)
				if f.Contains(code) {
					assert.Equal(t, code, spec.Code())
				} else {
					assert.True(t, IsNotFoundConcept(spec))
				}
				assert.Len(t, f.GetSpecList(testPeriod, testVersion), 5)
			}
		}(i)
	}
	wg.Wait()
}
