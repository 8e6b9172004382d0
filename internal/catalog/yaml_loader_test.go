package catalog

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lexreg/internal/domain/registry"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

const incomeCatalog = `
concepts:
  - code: 101
    name: CONCEPT_INCOME_BASE
    path: [1001, 1002]
    evaluator: sum
articles:
  - code: 1001
    name: ARTICLE_GROSS_WAGE
    seqs: 0
    role: 101
    sums: []
  - code: 1002
    name: ARTICLE_BONUS
    seqs: 1
    role: 101
    sums: [1001]
`

const taxCatalog = `
concepts:
  - code: 202
    name: CONCEPT_INCOME_TAX
    path: [2001]
articles:
  - code: 2001
    name: ARTICLE_TAX_BASE
    seqs: 0
    role: 202
    sums: [1001, 1002]
`

func TestLoadFromYAML_MergesFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"catalogs/income/catalog.yaml": {Data: []byte(incomeCatalog)},
		"catalogs/tax/catalog.yaml":    {Data: []byte(taxCatalog)},
		"catalogs/tax/README.md":       {Data: []byte("ignored")},
	}

	c, err := LoadFromYAML(fsys)
	require.NoError(t, err)

	concepts, articles := c.Len()
	require.Equal(t, 2, concepts)
	require.Equal(t, 3, articles)
	require.Equal(t, "CONCEPT_INCOME_TAX", c.ConceptName(202))
	require.Equal(t, "ARTICLE_BONUS", c.ArticleName(1002))
	require.Empty(t, c.ArticleName(9999))
}

func TestLoadFromYAML_DuplicateAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"catalogs/a/catalog.yaml": {Data: []byte(incomeCatalog)},
		"catalogs/b/catalog.yaml": {Data: []byte(incomeCatalog)},
	}

	_, err := LoadFromYAML(fsys)
	require.Error(t, err)
	require.ErrorIs(t, err, registry.ErrDuplicateCode)

	var dup *registry.DuplicateCodeError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, "concept", dup.Space)
	require.Equal(t, int32(101), dup.Code)
}

func TestLoadFromYAML_NoCatalogs(t *testing.T) {
	fsys := fstest.MapFS{
		"catalogs/empty/notes.txt": {Data: []byte("nothing here")},
	}

	_, err := LoadFromYAML(fsys)
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestLoadFromYAML_MissingRoot(t *testing.T) {
	_, err := LoadFromYAML(fstest.MapFS{})
	require.Error(t, err)
}

func TestLoadFromBytes_DuplicateInOneFile(t *testing.T) {
	content := `
articles:
  - code: 1001
    name: A
    sums: []
  - code: 1001
    name: B
    sums: []
`
	_, err := LoadFromBytes([]byte(content), "dup.yaml")
	require.ErrorIs(t, err, registry.ErrDuplicateCode)
}

func TestLoadFromBytes_RejectsUnknownFields(t *testing.T) {
	content := `
concepts:
  - code: 101
    name: X
    pth: [1]
`
	_, err := LoadFromBytes([]byte(content), "typo.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "typo.yaml")
}

func TestLoadFromBytes_RejectsSelfReference(t *testing.T) {
	content := `
articles:
  - code: 1001
    name: LOOP
    sums: [1001]
`
	_, err := LoadFromBytes([]byte(content), "loop.yaml")
	require.ErrorIs(t, err, registry.ErrSelfReference)
}

func TestLoadFromBytes_RejectsUnknownEvaluator(t *testing.T) {
	content := `
concepts:
  - code: 101
    name: X
    path: []
    evaluator: median
`
	_, err := LoadFromBytes([]byte(content), "eval.yaml")
	require.ErrorIs(t, err, ErrUnknownEvaluator)
}

func TestLoadFromBytes_EmptyDocument(t *testing.T) {
	c, err := LoadFromBytes(nil, "empty.yaml")
	require.NoError(t, err)

	concepts, articles := c.Len()
	require.Zero(t, concepts)
	require.Zero(t, articles)
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	out, err := c.EncodeYAML()
	require.NoError(t, err)

	again, err := LoadFromBytes(out, "encoded.yaml")
	require.NoError(t, err)
	require.Equal(t, c.Definitions(), again.Definitions())
}

func TestBuiltin_Loads(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	concepts, articles, err := c.Factories()
	require.NoError(t, err)
	require.Equal(t, []types.ConceptCode{101, 202, 303}, concepts.Codes())
	require.True(t, articles.Contains(types.GetArticleCode(2002)))

	// Every article role must name a builtin concept.
	for _, spec := range articles.GetSpecList(nil, types.GetVersionCode(0)) {
		require.True(t, concepts.Contains(spec.Role()), "article %d role %d", spec.Code(), spec.Role())
	}
}
