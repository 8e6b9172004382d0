package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lexreg/internal/domain/registry"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

type stubNamer map[int32]string

func (n stubNamer) ConceptName(code int32) string { return n[code] }
func (n stubNamer) ArticleName(code int32) string { return n[code] }

func TestFromConceptSpec(t *testing.T) {
	spec := registry.NewConceptSpec(types.GetConceptCode(101), types.ArticleCodes(1001, 1002), nil)

	dto := FromConceptSpec(spec, stubNamer{101: "CONCEPT_INCOME_BASE"})

	require.Equal(t, ConceptSpecDTO{
		Code: 101,
		Name: "CONCEPT_INCOME_BASE",
		Path: []int32{1001, 1002},
	}, dto)
}

func TestFromConceptSpec_NotFound(t *testing.T) {
	dto := FromConceptSpec(registry.NotFoundConceptSpec(), nil)

	require.True(t, dto.NotFound)
	require.Equal(t, int32(0), dto.Code)
	require.Empty(t, dto.Path)
	require.NotNil(t, dto.Path, "path should encode as [] not null")
}

func TestFromArticleSpec(t *testing.T) {
	spec := registry.MustArticleSpec(types.GetArticleCode(2001), types.GetArticleSeqs(1),
		types.GetConceptCode(202), types.ArticleCodes(1001, 1002))

	dto := FromArticleSpec(spec, stubNamer{2001: "ART_TAX"})

	require.Equal(t, ArticleSpecDTO{
		Code: 2001,
		Name: "ART_TAX",
		Seqs: 1,
		Role: 202,
		Sums: []int32{1001, 1002},
		Term: spec.Term().String(),
	}, dto)
}

func TestFromArticleSpecs_PreservesOrder(t *testing.T) {
	specs := []registry.ArticleSpec{
		registry.MustArticleSpec(types.GetArticleCode(1), types.ZeroSeqs(), types.GetConceptCode(9), nil),
		registry.NotFoundArticleSpec(),
	}

	dtos := FromArticleSpecs(specs, nil)

	require.Len(t, dtos, 2)
	assert.Equal(t, int32(1), dtos[0].Code)
	assert.False(t, dtos[0].NotFound)
	assert.True(t, dtos[1].NotFound)
}

func TestFormatter_JSONDefault(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, "")

	err := f.FormatConcepts([]ConceptSpecDTO{{Code: 101, Path: []int32{1001}}})
	require.NoError(t, err)

	var got []ConceptSpecDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, []ConceptSpecDTO{{Code: 101, Path: []int32{1001}}}, got)
	require.Contains(t, buf.String(), "\n  {", "output should be indented")
}

func TestFormatter_ConceptTable(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatTable)

	err := f.FormatConcepts([]ConceptSpecDTO{
		{Code: 101, Name: "CONCEPT_INCOME_BASE", Path: []int32{1001, 1002}, HasEvaluator: true},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "CONCEPT_INCOME_BASE")
	assert.Contains(t, out, "1001,1002")
	assert.Contains(t, out, "true")
}

func TestFormatter_ArticleTable(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatTable)

	err := f.FormatArticles([]ArticleSpecDTO{
		{Code: 2001, Seqs: 2, Role: 202, Sums: []int32{1001}, Term: "ART_2001_2"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ROLE")
	assert.Contains(t, out, "2001")
	assert.Contains(t, out, "ART_2001_2")
}

func TestFormatter_ValidationTable(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatTable)

	err := f.FormatValidation([]ValidationDTO{
		{Source: "builtin", Valid: true, Concepts: 3, Articles: 5},
		{Source: "bad.yaml", Error: "duplicate"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "builtin")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "duplicate")
}

func TestFormatter_DiffTable(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatTable)

	require.NoError(t, f.FormatDiff(DiffDTO{Space: "concept", Code: 1, From: "2020-01", To: "2021-01"}))
	require.Contains(t, buf.String(), "no changes")

	buf.Reset()
	require.NoError(t, f.FormatDiff(DiffDTO{
		Space: "concept", Code: 1, From: "2020-01", To: "2021-01",
		Changed: true, Diff: "-a\n+b\n",
	}))
	require.Equal(t, "--- concept 1 @ 2020-01\n+++ concept 1 @ 2021-01\n-a\n+b\n", buf.String())
}

func TestDiffLines(t *testing.T) {
	diff, changed := DiffLines("a\nb\nc\n", "a\nx\nc\n")

	require.True(t, changed)
	require.Equal(t, " a\n-b\n+x\n c\n", diff)
}

func TestDiffLines_Unchanged(t *testing.T) {
	diff, changed := DiffLines("a\nb\n", "a\nb\n")

	require.False(t, changed)
	require.Equal(t, " a\n b\n", diff)
}

func TestDiffJSON(t *testing.T) {
	from := ArticleSpecDTO{Code: 2001, Role: 202, Sums: []int32{1001}}
	to := ArticleSpecDTO{Code: 2001, Role: 202, Sums: []int32{1001, 2002}}

	diff, changed, err := DiffJSON(from, to)
	require.NoError(t, err)
	require.True(t, changed)
	require.Contains(t, diff, "+    2002")
	require.Contains(t, diff, " \"code\": 2001")
}
