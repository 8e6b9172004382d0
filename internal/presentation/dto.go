// Package presentation converts registry specifications to DTOs and renders them
// as JSON, tables or diffs.
package presentation

import (
	"github.com/zjrosen/lexreg/internal/domain/registry"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

// Namer resolves catalog names for codes. *catalog.Catalog implements it.
type Namer interface {
	ConceptName(code int32) string
	ArticleName(code int32) string
}

// ConceptSpecDTO represents a resolved concept specification for presentation
type ConceptSpecDTO struct {
	Code         int32   `json:"code"`
	Name         string  `json:"name,omitempty"`
	Path         []int32 `json:"path"`
	HasEvaluator bool    `json:"has_evaluator"`
	NotFound     bool    `json:"not_found,omitempty"`
}

// ArticleSpecDTO represents a resolved article specification for presentation
type ArticleSpecDTO struct {
	Code     int32   `json:"code"`
	Name     string  `json:"name,omitempty"`
	Seqs     int16   `json:"seqs"`
	Role     int32   `json:"role"`
	Sums     []int32 `json:"sums"`
	Term     string  `json:"term"`
	NotFound bool    `json:"not_found,omitempty"`
}

// ValidationDTO reports the outcome of validating a catalog source.
type ValidationDTO struct {
	Source   string `json:"source"`
	Valid    bool   `json:"valid"`
	Concepts int    `json:"concepts"`
	Articles int    `json:"articles"`
	Error    string `json:"error,omitempty"`
}

// DiffDTO is the difference between one specification at two points in time.
type DiffDTO struct {
	Space   string `json:"space"`
	Code    int32  `json:"code"`
	From    string `json:"from"`
	To      string `json:"to"`
	Changed bool   `json:"changed"`
	Diff    string `json:"diff"`
}

func articleValues(codes []types.ArticleCode) []int32 {
	out := make([]int32, len(codes))
	for i, c := range codes {
		out[i] = c.Value()
	}
	return out
}

// FromConceptSpec converts a concept specification to a DTO. names may be nil.
func FromConceptSpec(spec registry.ConceptSpec, names Namer) ConceptSpecDTO {
	dto := ConceptSpecDTO{
		Code:         spec.Code().Value(),
		Path:         articleValues(spec.Path()),
		HasEvaluator: spec.ResultDelegate() != nil,
		NotFound:     registry.IsNotFoundConcept(spec),
	}
	if names != nil {
		dto.Name = names.ConceptName(dto.Code)
	}
	return dto
}

// FromConceptSpecs converts a slice of concept specifications to DTOs
func FromConceptSpecs(specs []registry.ConceptSpec, names Namer) []ConceptSpecDTO {
	dtos := make([]ConceptSpecDTO, len(specs))
	for i, spec := range specs {
		dtos[i] = FromConceptSpec(spec, names)
	}
	return dtos
}

// FromArticleSpec converts an article specification to a DTO. names may be nil.
func FromArticleSpec(spec registry.ArticleSpec, names Namer) ArticleSpecDTO {
	dto := ArticleSpecDTO{
		Code:     spec.Code().Value(),
		Seqs:     spec.Seqs().Value(),
		Role:     spec.Role().Value(),
		Sums:     articleValues(spec.Sums()),
		Term:     spec.Term().String(),
		NotFound: registry.IsNotFoundArticle(spec),
	}
	if names != nil {
		dto.Name = names.ArticleName(dto.Code)
	}
	return dto
}

// FromArticleSpecs converts a slice of article specifications to DTOs
func FromArticleSpecs(specs []registry.ArticleSpec, names Namer) []ArticleSpecDTO {
	dtos := make([]ArticleSpecDTO, len(specs))
	for i, spec := range specs {
		dtos[i] = FromArticleSpec(spec, names)
	}
	return dtos
}
