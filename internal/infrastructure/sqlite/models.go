package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/zjrosen/lexreg/internal/catalog"
)

// ConceptModel represents the database row for the concepts table.
// Code lists are stored as JSON arrays.
type ConceptModel struct {
	Code      int32
	Name      string
	Since     string
	Path      string
	Evaluator string
}

// ConceptRevisionModel represents a row of the concept_revisions table.
// Nullable columns inherit the base concept's value.
type ConceptRevisionModel struct {
	ConceptCode int32
	Position    int
	Since       string
	Version     int32
	Path        *string // nullable, JSON encoded
	Evaluator   *string // nullable
}

// ArticleModel represents the database row for the articles table.
type ArticleModel struct {
	Code  int32
	Name  string
	Since string
	Seqs  int16
	Role  int32
	Sums  string
}

// ArticleRevisionModel represents a row of the article_revisions table.
type ArticleRevisionModel struct {
	ArticleCode int32
	Position    int
	Since       string
	Version     int32
	Seqs        *int16  // nullable
	Role        *int32  // nullable
	Sums        *string // nullable, JSON encoded
}

func encodeCodes(codes []int32) string {
	if codes == nil {
		codes = []int32{}
	}
	out, _ := json.Marshal(codes)
	return string(out)
}

func decodeCodes(s string) ([]int32, error) {
	codes := []int32{}
	if s == "" {
		return codes, nil
	}
	if err := json.Unmarshal([]byte(s), &codes); err != nil {
		return nil, fmt.Errorf("decode code list %q: %w", s, err)
	}
	return codes, nil
}

// toConceptModels converts a catalog concept definition to its database rows.
func toConceptModels(def catalog.ConceptDef) (*ConceptModel, []*ConceptRevisionModel) {
	m := &ConceptModel{
		Code:      def.Code,
		Name:      def.Name,
		Since:     def.Since,
		Path:      encodeCodes(def.Path),
		Evaluator: def.Evaluator,
	}
	revs := make([]*ConceptRevisionModel, 0, len(def.Revisions))
	for i, r := range def.Revisions {
		rm := &ConceptRevisionModel{
			ConceptCode: def.Code,
			Position:    i,
			Since:       r.Since,
			Version:     r.Version,
			Evaluator:   r.Evaluator,
		}
		if r.Path != nil {
			path := encodeCodes(*r.Path)
			rm.Path = &path
		}
		revs = append(revs, rm)
	}
	return m, revs
}

// toDefinition converts concept rows back to a catalog definition.
func (m *ConceptModel) toDefinition(revs []*ConceptRevisionModel) (catalog.ConceptDef, error) {
	path, err := decodeCodes(m.Path)
	if err != nil {
		return catalog.ConceptDef{}, fmt.Errorf("concept %d: %w", m.Code, err)
	}
	def := catalog.ConceptDef{
		Code:      m.Code,
		Name:      m.Name,
		Since:     m.Since,
		Path:      path,
		Evaluator: m.Evaluator,
	}
	for _, rm := range revs {
		r := catalog.ConceptRevisionDef{
			Since:     rm.Since,
			Version:   rm.Version,
			Evaluator: rm.Evaluator,
		}
		if rm.Path != nil {
			p, err := decodeCodes(*rm.Path)
			if err != nil {
				return catalog.ConceptDef{}, fmt.Errorf("concept %d revision %d: %w", m.Code, rm.Position, err)
			}
			r.Path = &p
		}
		def.Revisions = append(def.Revisions, r)
	}
	return def, nil
}

// toArticleModels converts a catalog article definition to its database rows.
func toArticleModels(def catalog.ArticleDef) (*ArticleModel, []*ArticleRevisionModel) {
	m := &ArticleModel{
		Code:  def.Code,
		Name:  def.Name,
		Since: def.Since,
		Seqs:  def.Seqs,
		Role:  def.Role,
		Sums:  encodeCodes(def.Sums),
	}
	revs := make([]*ArticleRevisionModel, 0, len(def.Revisions))
	for i, r := range def.Revisions {
		rm := &ArticleRevisionModel{
			ArticleCode: def.Code,
			Position:    i,
			Since:       r.Since,
			Version:     r.Version,
			Seqs:        r.Seqs,
			Role:        r.Role,
		}
		if r.Sums != nil {
			sums := encodeCodes(*r.Sums)
			rm.Sums = &sums
		}
		revs = append(revs, rm)
	}
	return m, revs
}

// toDefinition converts article rows back to a catalog definition.
func (m *ArticleModel) toDefinition(revs []*ArticleRevisionModel) (catalog.ArticleDef, error) {
	sums, err := decodeCodes(m.Sums)
	if err != nil {
		return catalog.ArticleDef{}, fmt.Errorf("article %d: %w", m.Code, err)
	}
	def := catalog.ArticleDef{
		Code:  m.Code,
		Name:  m.Name,
		Since: m.Since,
		Seqs:  m.Seqs,
		Role:  m.Role,
		Sums:  sums,
	}
	for _, rm := range revs {
		r := catalog.ArticleRevisionDef{
			Since:   rm.Since,
			Version: rm.Version,
			Seqs:    rm.Seqs,
			Role:    rm.Role,
		}
		if rm.Sums != nil {
			s, err := decodeCodes(*rm.Sums)
			if err != nil {
				return catalog.ArticleDef{}, fmt.Errorf("article %d revision %d: %w", m.Code, rm.Position, err)
			}
			r.Sums = &s
		}
		def.Revisions = append(def.Revisions, r)
	}
	return def, nil
}
