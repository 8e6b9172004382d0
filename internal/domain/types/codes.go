// Package types holds the value identifiers shared by the specification registry.
//
// Concept and article codes are both integers on the wire but live in separate code
// spaces. They are distinct named types so a concept code can never be used where an
// article code is expected.
package types

import "fmt"

// Reserved sentinel values for codes that have no registered definition.
const (
	ConceptNotFound int32 = 0
	ArticleNotFound int32 = 0
)

// ConceptCode identifies a legal concept.
type ConceptCode int32

// GetConceptCode returns the concept code for value. Any value is accepted.
func GetConceptCode(value int32) ConceptCode {
	return ConceptCode(value)
}

// NotFoundConcept returns the reserved concept code used by the NotFound sentinel.
func NotFoundConcept() ConceptCode {
	return ConceptCode(ConceptNotFound)
}

// Value returns the underlying integer.
func (c ConceptCode) Value() int32 {
	return int32(c)
}

// IsNotFound reports whether c is the reserved sentinel code.
func (c ConceptCode) IsNotFound() bool {
	return int32(c) == ConceptNotFound
}

func (c ConceptCode) String() string {
	return fmt.Sprintf("CONCEPT_%d", int32(c))
}

// ArticleCode identifies an article of a statute.
type ArticleCode int32

// GetArticleCode returns the article code for value. Any value is accepted.
func GetArticleCode(value int32) ArticleCode {
	return ArticleCode(value)
}

// NotFoundArticle returns the reserved article code used by the NotFound sentinel.
func NotFoundArticle() ArticleCode {
	return ArticleCode(ArticleNotFound)
}

// Value returns the underlying integer.
func (a ArticleCode) Value() int32 {
	return int32(a)
}

// IsNotFound reports whether a is the reserved sentinel code.
func (a ArticleCode) IsNotFound() bool {
	return int32(a) == ArticleNotFound
}

func (a ArticleCode) String() string {
	return fmt.Sprintf("ARTICLE_%d", int32(a))
}

// ArticleCodes converts raw values into article codes, preserving order.
func ArticleCodes(values ...int32) []ArticleCode {
	codes := make([]ArticleCode, len(values))
	for i, v := range values {
		codes[i] = GetArticleCode(v)
	}
	return codes
}

// VersionCode identifies a revision of the legal rules, orthogonal to the period.
type VersionCode int32

// GetVersionCode returns the version code for value.
func GetVersionCode(value int32) VersionCode {
	return VersionCode(value)
}

// Value returns the underlying integer.
func (v VersionCode) Value() int32 {
	return int32(v)
}

func (v VersionCode) String() string {
	return fmt.Sprintf("VERSION_%d", int32(v))
}
