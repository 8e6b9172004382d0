package testutil

import "github.com/zjrosen/lexreg/internal/catalog"

// ConceptOption configures a concept definition.
type ConceptOption func(*catalog.ConceptDef)

// ArticleOption configures an article definition.
type ArticleOption func(*catalog.ArticleDef)

// ConceptName sets the concept name.
func ConceptName(name string) ConceptOption {
	return func(d *catalog.ConceptDef) { d.Name = name }
}

// ConceptSince sets the first effective period ("YYYY-MM").
func ConceptSince(since string) ConceptOption {
	return func(d *catalog.ConceptDef) { d.Since = since }
}

// Path sets the concept's article path.
func Path(codes ...int32) ConceptOption {
	return func(d *catalog.ConceptDef) { d.Path = codes }
}

// Evaluator sets the named evaluator.
func Evaluator(name string) ConceptOption {
	return func(d *catalog.ConceptDef) { d.Evaluator = name }
}

// ConceptRevision appends a revision effective from since and version.
// A nil path inherits the base path.
func ConceptRevision(since string, version int32, path []int32, evaluator string) ConceptOption {
	return func(d *catalog.ConceptDef) {
		rev := catalog.ConceptRevisionDef{Since: since, Version: version}
		if path != nil {
			rev.Path = &path
		}
		if evaluator != "" {
			rev.Evaluator = &evaluator
		}
		d.Revisions = append(d.Revisions, rev)
	}
}

// ArticleName sets the article name.
func ArticleName(name string) ArticleOption {
	return func(d *catalog.ArticleDef) { d.Name = name }
}

// ArticleSince sets the first effective period ("YYYY-MM").
func ArticleSince(since string) ArticleOption {
	return func(d *catalog.ArticleDef) { d.Since = since }
}

// Seqs sets the sequence number.
func Seqs(seqs int16) ArticleOption {
	return func(d *catalog.ArticleDef) { d.Seqs = seqs }
}

// Role sets the owning concept.
func Role(role int32) ArticleOption {
	return func(d *catalog.ArticleDef) { d.Role = role }
}

// Sums sets the summed article codes.
func Sums(codes ...int32) ArticleOption {
	return func(d *catalog.ArticleDef) { d.Sums = codes }
}

// ArticleRevision appends a revision that replaces the summed codes.
func ArticleRevision(since string, version int32, sums ...int32) ArticleOption {
	return func(d *catalog.ArticleDef) {
		if sums == nil {
			sums = []int32{}
		}
		d.Revisions = append(d.Revisions, catalog.ArticleRevisionDef{Since: since, Version: version, Sums: &sums})
	}
}
