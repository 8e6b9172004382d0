package types

import (
	"cmp"
	"fmt"
)

// ArticleSeqs is the paragraph or item sequence number within an article.
// Zero denotes the whole article.
type ArticleSeqs int16

// GetArticleSeqs returns the sequence number for value.
func GetArticleSeqs(value int16) ArticleSeqs {
	return ArticleSeqs(value)
}

// ZeroSeqs returns the whole-article sequence number.
func ZeroSeqs() ArticleSeqs {
	return 0
}

// Value returns the underlying integer.
func (s ArticleSeqs) Value() int16 {
	return int16(s)
}

// IsZero reports whether s addresses the whole article.
func (s ArticleSeqs) IsZero() bool {
	return s == 0
}

// ArticleTerm addresses one article item. It is always derived from an article
// code and its sequence number, never stored independently.
type ArticleTerm struct {
	Code ArticleCode
	Seqs ArticleSeqs
}

// GetArticleTerm builds the term for code and seqs.
func GetArticleTerm(code ArticleCode, seqs ArticleSeqs) ArticleTerm {
	return ArticleTerm{Code: code, Seqs: seqs}
}

// Compare orders terms by sequence number first, then by code.
func (t ArticleTerm) Compare(other ArticleTerm) int {
	if c := cmp.Compare(t.Seqs, other.Seqs); c != 0 {
		return c
	}
	return cmp.Compare(t.Code, other.Code)
}

func (t ArticleTerm) String() string {
	return fmt.Sprintf("ART_%d_%d", t.Code.Value(), t.Seqs.Value())
}

// ArticleDefine is the structural triple of an article: what it is, where it sits
// and which concept it plays.
type ArticleDefine struct {
	Code ArticleCode
	Seqs ArticleSeqs
	Role ConceptCode
}

// GetArticleDefine builds an ArticleDefine.
func GetArticleDefine(code ArticleCode, seqs ArticleSeqs, role ConceptCode) ArticleDefine {
	return ArticleDefine{Code: code, Seqs: seqs, Role: role}
}

// Term returns the term derived from the define's code and seqs.
func (d ArticleDefine) Term() ArticleTerm {
	return GetArticleTerm(d.Code, d.Seqs)
}
