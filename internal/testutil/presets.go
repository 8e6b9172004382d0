package testutil

// WithTwoConcepts adds concepts 101 and 202 with one article each.
func (b *Builder) WithTwoConcepts() *Builder {
	return b.
		WithConcept(101, ConceptName("CONCEPT_A"), Path(1001)).
		WithConcept(202, ConceptName("CONCEPT_B"), Path(2001)).
		WithArticle(1001, ArticleName("ARTICLE_A"), Role(101)).
		WithArticle(2001, ArticleName("ARTICLE_B"), Role(202), Sums(1001))
}

// WithTaxHistory adds concept 202 and article 2001 with a revision in 2021-01 that
// adds article 2002 to both.
func (b *Builder) WithTaxHistory() *Builder {
	return b.
		WithConcept(202, ConceptName("CONCEPT_TAX"), ConceptSince("2019-01"), Path(2001), Evaluator("sum"),
			ConceptRevision("2021-01", 0, []int32{2001, 2002}, "")).
		WithArticle(2001, ArticleSince("2019-01"), Role(202),
			ArticleRevision("2021-01", 0, 2002)).
		WithArticle(2002, ArticleSince("2021-01"), Role(202))
}
