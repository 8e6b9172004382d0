package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/registry"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

// Provider errors
var (
	ErrDuplicateRevision = errors.New("duplicate revision for since/version")
)

// revision is one prebuilt specification and the point from which it applies.
type revision[S any] struct {
	since   int32 // period code, 0 when open-ended
	version types.VersionCode
	spec    S
}

func (r revision[S]) applies(p period.Period, v types.VersionCode) bool {
	if r.since != 0 && p != nil && p.Code() < r.since {
		return false
	}
	return r.version == 0 || r.version <= v
}

// sortRevisions orders revisions by (since, version) and rejects repeated keys.
func sortRevisions[S any](revs []revision[S]) error {
	slices.SortStableFunc(revs, func(a, b revision[S]) int {
		if c := cmp.Compare(a.since, b.since); c != 0 {
			return c
		}
		return cmp.Compare(a.version, b.version)
	})
	for i := 1; i < len(revs); i++ {
		if revs[i].since == revs[i-1].since && revs[i].version == revs[i-1].version {
			return fmt.Errorf("%w: since %d version %d", ErrDuplicateRevision, revs[i].since, revs[i].version)
		}
	}
	return nil
}

// selectRevision returns the latest revision that applies to p and v.
// A nil period matches every revision.
func selectRevision[S any](revs []revision[S], p period.Period, v types.VersionCode) (S, bool) {
	for i := len(revs) - 1; i >= 0; i-- {
		if revs[i].applies(p, v) {
			return revs[i].spec, true
		}
	}
	var zero S
	return zero, false
}

func parseSince(since string) (int32, error) {
	if since == "" {
		return 0, nil
	}
	m, err := period.Parse(since)
	if err != nil {
		return 0, err
	}
	return m.Code(), nil
}

// ConceptProvider resolves a catalog concept, choosing the revision effective for the
// requested period and version. Before its first effective period it degrades to the
// stub specification of the embedded default provider.
type ConceptProvider struct {
	registry.DefaultConceptProvider
	name      string
	revisions []revision[registry.ConceptSpec]
}

// NewConceptProvider builds the provider for def, prebuilding every revision.
func NewConceptProvider(def ConceptDef) (*ConceptProvider, error) {
	code := types.GetConceptCode(def.Code)
	p := &ConceptProvider{
		DefaultConceptProvider: *registry.NewDefaultConceptProvider(code),
		name:                   def.Name,
	}

	for _, rev := range def.Resolve() {
		since, err := parseSince(rev.Since)
		if err != nil {
			return nil, fmt.Errorf("concept %d: %w", def.Code, err)
		}
		delegate, err := Evaluator(rev.Evaluator)
		if err != nil {
			return nil, fmt.Errorf("concept %d: %w", def.Code, err)
		}
		p.revisions = append(p.revisions, revision[registry.ConceptSpec]{
			since:   since,
			version: types.GetVersionCode(rev.Version),
			spec:    registry.NewConceptSpec(code, types.ArticleCodes(rev.Path...), delegate),
		})
	}
	if err := sortRevisions(p.revisions); err != nil {
		return nil, fmt.Errorf("concept %d: %w", def.Code, err)
	}
	return p, nil
}

// Name returns the catalog name of the concept.
func (p *ConceptProvider) Name() string {
	return p.name
}

func (p *ConceptProvider) Spec(per period.Period, v types.VersionCode) registry.ConceptSpec {
	if spec, ok := selectRevision(p.revisions, per, v); ok {
		return spec
	}
	return p.DefaultConceptProvider.Spec(per, v)
}

// ArticleProvider resolves a catalog article, choosing the revision effective for the
// requested period and version.
type ArticleProvider struct {
	registry.DefaultArticleProvider
	name      string
	revisions []revision[registry.ArticleSpec]
}

// NewArticleProvider builds the provider for def. Every revision is validated,
// including the rule that an article never sums itself.
func NewArticleProvider(def ArticleDef) (*ArticleProvider, error) {
	code := types.GetArticleCode(def.Code)
	p := &ArticleProvider{
		DefaultArticleProvider: *registry.NewDefaultArticleProvider(code),
		name:                   def.Name,
	}

	for _, rev := range def.Resolve() {
		since, err := parseSince(rev.Since)
		if err != nil {
			return nil, fmt.Errorf("article %d: %w", def.Code, err)
		}
		spec, err := registry.NewArticleSpec(code, types.GetArticleSeqs(rev.Seqs), types.GetConceptCode(rev.Role), types.ArticleCodes(rev.Sums...))
		if err != nil {
			return nil, fmt.Errorf("article %d: %w", def.Code, err)
		}
		p.revisions = append(p.revisions, revision[registry.ArticleSpec]{
			since:   since,
			version: types.GetVersionCode(rev.Version),
			spec:    spec,
		})
	}
	if err := sortRevisions(p.revisions); err != nil {
		return nil, fmt.Errorf("article %d: %w", def.Code, err)
	}
	return p, nil
}

// Name returns the catalog name of the article.
func (p *ArticleProvider) Name() string {
	return p.name
}

func (p *ArticleProvider) Spec(per period.Period, v types.VersionCode) registry.ArticleSpec {
	if spec, ok := selectRevision(p.revisions, per, v); ok {
		return spec
	}
	return p.DefaultArticleProvider.Spec(per, v)
}

// Compile-time checks that catalog providers satisfy the registry contracts.
var (
	_ registry.ConceptSpecProvider = (*ConceptProvider)(nil)
	_ registry.ArticleSpecProvider = (*ArticleProvider)(nil)
)
