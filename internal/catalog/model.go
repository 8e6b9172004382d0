// Package catalog turns catalog definitions (YAML files or an SQLite database) into
// the provider lists the registry factories are built from.
//
// A definition has a base revision plus optional later revisions. Each revision is
// effective from its "since" period and, when it names one, from its version onwards.
// Revisions inherit every field they leave out from the base.
package catalog

// File is the root structure for catalog.yaml
type File struct {
	Concepts []ConceptDef `yaml:"concepts"`
	Articles []ArticleDef `yaml:"articles"`
}

// ConceptDef defines a single concept in YAML
type ConceptDef struct {
	Code      int32                `yaml:"code"`                // e.g., 101
	Name      string               `yaml:"name"`                // e.g., "CONCEPT_INCOME_BASE"
	Since     string               `yaml:"since,omitempty"`     // first effective period "YYYY-MM", empty for always
	Path      []int32              `yaml:"path,flow"`           // article codes, in traversal order
	Evaluator string               `yaml:"evaluator,omitempty"` // named evaluator, see Evaluator
	Revisions []ConceptRevisionDef `yaml:"revisions,omitempty"` // later revisions
}

// ConceptRevisionDef overrides a concept from a period and version onwards
type ConceptRevisionDef struct {
	Since     string   `yaml:"since,omitempty"`
	Version   int32    `yaml:"version,omitempty"`   // 0 matches every version
	Path      *[]int32 `yaml:"path,omitempty,flow"` // nil inherits the base path
	Evaluator *string  `yaml:"evaluator,omitempty"` // nil inherits the base evaluator
}

// ArticleDef defines a single article in YAML
type ArticleDef struct {
	Code      int32                `yaml:"code"`
	Name      string               `yaml:"name"`
	Since     string               `yaml:"since,omitempty"`
	Seqs      int16                `yaml:"seqs"`
	Role      int32                `yaml:"role"`
	Sums      []int32              `yaml:"sums,flow"`
	Revisions []ArticleRevisionDef `yaml:"revisions,omitempty"`
}

// ArticleRevisionDef overrides an article from a period and version onwards
type ArticleRevisionDef struct {
	Since   string   `yaml:"since,omitempty"`
	Version int32    `yaml:"version,omitempty"`
	Seqs    *int16   `yaml:"seqs,omitempty"`
	Role    *int32   `yaml:"role,omitempty"`
	Sums    *[]int32 `yaml:"sums,omitempty,flow"` // nil inherits, [] clears
}

// ConceptRevision is a fully resolved concept revision: no inherited fields.
type ConceptRevision struct {
	Since     string
	Version   int32
	Path      []int32
	Evaluator string
}

// ArticleRevision is a fully resolved article revision.
type ArticleRevision struct {
	Since   string
	Version int32
	Seqs    int16
	Role    int32
	Sums    []int32
}

// Resolve returns the base revision followed by every later revision, with inherited
// fields filled in from the base. A revision without a since period starts with the base.
func (d ConceptDef) Resolve() []ConceptRevision {
	revs := make([]ConceptRevision, 0, len(d.Revisions)+1)
	revs = append(revs, ConceptRevision{
		Since:     d.Since,
		Path:      d.Path,
		Evaluator: d.Evaluator,
	})
	for _, r := range d.Revisions {
		rev := ConceptRevision{
			Since:     r.Since,
			Version:   r.Version,
			Path:      d.Path,
			Evaluator: d.Evaluator,
		}
		if rev.Since == "" {
			rev.Since = d.Since
		}
		if r.Path != nil {
			rev.Path = *r.Path
		}
		if r.Evaluator != nil {
			rev.Evaluator = *r.Evaluator
		}
		revs = append(revs, rev)
	}
	return revs
}

// Resolve returns the base revision followed by every later revision, with inherited
// fields filled in from the base.
func (d ArticleDef) Resolve() []ArticleRevision {
	revs := make([]ArticleRevision, 0, len(d.Revisions)+1)
	revs = append(revs, ArticleRevision{
		Since: d.Since,
		Seqs:  d.Seqs,
		Role:  d.Role,
		Sums:  d.Sums,
	})
	for _, r := range d.Revisions {
		rev := ArticleRevision{
			Since:   r.Since,
			Version: r.Version,
			Seqs:    d.Seqs,
			Role:    d.Role,
			Sums:    d.Sums,
		}
		if rev.Since == "" {
			rev.Since = d.Since
		}
		if r.Seqs != nil {
			rev.Seqs = *r.Seqs
		}
		if r.Role != nil {
			rev.Role = *r.Role
		}
		if r.Sums != nil {
			rev.Sums = *r.Sums
		}
		revs = append(revs, rev)
	}
	return revs
}
