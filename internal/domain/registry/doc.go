// Package registry implements the domain layer of the versioned specification registry.
//
// This package follows the same layering as the rest of the domain:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines the specification value objects (ConceptSpec, ArticleSpec)
//   - Defines the provider contract and its default and NotFound implementations
//   - Implements the factories that map a code to its provider
//   - Has no knowledge of where providers come from (YAML, SQLite, static code)
//
// # Resolution
//
// A factory resolves (code, period, version) to a specification. Resolution is total:
// a code with no registered provider resolves to the NotFound sentinel specification,
// whose code is the reserved sentinel constant rather than the requested code.
// Callers detect a miss with IsNotFoundConcept / IsNotFoundArticle, or use Lookup
// when they need to tell "unregistered" apart from "registered".
//
// # Forwarding
//
// Concrete providers embed DefaultConceptProvider or DefaultArticleProvider and
// override Spec. Method promotion forwards Code to the embedded default, so no
// per-provider boilerplate is needed. Specifications can wrap another specification
// by embedding the ConceptSpec or ArticleSpec interface.
//
// # Concurrency
//
// Factories are immutable once their constructor returns and may be shared by any
// number of goroutines without locking.
package registry
