package registry

import (
	"github.com/zjrosen/lexreg/internal/domain/period"
	"github.com/zjrosen/lexreg/internal/domain/types"
)

// ConceptSpecResolver defines read-only access to concept specifications.
// This interface enables dependency injection and lets tests substitute a fake
// for the concrete ConceptSpecFactory.
type ConceptSpecResolver interface {
	// GetSpec resolves code, falling back to the NotFound sentinel.
	GetSpec(code types.ConceptCode, p period.Period, v types.VersionCode) ConceptSpec

	// Lookup resolves code and reports whether it is registered.
	Lookup(code types.ConceptCode, p period.Period, v types.VersionCode) (ConceptSpec, bool)

	// GetSpecList resolves every registered code, ordered by code.
	GetSpecList(p period.Period, v types.VersionCode) []ConceptSpec

	// Codes returns the registered codes in ascending order.
	Codes() []types.ConceptCode
}

// ArticleSpecResolver defines read-only access to article specifications.
type ArticleSpecResolver interface {
	GetSpec(code types.ArticleCode, p period.Period, v types.VersionCode) ArticleSpec
	Lookup(code types.ArticleCode, p period.Period, v types.VersionCode) (ArticleSpec, bool)
	GetSpecList(p period.Period, v types.VersionCode) []ArticleSpec
	Codes() []types.ArticleCode
}

// Compile-time checks that the factories implement the resolver interfaces.
var (
	_ ConceptSpecResolver = (*ConceptSpecFactory)(nil)
	_ ArticleSpecResolver = (*ArticleSpecFactory)(nil)
)
