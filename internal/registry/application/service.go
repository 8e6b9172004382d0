package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/lexreg/internal/cachemanager"
	"github.com/zjrosen/lexreg/internal/catalog"
	"github.com/zjrosen/lexreg/internal/domain/period"
	domainreg "github.com/zjrosen/lexreg/internal/domain/registry"
	"github.com/zjrosen/lexreg/internal/domain/types"
	"github.com/zjrosen/lexreg/internal/log"
	"github.com/zjrosen/lexreg/internal/pubsub"
	"github.com/zjrosen/lexreg/internal/tracing"
)

// Options configures a SpecService.
type Options struct {
	Sources Sources

	// CacheTTL is how long a resolved spec list stays cached. Zero disables the cache.
	CacheTTL      time.Duration
	CacheCleanup  time.Duration
	RefreshOnHit  bool
	WatchDebounce time.Duration
	Tracer        trace.Tracer
}

// ReloadEvent describes the outcome of a Reload.
type ReloadEvent struct {
	Generation uint64
	Concepts   int
	Articles   int
	Source     string
	Err        error
}

// snapshot is one immutable build of the registry.
type snapshot struct {
	generation uint64
	catalog    *catalog.Catalog
	concepts   *domainreg.ConceptSpecFactory
	articles   *domainreg.ArticleSpecFactory
}

// listKey identifies a cached spec list.
type listKey string

// listQuery is the input of a spec list cache miss. computed is set when the list
// was built rather than served from the cache.
type listQuery struct {
	snap     *snapshot
	period   period.Period
	version  types.VersionCode
	computed bool
}

// SpecService resolves concept and article specifications against the current
// registry snapshot. All methods are safe for concurrent use.
type SpecService struct {
	sources Sources
	opts    Options
	tracer  trace.Tracer

	current  atomic.Pointer[snapshot]
	reloadMu sync.Mutex

	conceptLists *cachemanager.ReadThroughCache[listKey, []domainreg.ConceptSpec, *listQuery]
	articleLists *cachemanager.ReadThroughCache[listKey, []domainreg.ArticleSpec, *listQuery]

	broker *pubsub.Broker[ReloadEvent]
}

// NewSpecService builds the first snapshot from opts.Sources. It fails when that
// snapshot cannot be built.
func NewSpecService(ctx context.Context, opts Options) (*SpecService, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracing.NewNoopProvider().Tracer()
	}
	cacheOpts := cachemanager.ReadThroughOptions{TTL: opts.CacheTTL, RefreshOnHit: opts.RefreshOnHit}

	s := &SpecService{
		sources: opts.Sources,
		opts:    opts,
		tracer:  tracer,
		broker:  pubsub.NewBroker[ReloadEvent](),
	}
	s.conceptLists = cachemanager.NewReadThroughCache[listKey, []domainreg.ConceptSpec, *listQuery](
		cachemanager.NewInMemoryCacheManager[listKey, []domainreg.ConceptSpec]("concept-lists", opts.CacheTTL, opts.CacheCleanup),
		func(_ context.Context, q *listQuery) ([]domainreg.ConceptSpec, error) {
			q.computed = true
			return q.snap.concepts.GetSpecList(q.period, q.version), nil
		},
		cacheOpts,
	)
	s.articleLists = cachemanager.NewReadThroughCache[listKey, []domainreg.ArticleSpec, *listQuery](
		cachemanager.NewInMemoryCacheManager[listKey, []domainreg.ArticleSpec]("article-lists", opts.CacheTTL, opts.CacheCleanup),
		func(_ context.Context, q *listQuery) ([]domainreg.ArticleSpec, error) {
			q.computed = true
			return q.snap.articles.GetSpecList(q.period, q.version), nil
		},
		cacheOpts,
	)

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the registry from the sources and swaps it in. On failure the
// previous snapshot stays live and the error is returned and published.
func (s *SpecService) Reload(ctx context.Context) (err error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanReload)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	next, err := s.build(ctx)
	if err != nil {
		log.ErrorErr(log.CatRegistry, "reload failed, keeping previous registry", err)
		s.broker.Publish(pubsub.ReloadFailedEvent, ReloadEvent{Generation: s.Generation(), Err: err})
		return err
	}

	if prev := s.current.Load(); prev != nil {
		next.generation = prev.generation + 1
	} else {
		next.generation = 1
	}
	s.current.Store(next)
	span.AddEvent(tracing.EventSnapshotSwapped, trace.WithAttributes(
		attribute.Int64(tracing.AttrGeneration, int64(next.generation)),
	))

	if err := s.conceptLists.Invalidate(ctx); err != nil {
		log.Warn(log.CatCache, "flush concept lists", "error", err.Error())
	}
	if err := s.articleLists.Invalidate(ctx); err != nil {
		log.Warn(log.CatCache, "flush article lists", "error", err.Error())
	}
	span.AddEvent(tracing.EventCacheFlushed)

	concepts, articles := next.catalog.Len()
	log.Info(log.CatRegistry, "registry loaded",
		"generation", next.generation, "concepts", concepts, "articles", articles, "source", next.catalog.Source())
	s.broker.Publish(pubsub.ReloadedEvent, ReloadEvent{
		Generation: next.generation,
		Concepts:   concepts,
		Articles:   articles,
		Source:     next.catalog.Source(),
	})
	return nil
}

func (s *SpecService) build(ctx context.Context) (*snapshot, error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanLoadCatalog)
	defer span.End()

	c, err := s.sources.Load(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	concepts, articles, err := c.Factories()
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("build factories: %w", err)
	}
	return &snapshot{catalog: c, concepts: concepts, articles: articles}, nil
}

// Generation returns the number of successful loads, starting at 1.
func (s *SpecService) Generation() uint64 {
	if snap := s.current.Load(); snap != nil {
		return snap.generation
	}
	return 0
}

// Catalog returns the catalog behind the current snapshot. It resolves code names.
func (s *SpecService) Catalog() *catalog.Catalog {
	return s.current.Load().catalog
}

// ConceptFactory returns the current concept factory.
func (s *SpecService) ConceptFactory() *domainreg.ConceptSpecFactory {
	return s.current.Load().concepts
}

// ArticleFactory returns the current article factory.
func (s *SpecService) ArticleFactory() *domainreg.ArticleSpecFactory {
	return s.current.Load().articles
}

// ConceptSpec resolves a concept. Unknown codes yield the NotFound sentinel.
func (s *SpecService) ConceptSpec(ctx context.Context, code types.ConceptCode, p period.Period, v types.VersionCode) domainreg.ConceptSpec {
	spec, _ := s.LookupConcept(ctx, code, p, v)
	return spec
}

// LookupConcept resolves a concept and reports whether the code is registered.
func (s *SpecService) LookupConcept(ctx context.Context, code types.ConceptCode, p period.Period, v types.VersionCode) (domainreg.ConceptSpec, bool) {
	snap := s.current.Load()
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanGetSpec,
		s.queryAttrs(snap, "concept", p, v, attribute.Int(tracing.AttrCode, int(code.Value())))...)
	defer span.End()

	spec, ok := snap.concepts.Lookup(code, p, v)
	span.SetAttributes(attribute.Bool(tracing.AttrFound, ok))
	return spec, ok
}

// ArticleSpec resolves an article. Unknown codes yield the NotFound sentinel.
func (s *SpecService) ArticleSpec(ctx context.Context, code types.ArticleCode, p period.Period, v types.VersionCode) domainreg.ArticleSpec {
	spec, _ := s.LookupArticle(ctx, code, p, v)
	return spec
}

// LookupArticle resolves an article and reports whether the code is registered.
func (s *SpecService) LookupArticle(ctx context.Context, code types.ArticleCode, p period.Period, v types.VersionCode) (domainreg.ArticleSpec, bool) {
	snap := s.current.Load()
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanGetSpec,
		s.queryAttrs(snap, "article", p, v, attribute.Int(tracing.AttrCode, int(code.Value())))...)
	defer span.End()

	spec, ok := snap.articles.Lookup(code, p, v)
	span.SetAttributes(attribute.Bool(tracing.AttrFound, ok))
	return spec, ok
}

// ConceptSpecs returns one spec per registered concept, sorted by code.
func (s *SpecService) ConceptSpecs(ctx context.Context, p period.Period, v types.VersionCode) []domainreg.ConceptSpec {
	snap := s.current.Load()
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanGetSpecList, s.queryAttrs(snap, "concept", p, v)...)
	defer span.End()

	q := &listQuery{snap: snap, period: p, version: v}
	key := cacheKey(snap, "concept", p, v)
	// The loader never fails.
	specs, _ := s.conceptLists.Get(ctx, key, q)
	span.SetAttributes(
		attribute.Int(tracing.AttrResultCount, len(specs)),
		attribute.Bool(tracing.AttrCacheHit, !q.computed),
	)
	// Cached slices are shared.
	return slices.Clone(specs)
}

// ArticleSpecs returns one spec per registered article, sorted by code.
func (s *SpecService) ArticleSpecs(ctx context.Context, p period.Period, v types.VersionCode) []domainreg.ArticleSpec {
	snap := s.current.Load()
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanGetSpecList, s.queryAttrs(snap, "article", p, v)...)
	defer span.End()

	q := &listQuery{snap: snap, period: p, version: v}
	key := cacheKey(snap, "article", p, v)
	// The loader never fails.
	specs, _ := s.articleLists.Get(ctx, key, q)
	span.SetAttributes(
		attribute.Int(tracing.AttrResultCount, len(specs)),
		attribute.Bool(tracing.AttrCacheHit, !q.computed),
	)
	// Cached slices are shared.
	return slices.Clone(specs)
}

// Subscribe returns reload events until ctx is done or the service is closed.
func (s *SpecService) Subscribe(ctx context.Context) <-chan pubsub.Event[ReloadEvent] {
	return s.broker.Subscribe(ctx)
}

// Close releases subscribers.
func (s *SpecService) Close() {
	s.broker.Close()
}

func (s *SpecService) queryAttrs(snap *snapshot, space string, p period.Period, v types.VersionCode, extra ...attribute.KeyValue) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(tracing.AttrCodeSpace, space),
		attribute.String(tracing.AttrPeriod, periodLabel(p)),
		attribute.Int(tracing.AttrVersion, int(v.Value())),
		attribute.Int64(tracing.AttrGeneration, int64(snap.generation)),
	}
	return append(attrs, extra...)
}

// cacheKey includes the generation so a list from an older snapshot is never served.
func cacheKey(snap *snapshot, space string, p period.Period, v types.VersionCode) listKey {
	return listKey(fmt.Sprintf("g%d:%s:%s:v%d", snap.generation, space, periodLabel(p), v.Value()))
}

func periodLabel(p period.Period) string {
	if p == nil {
		return "any"
	}
	return fmt.Sprintf("%04d-%02d", p.Year(), p.Month())
}
