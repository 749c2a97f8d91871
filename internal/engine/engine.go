package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/supportlens/ticketlens/internal/dataset"
	"github.com/supportlens/ticketlens/internal/service"
	"github.com/supportlens/ticketlens/internal/store"
	"github.com/supportlens/ticketlens/internal/ticket"
)

const defaultCacheTTL = 10 * time.Minute

// Cacher is the result-cache interface the engine needs. A nil Cacher
// disables caching; every query is then computed directly.
type Cacher interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Engine is the in-process query surface over the registered datasets. All
// queries are pure functions of the cached source snapshots and their
// arguments; the only error a caller can see is an unknown dataset id.
type Engine struct {
	registry *dataset.Registry
	store    *store.Store
	cache    Cacher
	logger   *zap.Logger
	cacheTTL time.Duration
	sfGroup  singleflight.Group
}

// New creates an Engine. cache may be nil.
func New(registry *dataset.Registry, st *store.Store, cache Cacher, logger *zap.Logger, ttl time.Duration) *Engine {
	if registry == nil {
		panic("nil registry provided to engine.New")
	}
	if st == nil {
		panic("nil store provided to engine.New")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Engine{
		registry: registry,
		store:    st,
		cache:    cache,
		logger:   logger.Named("engine"),
		cacheTTL: ttl,
	}
}

// ListTickets returns a filtered, sorted, paginated ticket page.
func (e *Engine) ListTickets(ctx context.Context, datasetID string, f service.Filter, sortKey service.SortKey, offset, limit int) (service.ListResult, error) {
	ds, err := e.loadDataset(ctx, datasetID)
	if err != nil {
		return service.ListResult{}, err
	}
	return service.QueryTickets(ds.Records(), f, sortKey, offset, limit), nil
}

// GetAnalytics returns the analytics report for a dataset and filter,
// read-through cached when a Cacher is configured.
func (e *Engine) GetAnalytics(ctx context.Context, datasetID string, f service.Filter) (*service.AnalyticsReport, error) {
	if _, err := e.registry.Resolve(datasetID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("ticketlens:analytics:%s:%s", datasetID, f.Key())
	return fetchCached(ctx, e.cache, &e.sfGroup, key, e.cacheTTL, e.logger,
		func(ctx context.Context) (*service.AnalyticsReport, error) {
			ds, err := e.loadDataset(ctx, datasetID)
			if err != nil {
				return nil, err
			}
			return service.ComputeAnalytics(ds, f), nil
		})
}

// GetDerivedFlags returns the alert flags for one ticket. A ticket with no
// metric rows gets all-false flags, the same absence semantics every other
// consumer sees.
func (e *Engine) GetDerivedFlags(ctx context.Context, datasetID string, ticketID int) (ticket.Flags, error) {
	ds, err := e.loadDataset(ctx, datasetID)
	if err != nil {
		return ticket.Flags{}, err
	}
	return ticket.DeriveFlags(ds.Hard[ticketID], ds.Interactions[ticketID]), nil
}

// InvalidateDataset drops the cached source snapshots behind a dataset,
// forcing the next query to re-read them.
func (e *Engine) InvalidateDataset(datasetID string) error {
	src, err := e.registry.Resolve(datasetID)
	if err != nil {
		return err
	}
	e.store.Invalidate(src.Summary)
	e.store.Invalidate(src.HardMetrics)
	e.store.Invalidate(src.Interactions)
	return nil
}

func (e *Engine) loadDataset(ctx context.Context, datasetID string) (*store.Dataset, error) {
	src, err := e.registry.Resolve(datasetID)
	if err != nil {
		return nil, err
	}
	return e.store.LoadDataset(ctx, src.Summary, src.HardMetrics, src.Interactions), nil
}
