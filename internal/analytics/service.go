package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/labwatch/labwatch/internal/analytics/api"
)

// UpstreamClient is the analytics service boundary consumed by the
// orchestrator.
type UpstreamClient interface {
	FetchOverdueOrders(ctx context.Context, query api.OverdueOrdersQuery) (*api.OverdueOrdersResponse, error)
	FetchSlowOrders(ctx context.Context, query api.SlowOrdersQuery) (*api.SlowOrdersResponse, error)
}

// CycleRecorder receives the outcome of each orchestration cycle. Satisfied
// by *observability.Metrics.
type CycleRecorder interface {
	ObserveCycle(status string, elapsed time.Duration)
}

// Service orchestrates the two upstream fetches of one cycle and projects
// both payloads into the composite read model.
type Service struct {
	client  UpstreamClient
	cache   *Cache
	metrics CycleRecorder
	now     func() time.Time
}

// NewService wires an UpstreamClient with an optional Cache helper.
func NewService(client UpstreamClient, cache *Cache) *Service {
	return &Service{client: client, cache: cache, now: time.Now}
}

// WithMetrics attaches a cycle outcome recorder.
func (s *Service) WithMetrics(recorder CycleRecorder) {
	s.metrics = recorder
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// InvalidateCache bumps the response cache version so the next load fetches
// fresh upstream data. No-op when caching is disabled.
func (s *Service) InvalidateCache(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// LoadPriorityOrders issues the overdue-orders and slow-orders fetches
// concurrently and combines both into one PriorityOrdersData after both have
// settled. Either fetch failing fails the whole load; no partial composite
// is ever produced.
func (s *Service) LoadPriorityOrders(ctx context.Context, filters FilterSet) (data *PriorityOrdersData, err error) {
	var (
		overdue api.OverdueOrdersResponse
		slow    api.SlowOrdersResponse
	)

	start := time.Now()
	defer func() {
		if s.metrics == nil {
			return
		}
		status := "success"
		if err != nil {
			status = "failure"
		}
		s.metrics.ObserveCycle(status, time.Since(start))
	}()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.fetchJSON(ctx, keyOverdue(filters), &overdue, func(ctx context.Context) (any, error) {
			return s.client.FetchOverdueOrders(ctx, filters.OverdueQuery())
		})
	})

	g.Go(func() error {
		return s.fetchJSON(ctx, keySlow(filters), &slow, func(ctx context.Context) (any, error) {
			return s.client.FetchSlowOrders(ctx, filters.SlowQuery())
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s.buildComposite(filters, &overdue, &slow), nil
}

func (s *Service) fetchJSON(ctx context.Context, keyParts []string, dest any, loader func(context.Context) (any, error)) error {
	key, err := s.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}

func (s *Service) buildComposite(filters FilterSet, overdue *api.OverdueOrdersResponse, slow *api.SlowOrdersResponse) *PriorityOrdersData {
	return &PriorityOrdersData{
		KPIs:           MapKPIs(overdue.KPIs),
		TopOrders:      MapOverdueOrders(overdue.TopOrders, filters.SLAHours),
		WarningOrders:  MapOverdueOrders(overdue.WarningOrders, filters.SLAHours),
		ReadySamples:   MapReadySamples(overdue.ReadySamples),
		Timeline:       BuildTimeline(overdue.Timeline),
		Heatmap:        BuildHeatmap(overdue.Heatmap),
		StateBreakdown: BuildStateBreakdown(overdue.StateBreakdown),
		SlowReported:   BuildSlowReported(slow),
		GeneratedAt:    s.now().UTC(),
	}
}
