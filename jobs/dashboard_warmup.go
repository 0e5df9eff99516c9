package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/labwatch/labwatch/internal/analytics"
	jobmetrics "github.com/labwatch/labwatch/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// DashboardWarmupJob pre-populates the dashboard response cache so the first
// snapshot after a quiet period does not pay the upstream round trips.
type DashboardWarmupJob struct {
	Analytics *analytics.Service
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(analyticsSvc *analytics.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *DashboardWarmupJob {
	return &DashboardWarmupJob{
		Analytics: analyticsSvc,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes dashboard warmup tasks. Each interval runs the full
// orchestration with default filters, which leaves both upstream payloads in
// the response cache.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if len(payload.Intervals) == 0 {
		payload.Intervals = []string{"day"}
	}

	tracker := j.metrics().Track(TaskDashboardWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting dashboard warmup", slog.Int("intervals", len(payload.Intervals)))

	now := j.now()
	warmed := 0
	for _, interval := range payload.Intervals {
		if err := j.warmInterval(ctx, interval, now); err != nil {
			resultErr = err
			logger.Error("warm interval", slog.String("interval", interval), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}

	logger.Info("completed dashboard warmup", slog.Int("intervals", warmed), slog.Duration("duration", time.Since(now)))
	return resultErr
}

func (j *DashboardWarmupJob) warmInterval(ctx context.Context, interval string, now time.Time) error {
	if j.Analytics == nil {
		return nil
	}
	// Bound each interval so a slow upstream cannot wedge the worker.
	intervalCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	filters := analytics.DefaultFilters(now)
	filters.Interval = interval
	if err := filters.Validate(); err != nil {
		return err
	}
	_, err := j.Analytics.LoadPriorityOrders(intervalCtx, filters)
	return err
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardWarmup))
}

func (j *DashboardWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *DashboardWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
