package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hibiken/asynq"

	"github.com/labwatch/labwatch/internal/analytics"
	"github.com/labwatch/labwatch/internal/analytics/api"
)

type warmupStubClient struct {
	mu        sync.Mutex
	intervals []string
	err       error
}

func (s *warmupStubClient) FetchOverdueOrders(ctx context.Context, query api.OverdueOrdersQuery) (*api.OverdueOrdersResponse, error) {
	s.mu.Lock()
	s.intervals = append(s.intervals, query.Interval)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &api.OverdueOrdersResponse{}, nil
}

func (s *warmupStubClient) FetchSlowOrders(ctx context.Context, query api.SlowOrdersQuery) (*api.SlowOrdersResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &api.SlowOrdersResponse{}, nil
}

func (s *warmupStubClient) seenIntervals() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.intervals...)
}

func TestDashboardWarmupHandlesEachInterval(t *testing.T) {
	client := &warmupStubClient{}
	svc := analytics.NewService(client, nil)
	job := NewDashboardWarmupJob(svc, nil, nil)

	task, err := NewDashboardWarmupTask("day", "week")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}

	intervals := client.seenIntervals()
	if len(intervals) != 2 || intervals[0] != "day" || intervals[1] != "week" {
		t.Fatalf("warmed intervals = %v", intervals)
	}
}

func TestDashboardWarmupDefaultsToDay(t *testing.T) {
	client := &warmupStubClient{}
	svc := analytics.NewService(client, nil)
	job := NewDashboardWarmupJob(svc, nil, nil)

	task, err := NewDashboardWarmupTask()
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if intervals := client.seenIntervals(); len(intervals) != 1 || intervals[0] != "day" {
		t.Fatalf("warmed intervals = %v", intervals)
	}
}

func TestDashboardWarmupPropagatesUpstreamFailure(t *testing.T) {
	client := &warmupStubClient{err: errors.New("upstream down")}
	svc := analytics.NewService(client, nil)
	job := NewDashboardWarmupJob(svc, nil, nil)

	task, err := NewDashboardWarmupTask("day")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err == nil {
		t.Fatalf("upstream failure must fail the job")
	}
}

func TestDashboardWarmupRejectsInvalidInterval(t *testing.T) {
	client := &warmupStubClient{}
	svc := analytics.NewService(client, nil)
	job := NewDashboardWarmupJob(svc, nil, nil)

	task, err := NewDashboardWarmupTask("month")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err == nil {
		t.Fatalf("invalid interval must fail validation")
	}
	if len(client.seenIntervals()) != 0 {
		t.Fatalf("invalid interval must not reach upstream")
	}
}

func TestDashboardWarmupSkipsMalformedPayload(t *testing.T) {
	job := NewDashboardWarmupJob(nil, nil, nil)
	task := asynq.NewTask(TaskDashboardWarmup, []byte("not json"))
	if err := job.Handle(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload must skip retry, got %v", err)
	}
}
