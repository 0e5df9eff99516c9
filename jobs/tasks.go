package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup pre-populates the dashboard response cache.
	TaskDashboardWarmup = "dashboard:warmup"
)

// DashboardWarmupPayload selects which timeline intervals get warmed.
type DashboardWarmupPayload struct {
	Intervals []string `json:"intervals"`
}

// NewDashboardWarmupTask constructs an Asynq task for cache warmup.
func NewDashboardWarmupTask(intervals ...string) (*asynq.Task, error) {
	data, err := json.Marshal(DashboardWarmupPayload{Intervals: intervals})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}
