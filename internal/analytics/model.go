// Package analytics projects raw lab-operations payloads from the remote
// analytics service into normalized, UI-ready view models.
package analytics

import "time"

// OverdueTest is one normalized test entry under an incomplete sample.
type OverdueTest struct {
	TestIDs []int64  `json:"test_ids"`
	Label   string   `json:"label"`
	States  []string `json:"states"`
}

// OverdueSample is one normalized incomplete sample under an order.
type OverdueSample struct {
	ID                  int64         `json:"id"`
	TestCount           int           `json:"test_count"`
	IncompleteTestCount int           `json:"incomplete_test_count"`
	Tests               []OverdueTest `json:"tests"`
}

// OverdueOrder is the normalized projection of one overdue or warning order.
// Warning orders share this shape; only the upstream selection criteria
// differ.
type OverdueOrder struct {
	ID                    int64           `json:"id"`
	Reference             string          `json:"reference"`
	Customer              string          `json:"customer"`
	State                 string          `json:"state"`
	CreatedAt             *time.Time      `json:"created_at"`
	OpenHours             float64         `json:"open_hours"`
	SLABreached           bool            `json:"sla_breached"`
	SampleCount           int             `json:"sample_count"`
	IncompleteSampleCount int             `json:"incomplete_sample_count"`
	Samples               []OverdueSample `json:"samples"`
}

// ReadySample is one sample whose tests are ready to report.
type ReadySample struct {
	ID             int64      `json:"id"`
	CustomID       string     `json:"custom_id"`
	DisplayName    string     `json:"display_name"`
	OrderReference string     `json:"order_reference"`
	Customer       string     `json:"customer"`
	CompletedAt    *time.Time `json:"completed_at"`
	TestsReady     int        `json:"tests_ready"`
	TestsTotal     int        `json:"tests_total"`
}

// TimelinePoint is one time-bucketed overdue count in upstream emission
// order.
type TimelinePoint struct {
	PeriodStart  time.Time `json:"period_start"`
	Label        string    `json:"label"`
	OverdueCount int       `json:"overdue_count"`
}

// HeatmapCustomer is one customer row of the sparse customer × period pivot.
// Counts holds only observed periods; CountFor densifies at read time.
type HeatmapCustomer struct {
	Name   string         `json:"name"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// CountFor returns the overdue count for the period, implicit 0 when the
// period was never observed for this customer.
func (c HeatmapCustomer) CountFor(period string) int {
	return c.Counts[period]
}

// HeatmapData is the pivoted customer × period matrix. Periods are sorted
// ascending and deduplicated; customers are ordered by descending total with
// first-seen order preserved on ties.
type HeatmapData struct {
	Periods   []string          `json:"periods"`
	Customers []HeatmapCustomer `json:"customers"`
}

// StateBreakdownItem is one lifecycle-state bucket with its upstream ratio
// passed through unmodified.
type StateBreakdownItem struct {
	State string  `json:"state"`
	Count int     `json:"count"`
	Ratio float64 `json:"ratio"`
}

// SlowOrderStats carries aggregate slow-order statistics. The optional hour
// fields stay nil when the upstream sample was empty; nil and 0 are distinct.
type SlowOrderStats struct {
	TotalOrders        int      `json:"total_orders"`
	AverageOpenHours   *float64 `json:"average_open_hours"`
	P95OpenHours       *float64 `json:"p95_open_hours"`
	ThresholdOpenHours *float64 `json:"threshold_open_hours"`
}

// SlowReportedOrder is one normalized slow-reported order.
type SlowReportedOrder struct {
	ID            int64      `json:"id"`
	Reference     string     `json:"reference"`
	Customer      string     `json:"customer"`
	CreatedAt     *time.Time `json:"created_at"`
	ReportedAt    *time.Time `json:"reported_at"`
	SampleCount   int        `json:"sample_count"`
	TestCount     int        `json:"test_count"`
	OpenTimeHours float64    `json:"open_time_hours"`
	DisplayLabel  string     `json:"display_label"`
	Outlier       bool       `json:"outlier"`
}

// SlowReportedOrdersData aggregates slow-order stats with the ranked list.
type SlowReportedOrdersData struct {
	Stats  SlowOrderStats      `json:"stats"`
	Orders []SlowReportedOrder `json:"orders"`
}

// OverdueKPIs carries the upstream headline counters for the dashboard cards.
type OverdueKPIs struct {
	TotalOverdueOrders     int      `json:"total_overdue_orders"`
	TotalWarningOrders     int      `json:"total_warning_orders"`
	TotalReadySamples      int      `json:"total_ready_samples"`
	TotalIncompleteSamples int      `json:"total_incomplete_samples"`
	AverageOpenHours       *float64 `json:"average_open_hours"`
	MaxOpenHours           *float64 `json:"max_open_hours"`
}

// PriorityOrdersData is the composite dashboard read model. It is created
// fresh on every successful orchestration cycle, never mutated afterwards,
// and superseded wholesale by the next cycle.
type PriorityOrdersData struct {
	KPIs           OverdueKPIs            `json:"kpis"`
	TopOrders      []OverdueOrder         `json:"top_orders"`
	WarningOrders  []OverdueOrder         `json:"warning_orders"`
	ReadySamples   []ReadySample          `json:"ready_samples"`
	Timeline       []TimelinePoint        `json:"timeline"`
	Heatmap        HeatmapData            `json:"heatmap"`
	StateBreakdown []StateBreakdownItem   `json:"state_breakdown"`
	SlowReported   SlowReportedOrdersData `json:"slow_reported"`
	GeneratedAt    time.Time              `json:"generated_at"`
}
