package api

import "encoding/json"

// OverdueOrdersResponse is the raw payload of the overdue-orders resource.
// Optional upstream fields are transmitted as null and modeled as pointers;
// resolution to display fallbacks happens in the mapper layer, never here.
type OverdueOrdersResponse struct {
	KPIs           KPIBlock               `json:"kpis"`
	TopOrders      []OrderRecord          `json:"top_orders"`
	WarningOrders  []OrderRecord          `json:"warning_orders"`
	ReadySamples   []ReadySampleRecord    `json:"ready_to_report_samples"`
	Timeline       []TimelinePointRecord  `json:"timeline"`
	Heatmap        []HeatmapCellRecord    `json:"heatmap"`
	StateBreakdown []StateBreakdownRecord `json:"state_breakdown"`
}

// KPIBlock carries upstream-computed headline counts for the overdue view.
type KPIBlock struct {
	TotalOverdueOrders     int      `json:"total_overdue_orders"`
	TotalWarningOrders     int      `json:"total_warning_orders"`
	TotalReadySamples      int      `json:"total_ready_samples"`
	TotalIncompleteSamples int      `json:"total_incomplete_samples"`
	AverageOpenHours       *float64 `json:"average_open_hours"`
	MaxOpenHours           *float64 `json:"max_open_hours"`
}

// OrderRecord is one raw overdue or warning order with nested detail.
type OrderRecord struct {
	OrderID               int64          `json:"order_id"`
	CustomFormattedID     *string        `json:"custom_formatted_id"`
	CustomerName          *string        `json:"customer_name"`
	State                 *string        `json:"state"`
	DateCreated           *string        `json:"date_created"`
	OpenHours             float64        `json:"open_hours"`
	SampleCount           *int           `json:"sample_count"`
	IncompleteSampleCount *int           `json:"incomplete_sample_count"`
	IncompleteSamples     []SampleRecord `json:"incomplete_samples"`
}

// SampleRecord is one raw incomplete sample nested under an order.
type SampleRecord struct {
	SampleID            int64        `json:"sample_id"`
	TestCount           *int         `json:"test_count"`
	IncompleteTestCount *int         `json:"incomplete_test_count"`
	Tests               []TestRecord `json:"tests"`
}

// TestRecord is one raw test entry nested under a sample. TestIDs is the
// explicit identifier list; TestID is the primary identifier used when the
// list is absent. A record carrying neither is an upstream contract violation.
type TestRecord struct {
	TestID  *int64   `json:"test_id"`
	TestIDs []int64  `json:"test_ids"`
	Label   *string  `json:"label"`
	States  []string `json:"states"`
}

// ReadySampleRecord is one raw sample awaiting report.
type ReadySampleRecord struct {
	SampleID       int64   `json:"sample_id"`
	CustomID       *string `json:"custom_id"`
	DisplayName    *string `json:"display_name"`
	OrderReference *string `json:"order_reference"`
	CustomerName   *string `json:"customer_name"`
	DateCompleted  *string `json:"date_completed"`
	TestsReady     *int    `json:"tests_ready"`
	TestsTotal     *int    `json:"tests_total"`
}

// TimelinePointRecord is one time-bucketed overdue count, already ordered
// chronologically by upstream.
type TimelinePointRecord struct {
	PeriodStart  string `json:"period_start"`
	OverdueCount int    `json:"overdue_count"`
}

// HeatmapCellRecord is one (customer, period, count) triple from the flat
// upstream heatmap list.
type HeatmapCellRecord struct {
	CustomerName *string `json:"customer_name"`
	PeriodStart  string  `json:"period_start"`
	OverdueCount int     `json:"overdue_count"`
}

// StateBreakdownRecord is one lifecycle-state bucket with its upstream ratio.
type StateBreakdownRecord struct {
	State *string `json:"state"`
	Count int     `json:"count"`
	Ratio float64 `json:"ratio"`
}

// SlowOrdersResponse is the raw payload of the slow-reported-orders resource.
type SlowOrdersResponse struct {
	Stats SlowOrderStats    `json:"stats"`
	Items []SlowOrderRecord `json:"items"`
}

// SlowOrderStats carries aggregate open-time statistics. The hour fields are
// null when the underlying sample was empty; null and 0 are distinct.
type SlowOrderStats struct {
	TotalOrders        int      `json:"total_orders"`
	AverageOpenHours   *float64 `json:"average_open_hours"`
	P95OpenHours       *float64 `json:"p95_open_hours"`
	ThresholdOpenHours *float64 `json:"threshold_open_hours"`
}

// SlowOrderRecord is one raw slow-reported order.
type SlowOrderRecord struct {
	OrderID        int64    `json:"order_id"`
	OrderReference *string  `json:"order_reference"`
	CustomerName   *string  `json:"customer_name"`
	DateCreated    *string  `json:"date_created"`
	DateReported   *string  `json:"date_reported"`
	SampleCount    *int     `json:"sample_count"`
	TestCount      *int     `json:"test_count"`
	OpenTimeHours  *float64 `json:"open_time_hours"`
	DisplayLabel   *string  `json:"display_label"`
	IsOutlier      FlexBool `json:"is_outlier"`
}

// FlexBool decodes flag fields that upstream does not guarantee to be JSON
// booleans. Numbers coerce to != 0, strings to non-empty, null to false.
type FlexBool bool

// UnmarshalJSON implements truthy coercion for non-boolean representations.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	switch v := value.(type) {
	case nil:
		*b = false
	case bool:
		*b = FlexBool(v)
	case float64:
		*b = FlexBool(v != 0)
	case string:
		*b = FlexBool(v != "")
	default:
		*b = true
	}
	return nil
}

// MarshalJSON keeps FlexBool symmetric with plain booleans on re-encode.
func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}
