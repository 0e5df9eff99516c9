package analytics

import (
	"testing"

	"github.com/labwatch/labwatch/internal/analytics/api"
)

func TestBuildSlowReportedStatsAbsencePropagates(t *testing.T) {
	payload := &api.SlowOrdersResponse{
		Stats: api.SlowOrderStats{TotalOrders: 0},
	}

	data := BuildSlowReported(payload)
	if data.Stats.AverageOpenHours != nil || data.Stats.P95OpenHours != nil || data.Stats.ThresholdOpenHours != nil {
		t.Fatalf("absent hour statistics must stay nil, got %+v", data.Stats)
	}
	if data.Orders == nil || len(data.Orders) != 0 {
		t.Fatalf("no items must yield empty non-nil orders")
	}
}

func TestBuildSlowReportedNilPayload(t *testing.T) {
	data := BuildSlowReported(nil)
	if data.Orders == nil || len(data.Orders) != 0 {
		t.Fatalf("nil payload must yield empty non-nil orders")
	}
}

func TestMapSlowOrder(t *testing.T) {
	item := api.SlowOrderRecord{
		OrderID:       11,
		CustomerName:  strPtr("Acme Labs"),
		DateCreated:   strPtr("2024-02-01"),
		DateReported:  strPtr("2024-02-09T14:00:00"),
		SampleCount:   intPtr(3),
		OpenTimeHours: floatPtr(198.5),
		IsOutlier:     api.FlexBool(true),
	}

	order := mapSlowOrder(item)
	if order.Reference != "Order 11" {
		t.Fatalf("reference fallback = %q", order.Reference)
	}
	if order.DisplayLabel != "Order 11" {
		t.Fatalf("display label must fall back to the reference, got %q", order.DisplayLabel)
	}
	if order.OpenTimeHours != 198.5 {
		t.Fatalf("open hours = %v", order.OpenTimeHours)
	}
	if !order.Outlier {
		t.Fatalf("outlier flag lost")
	}
	if order.CreatedAt == nil || order.ReportedAt == nil {
		t.Fatalf("dates not parsed: %+v", order)
	}
}

func TestMapSlowOrderExplicitLabels(t *testing.T) {
	item := api.SlowOrderRecord{
		OrderID:        11,
		OrderReference: strPtr("LAB-11"),
		DisplayLabel:   strPtr("LAB-11 (retest)"),
	}

	order := mapSlowOrder(item)
	if order.Reference != "LAB-11" {
		t.Fatalf("reference = %q", order.Reference)
	}
	if order.DisplayLabel != "LAB-11 (retest)" {
		t.Fatalf("own display label must win, got %q", order.DisplayLabel)
	}
	if order.OpenTimeHours != 0 || order.Customer != MissingLabel {
		t.Fatalf("absent numerics default to zero, absent customer to %q: %+v", MissingLabel, order)
	}
}
