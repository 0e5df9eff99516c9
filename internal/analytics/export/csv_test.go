package export

import (
	"strings"
	"testing"
	"time"

	"github.com/labwatch/labwatch/internal/analytics"
)

func TestWriteOverdueOrdersCSV(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	orders := []analytics.OverdueOrder{
		{
			ID:                    7,
			Reference:             "LAB-0007",
			Customer:              "Acme Labs",
			State:                 "In Progress",
			CreatedAt:             &created,
			OpenHours:             130,
			SLABreached:           true,
			SampleCount:           4,
			IncompleteSampleCount: 2,
		},
		{ID: 8, Reference: "Order 8", Customer: "--", State: "--"},
	}

	var sb strings.Builder
	if err := WriteOverdueOrdersCSV(&sb, orders); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Order,Customer,State") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "LAB-0007,Acme Labs,In Progress,2024-03-01 09:30,130.00,true,4,2") {
		t.Fatalf("row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Order 8,--,--,,") {
		t.Fatalf("fallback row = %q", lines[2])
	}
}

func TestWriteHeatmapCSV(t *testing.T) {
	heatmap := analytics.HeatmapData{
		Periods: []string{"2024-01-01", "2024-01-08"},
		Customers: []analytics.HeatmapCustomer{
			{Name: "Acme", Counts: map[string]int{"2024-01-01": 3}, Total: 3},
		},
	}

	var sb strings.Builder
	if err := WriteHeatmapCSV(&sb, heatmap); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[0] != "Customer,2024-01-01,2024-01-08,Total" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "Acme,3,0,3" {
		t.Fatalf("row must densify missing periods to 0, got %q", lines[1])
	}
}

func TestWriteTimelineCSV(t *testing.T) {
	points := []analytics.TimelinePoint{
		{Label: "Jan 01", OverdueCount: 7},
		{Label: "Jan 08", OverdueCount: 3},
	}

	var sb strings.Builder
	if err := WriteTimelineCSV(&sb, points); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := strings.TrimSpace(sb.String())
	want := "Period,Overdue\nJan 01,7\nJan 08,3"
	if got != want {
		t.Fatalf("csv = %q, want %q", got, want)
	}
}

func TestWriteSlowOrdersCSV(t *testing.T) {
	data := analytics.SlowReportedOrdersData{
		Orders: []analytics.SlowReportedOrder{
			{Reference: "LAB-11", Customer: "Acme", OpenTimeHours: 198.5, Outlier: true},
		},
	}

	var sb strings.Builder
	if err := WriteSlowOrdersCSV(&sb, data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(sb.String(), "LAB-11,Acme,198.50,,true") {
		t.Fatalf("csv = %q", sb.String())
	}
}
