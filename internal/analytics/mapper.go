package analytics

import (
	"fmt"
	"math"

	"github.com/labwatch/labwatch/internal/analytics/api"
)

// resolveSLAThreshold returns the breach threshold for the configured SLA
// hours. A non-finite configuration means the SLA is unset, so the threshold
// becomes unreachable and no order can breach.
func resolveSLAThreshold(slaHours float64) float64 {
	if math.IsNaN(slaHours) || math.IsInf(slaHours, 0) {
		return math.Inf(1)
	}
	return slaHours
}

// MapOverdueOrders projects raw order records into OverdueOrder entities,
// preserving the upstream rank order. The same mapping serves warning
// orders, which share the shape and differ only in selection criteria.
func MapOverdueOrders(records []api.OrderRecord, slaHours float64) []OverdueOrder {
	threshold := resolveSLAThreshold(slaHours)
	orders := make([]OverdueOrder, len(records))
	for i, record := range records {
		orders[i] = mapOverdueOrder(record, threshold)
	}
	return orders
}

func mapOverdueOrder(record api.OrderRecord, threshold float64) OverdueOrder {
	samples := make([]OverdueSample, len(record.IncompleteSamples))
	for i, raw := range record.IncompleteSamples {
		samples[i] = mapOverdueSample(raw)
	}
	return OverdueOrder{
		ID:                    record.OrderID,
		Reference:             orderReference(record.CustomFormattedID, record.OrderID),
		Customer:              displayText(record.CustomerName),
		State:                 TitleLabel(record.State),
		CreatedAt:             parseInstant(record.DateCreated),
		OpenHours:             record.OpenHours,
		SLABreached:           record.OpenHours > threshold,
		SampleCount:           intOrZero(record.SampleCount),
		IncompleteSampleCount: intOrLen(record.IncompleteSampleCount, len(record.IncompleteSamples)),
		Samples:               samples,
	}
}

func mapOverdueSample(record api.SampleRecord) OverdueSample {
	tests := make([]OverdueTest, len(record.Tests))
	for i, raw := range record.Tests {
		tests[i] = mapOverdueTest(raw)
	}
	return OverdueSample{
		ID:                  record.SampleID,
		TestCount:           intOrZero(record.TestCount),
		IncompleteTestCount: intOrLen(record.IncompleteTestCount, len(record.Tests)),
		Tests:               tests,
	}
}

// mapOverdueTest normalizes the identifier set: an explicit non-empty list
// wins verbatim (order and duplicates preserved), otherwise the primary id
// forms a single-element sequence. A record with neither violates the
// upstream contract and maps to an empty set rather than crashing the cycle.
func mapOverdueTest(record api.TestRecord) OverdueTest {
	ids := record.TestIDs
	if len(ids) == 0 && record.TestID != nil {
		ids = []int64{*record.TestID}
	}
	if ids == nil {
		ids = []int64{}
	}
	return OverdueTest{
		TestIDs: ids,
		Label:   displayText(record.Label),
		States:  TitleLabels(record.States),
	}
}

// MapReadySamples projects raw ready-to-report sample records.
func MapReadySamples(records []api.ReadySampleRecord) []ReadySample {
	samples := make([]ReadySample, len(records))
	for i, record := range records {
		samples[i] = mapReadySample(record)
	}
	return samples
}

func mapReadySample(record api.ReadySampleRecord) ReadySample {
	fallback := fmt.Sprintf("Sample %d", record.SampleID)
	return ReadySample{
		ID:             record.SampleID,
		CustomID:       firstNonEmpty(fallback, record.CustomID, record.DisplayName),
		DisplayName:    firstNonEmpty(fallback, record.DisplayName, record.CustomID),
		OrderReference: displayText(record.OrderReference),
		Customer:       displayText(record.CustomerName),
		CompletedAt:    parseInstant(record.DateCompleted),
		TestsReady:     intOrZero(record.TestsReady),
		TestsTotal:     intOrZero(record.TestsTotal),
	}
}

// MapKPIs passes the upstream headline counters through, keeping the
// optional hour statistics nullable.
func MapKPIs(block api.KPIBlock) OverdueKPIs {
	return OverdueKPIs{
		TotalOverdueOrders:     block.TotalOverdueOrders,
		TotalWarningOrders:     block.TotalWarningOrders,
		TotalReadySamples:      block.TotalReadySamples,
		TotalIncompleteSamples: block.TotalIncompleteSamples,
		AverageOpenHours:       cloneFloat(block.AverageOpenHours),
		MaxOpenHours:           cloneFloat(block.MaxOpenHours),
	}
}

func orderReference(custom *string, id int64) string {
	if custom != nil && *custom != "" {
		return *custom
	}
	return fmt.Sprintf("Order %d", id)
}

// displayText resolves an optional display string to MissingLabel.
func displayText(raw *string) string {
	if raw == nil || *raw == "" {
		return MissingLabel
	}
	return *raw
}

func firstNonEmpty(fallback string, candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return fallback
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func intOrLen(v *int, length int) int {
	if v == nil {
		return length
	}
	return *v
}

// cloneFloat copies an optional float so the view model never aliases the
// raw payload.
func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}
