package analytics

import (
	"fmt"

	"github.com/labwatch/labwatch/internal/analytics/api"
)

// BuildSlowReported projects the slow-reported-orders payload. Numeric item
// fields default to 0 when absent; the aggregate hour statistics keep their
// absence because 0 and "no data" are semantically distinct.
func BuildSlowReported(payload *api.SlowOrdersResponse) SlowReportedOrdersData {
	if payload == nil {
		return SlowReportedOrdersData{Orders: []SlowReportedOrder{}}
	}
	orders := make([]SlowReportedOrder, len(payload.Items))
	for i, item := range payload.Items {
		orders[i] = mapSlowOrder(item)
	}
	return SlowReportedOrdersData{
		Stats: SlowOrderStats{
			TotalOrders:        payload.Stats.TotalOrders,
			AverageOpenHours:   cloneFloat(payload.Stats.AverageOpenHours),
			P95OpenHours:       cloneFloat(payload.Stats.P95OpenHours),
			ThresholdOpenHours: cloneFloat(payload.Stats.ThresholdOpenHours),
		},
		Orders: orders,
	}
}

func mapSlowOrder(item api.SlowOrderRecord) SlowReportedOrder {
	reference := firstNonEmpty(fmt.Sprintf("Order %d", item.OrderID), item.OrderReference)
	return SlowReportedOrder{
		ID:            item.OrderID,
		Reference:     reference,
		Customer:      displayText(item.CustomerName),
		CreatedAt:     parseInstant(item.DateCreated),
		ReportedAt:    parseInstant(item.DateReported),
		SampleCount:   intOrZero(item.SampleCount),
		TestCount:     intOrZero(item.TestCount),
		OpenTimeHours: floatOrZero(item.OpenTimeHours),
		DisplayLabel:  firstNonEmpty(reference, item.DisplayLabel),
		Outlier:       bool(item.IsOutlier),
	}
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
