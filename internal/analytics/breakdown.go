package analytics

import "github.com/labwatch/labwatch/internal/analytics/api"

// BuildStateBreakdown normalizes the lifecycle-state ratio buckets. Counts
// and ratios are upstream-computed and pass through unmodified.
func BuildStateBreakdown(records []api.StateBreakdownRecord) []StateBreakdownItem {
	items := make([]StateBreakdownItem, len(records))
	for i, record := range records {
		items[i] = StateBreakdownItem{
			State: TitleLabel(record.State),
			Count: record.Count,
			Ratio: record.Ratio,
		}
	}
	return items
}
