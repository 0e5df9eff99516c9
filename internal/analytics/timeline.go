package analytics

import "github.com/labwatch/labwatch/internal/analytics/api"

// BuildTimeline projects the time-bucketed overdue counts one-to-one,
// preserving the upstream emission order. No re-sorting and no gap-filling:
// upstream is authoritative for which periods exist.
func BuildTimeline(records []api.TimelinePointRecord) []TimelinePoint {
	points := make([]TimelinePoint, len(records))
	for i, record := range records {
		point := TimelinePoint{OverdueCount: record.OverdueCount, Label: record.PeriodStart}
		if start, ok := parsePeriod(record.PeriodStart); ok {
			point.PeriodStart = start
			point.Label = FormatPeriodLabel(start)
		}
		points[i] = point
	}
	return points
}
