package analytics

import (
	"sort"

	"github.com/labwatch/labwatch/internal/analytics/api"
)

// BuildHeatmap pivots the flat (customer, period, count) triples into the
// sparse customer × period matrix.
//
// Period keys are ISO dates, so lexicographic order equals chronological
// order. Customers with an absent name coalesce into the UnknownCustomer
// bucket. Duplicate (customer, period) cells must not crash: the mapping
// keeps the last write, while the running total sums every observed count.
// Customer rows sort by descending total; ties keep first-seen order.
func BuildHeatmap(cells []api.HeatmapCellRecord) HeatmapData {
	periods := make([]string, 0, len(cells))
	seenPeriod := make(map[string]struct{}, len(cells))

	rowIndex := make(map[string]int)
	rows := make([]HeatmapCustomer, 0)

	for _, cell := range cells {
		if _, ok := seenPeriod[cell.PeriodStart]; !ok {
			seenPeriod[cell.PeriodStart] = struct{}{}
			periods = append(periods, cell.PeriodStart)
		}

		name := UnknownCustomer
		if cell.CustomerName != nil && *cell.CustomerName != "" {
			name = *cell.CustomerName
		}

		idx, ok := rowIndex[name]
		if !ok {
			idx = len(rows)
			rowIndex[name] = idx
			rows = append(rows, HeatmapCustomer{Name: name, Counts: make(map[string]int)})
		}
		rows[idx].Counts[cell.PeriodStart] = cell.OverdueCount
		rows[idx].Total += cell.OverdueCount
	}

	sort.Strings(periods)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})

	return HeatmapData{Periods: periods, Customers: rows}
}
