// Package export serialises dashboard sections into CSV for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/labwatch/labwatch/internal/analytics"
)

// WriteOverdueOrdersCSV emits an overdue order table as CSV.
func WriteOverdueOrdersCSV(w io.Writer, orders []analytics.OverdueOrder) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Order", "Customer", "State", "Created", "Open Hours", "Overdue", "Samples", "Incomplete"}); err != nil {
		return err
	}
	for _, order := range orders {
		if err := writer.Write([]string{
			order.Reference,
			order.Customer,
			order.State,
			analytics.FormatTimestamp(order.CreatedAt),
			formatFloat(order.OpenHours),
			strconv.FormatBool(order.SLABreached),
			strconv.Itoa(order.SampleCount),
			strconv.Itoa(order.IncompleteSampleCount),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSlowOrdersCSV emits the slow reported orders as CSV.
func WriteSlowOrdersCSV(w io.Writer, data analytics.SlowReportedOrdersData) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Order", "Customer", "Open Hours", "Reported", "Outlier"}); err != nil {
		return err
	}
	for _, order := range data.Orders {
		if err := writer.Write([]string{
			order.Reference,
			order.Customer,
			formatFloat(order.OpenTimeHours),
			analytics.FormatTimestamp(order.ReportedAt),
			strconv.FormatBool(order.Outlier),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTimelineCSV emits the overdue timeline as CSV.
func WriteTimelineCSV(w io.Writer, points []analytics.TimelinePoint) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Period", "Overdue"}); err != nil {
		return err
	}
	for _, point := range points {
		if err := writer.Write([]string{point.Label, strconv.Itoa(point.OverdueCount)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteHeatmapCSV emits the customer/period heatmap as a pivot table.
func WriteHeatmapCSV(w io.Writer, heatmap analytics.HeatmapData) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := append([]string{"Customer"}, heatmap.Periods...)
	header = append(header, "Total")
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, customer := range heatmap.Customers {
		row := make([]string, 0, len(heatmap.Periods)+2)
		row = append(row, customer.Name)
		for _, period := range heatmap.Periods {
			row = append(row, strconv.Itoa(customer.CountFor(period)))
		}
		row = append(row, strconv.Itoa(customer.Total))
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
