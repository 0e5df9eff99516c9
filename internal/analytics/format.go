package analytics

import (
	"fmt"
	"time"
)

// FormatHoursToDays renders decimal hours as a compact "2 d 5 h" string.
// Nil or non-positive input renders as MissingLabel.
func FormatHoursToDays(hours *float64) string {
	if hours == nil || *hours <= 0 {
		return MissingLabel
	}
	total := int(*hours)
	days, rem := total/24, total%24
	if days > 0 {
		return fmt.Sprintf("%d d %d h", days, rem)
	}
	return fmt.Sprintf("%d h", rem)
}

// FormatTimestamp renders an instant as "2006-01-02 15:04"; absence renders
// as an empty string so tables can leave the cell blank.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// FormatPeriodLabel renders a period start with the abbreviated month+day
// format used on timeline axes.
func FormatPeriodLabel(t time.Time) string {
	return t.Format("Jan 02")
}

// FormatRatio renders a 0–1 ratio as a percentage with one decimal.
func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// parseInstant parses an ISO-8601 timestamp. Absent, empty, or unparseable
// input yields nil; absence is a data-quality condition, never an error.
func parseInstant(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t
		}
	}
	return nil
}

// parsePeriod parses an ISO date period key (e.g. "2024-01-08").
func parsePeriod(raw string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
