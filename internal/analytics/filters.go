package analytics

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/labwatch/labwatch/internal/analytics/api"
)

var validate = validator.New()

// SlowOrderFilters scopes the slow-reported-orders fetch.
type SlowOrderFilters struct {
	CustomerQuery         string  `json:"customer_query"`
	MinOpenHours          float64 `json:"min_open_hours" validate:"gte=0"`
	OutlierThresholdHours float64 `json:"outlier_threshold_hours" validate:"gte=0"`
	Limit                 int     `json:"limit" validate:"gte=1,lte=200"`
}

// FilterSet is the complete input of one orchestration cycle.
type FilterSet struct {
	DateFrom          time.Time        `json:"date_from"`
	DateTo            time.Time        `json:"date_to"`
	Interval          string           `json:"interval" validate:"oneof=day week"`
	MinDaysOverdue    int              `json:"min_days_overdue" validate:"gte=0"`
	WarningWindowDays int              `json:"warning_window_days" validate:"gte=0"`
	SLAHours          float64          `json:"sla_hours"`
	TopLimit          int              `json:"top_limit" validate:"gte=1,lte=200"`
	ClientLimit       int              `json:"client_limit" validate:"gte=1,lte=200"`
	WarningLimit      int              `json:"warning_limit" validate:"gte=1,lte=200"`
	Slow              SlowOrderFilters `json:"slow_orders"`
}

// DefaultFilters returns the filter set the dashboard starts with: the last
// thirty days, daily buckets and a 120 hour turnaround target.
func DefaultFilters(now time.Time) FilterSet {
	day := now.UTC().Truncate(24 * time.Hour)
	return FilterSet{
		DateFrom:          day.AddDate(0, 0, -30),
		DateTo:            day,
		Interval:          "day",
		MinDaysOverdue:    0,
		WarningWindowDays: 2,
		SLAHours:          120,
		TopLimit:          10,
		ClientLimit:       8,
		WarningLimit:      10,
		Slow: SlowOrderFilters{
			MinOpenHours:          0,
			OutlierThresholdHours: 0,
			Limit:                 50,
		},
	}
}

// Validate checks the structural constraints on the filter set.
func (f FilterSet) Validate() error {
	return validate.Struct(f)
}

// Equal reports whether two filter sets would produce the same cycle.
// time.Time fields compare by instant to ignore monotonic clock readings.
func (f FilterSet) Equal(other FilterSet) bool {
	return f.DateFrom.Equal(other.DateFrom) &&
		f.DateTo.Equal(other.DateTo) &&
		f.Interval == other.Interval &&
		f.MinDaysOverdue == other.MinDaysOverdue &&
		f.WarningWindowDays == other.WarningWindowDays &&
		f.SLAHours == other.SLAHours &&
		f.TopLimit == other.TopLimit &&
		f.ClientLimit == other.ClientLimit &&
		f.WarningLimit == other.WarningLimit &&
		f.Slow == other.Slow
}

// OverdueQuery translates the filter set for the overdue-orders resource.
func (f FilterSet) OverdueQuery() api.OverdueOrdersQuery {
	return api.OverdueOrdersQuery{
		DateFrom:          f.DateFrom,
		DateTo:            f.DateTo,
		Interval:          f.Interval,
		MinDaysOverdue:    f.MinDaysOverdue,
		WarningWindowDays: f.WarningWindowDays,
		SLAHours:          f.SLAHours,
		TopLimit:          f.TopLimit,
		ClientLimit:       f.ClientLimit,
		WarningLimit:      f.WarningLimit,
	}
}

// SlowQuery translates the filter set for the slow-orders resource.
func (f FilterSet) SlowQuery() api.SlowOrdersQuery {
	return api.SlowOrdersQuery{
		DateFrom:              f.DateFrom,
		DateTo:                f.DateTo,
		CustomerQuery:         f.Slow.CustomerQuery,
		MinOpenHours:          f.Slow.MinOpenHours,
		OutlierThresholdHours: f.Slow.OutlierThresholdHours,
		Limit:                 f.Slow.Limit,
	}
}

func (f FilterSet) cacheKeyParts() []string {
	return []string{
		dateToken(f.DateFrom),
		dateToken(f.DateTo),
		f.Interval,
		strconv.Itoa(f.MinDaysOverdue),
		strconv.Itoa(f.WarningWindowDays),
		strconv.FormatFloat(f.SLAHours, 'f', -1, 64),
		strconv.Itoa(f.TopLimit),
		strconv.Itoa(f.ClientLimit),
		strconv.Itoa(f.WarningLimit),
		f.Slow.CustomerQuery,
		strconv.FormatFloat(f.Slow.MinOpenHours, 'f', -1, 64),
		strconv.FormatFloat(f.Slow.OutlierThresholdHours, 'f', -1, 64),
		strconv.Itoa(f.Slow.Limit),
	}
}

func dateToken(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
