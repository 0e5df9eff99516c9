package analytics

import (
	"testing"
	"time"
)

func TestFilterSetValidate(t *testing.T) {
	valid := testFilters()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default filters must validate: %v", err)
	}

	badInterval := testFilters()
	badInterval.Interval = "month"
	if err := badInterval.Validate(); err == nil {
		t.Fatalf("interval outside day/week must fail validation")
	}

	badLimit := testFilters()
	badLimit.TopLimit = 0
	if err := badLimit.Validate(); err == nil {
		t.Fatalf("zero top limit must fail validation")
	}

	badSlowLimit := testFilters()
	badSlowLimit.Slow.Limit = 500
	if err := badSlowLimit.Validate(); err == nil {
		t.Fatalf("slow limit above 200 must fail validation")
	}
}

func TestFilterSetEqualIgnoresMonotonicClock(t *testing.T) {
	a := testFilters()
	b := a
	b.DateFrom = a.DateFrom.Round(0)
	if !a.Equal(b) {
		t.Fatalf("instants differing only in monotonic reading must compare equal")
	}

	b.SLAHours = 96
	if a.Equal(b) {
		t.Fatalf("changed SLA hours must compare unequal")
	}

	c := a
	c.Slow.CustomerQuery = "acme"
	if a.Equal(c) {
		t.Fatalf("changed slow filters must compare unequal")
	}
}

func TestFilterSetQueries(t *testing.T) {
	filters := testFilters()
	filters.Slow.CustomerQuery = "acme"

	overdue := filters.OverdueQuery()
	if overdue.Interval != filters.Interval || overdue.SLAHours != filters.SLAHours {
		t.Fatalf("overdue query drops fields: %+v", overdue)
	}

	slow := filters.SlowQuery()
	if slow.CustomerQuery != "acme" || !slow.DateFrom.Equal(filters.DateFrom) {
		t.Fatalf("slow query drops fields: %+v", slow)
	}
}

func TestCacheKeyPartsDistinguishFilterSets(t *testing.T) {
	a := testFilters()
	b := a
	b.WarningLimit = 99

	aKey := a.cacheKeyParts()
	bKey := b.cacheKeyParts()
	if len(aKey) != len(bKey) {
		t.Fatalf("key part counts diverge: %d vs %d", len(aKey), len(bKey))
	}
	same := true
	for i := range aKey {
		if aKey[i] != bKey[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different filter sets must produce different cache key parts")
	}
}

func TestDefaultFilters(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	filters := DefaultFilters(now)
	if err := filters.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if filters.DateTo.Hour() != 0 {
		t.Fatalf("date bounds must truncate to midnight, got %v", filters.DateTo)
	}
	if got := filters.DateTo.Sub(filters.DateFrom); got != 30*24*time.Hour {
		t.Fatalf("default window = %v, want 30 days", got)
	}
	if filters.SLAHours != 120 {
		t.Fatalf("default SLA hours = %v", filters.SLAHours)
	}
}
