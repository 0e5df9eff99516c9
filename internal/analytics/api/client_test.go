package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestFetchOverdueOrdersQueryComposition(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing X-Request-ID header")
		}
		_ = json.NewEncoder(w).Encode(OverdueOrdersResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second, nil)
	query := OverdueOrdersQuery{
		DateFrom: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Interval: "week",
		SLAHours: 120,
		TopLimit: 10,
	}
	if _, err := client.FetchOverdueOrders(context.Background(), query); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotPath != "/analytics/orders/overdue" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery.Get("date_from") != "2024-02-01" {
		t.Fatalf("date_from = %q", gotQuery.Get("date_from"))
	}
	if gotQuery.Has("date_to") {
		t.Fatalf("zero date_to must be omitted, got %q", gotQuery.Get("date_to"))
	}
	if gotQuery.Get("interval") != "week" || gotQuery.Get("sla_hours") != "120" {
		t.Fatalf("query = %v", gotQuery)
	}
}

func TestFetchSlowOrdersQueryComposition(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(SlowOrdersResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	query := SlowOrdersQuery{CustomerQuery: "acme", MinOpenHours: 48, Limit: 50}
	if _, err := client.FetchSlowOrders(context.Background(), query); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotPath != "/analytics/orders/slow-reported" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery.Get("customer_query") != "acme" || gotQuery.Get("min_open_hours") != "48" {
		t.Fatalf("query = %v", gotQuery)
	}
}

func TestFetchErrorCarriesUpstreamDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail":"analytics warehouse offline"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, err := client.FetchOverdueOrders(context.Background(), OverdueOrdersQuery{})
	if err == nil {
		t.Fatalf("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Fatalf("status = %d", apiErr.Status)
	}
	want := "analytics api: 502 analytics warehouse offline"
	if apiErr.Error() != want {
		t.Fatalf("message = %q, want %q", apiErr.Error(), want)
	}
}

func TestFetchErrorFallsBackToStatusPhrase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, err := client.FetchSlowOrders(context.Background(), SlowOrdersQuery{})
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "analytics api: 503 Service Unavailable"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestFlexBoolCoercion(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{`null`, false},
		{`false`, false},
		{`true`, true},
		{`0`, false},
		{`1`, true},
		{`2.5`, true},
		{`""`, false},
		{`"yes"`, true},
		{`[1]`, true},
		{`{"flag":1}`, true},
	}
	for _, tc := range cases {
		var b FlexBool
		if err := json.Unmarshal([]byte(tc.raw), &b); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		if bool(b) != tc.want {
			t.Fatalf("FlexBool(%s) = %v, want %v", tc.raw, bool(b), tc.want)
		}
	}

	var b FlexBool
	if err := json.Unmarshal([]byte(`not json`), &b); err == nil {
		t.Fatalf("malformed JSON must error")
	}
}

func TestDecodeSlowOrderRecordWithMixedOutlier(t *testing.T) {
	raw := `{"stats":{"total_orders":2},"items":[
		{"order_id":1,"is_outlier":1},
		{"order_id":2,"is_outlier":null}
	]}`
	var payload SlowOrdersResponse
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bool(payload.Items[0].IsOutlier) || bool(payload.Items[1].IsOutlier) {
		t.Fatalf("outlier flags = %v, %v", payload.Items[0].IsOutlier, payload.Items[1].IsOutlier)
	}
}
