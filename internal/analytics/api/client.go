// Package api implements the HTTP client for the remote lab analytics service.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	overdueOrdersPath = "/analytics/orders/overdue"
	slowOrdersPath    = "/analytics/orders/slow-reported"

	maxErrorBodyBytes = 4096
)

// Client is a thin JSON client for the analytics dashboard endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient constructs a Client against the given base URL. A zero timeout
// falls back to 30 seconds.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    trimTrailingSlash(baseURL),
		logger:     logger,
	}
}

// Error carries a non-success upstream response. The message combines the
// numeric status with the upstream detail string, falling back to the HTTP
// status phrase when no detail was supplied.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = http.StatusText(e.Status)
	}
	return fmt.Sprintf("analytics api: %d %s", e.Status, detail)
}

// OverdueOrdersQuery scopes the overdue-orders resource.
type OverdueOrdersQuery struct {
	DateFrom          time.Time
	DateTo            time.Time
	Interval          string
	MinDaysOverdue    int
	WarningWindowDays int
	SLAHours          float64
	TopLimit          int
	ClientLimit       int
	WarningLimit      int
}

func (q OverdueOrdersQuery) values() url.Values {
	params := url.Values{}
	setDate(params, "date_from", q.DateFrom)
	setDate(params, "date_to", q.DateTo)
	setString(params, "interval", q.Interval)
	params.Set("min_days_overdue", strconv.Itoa(q.MinDaysOverdue))
	params.Set("warning_window_days", strconv.Itoa(q.WarningWindowDays))
	params.Set("sla_hours", formatFloat(q.SLAHours))
	params.Set("top_limit", strconv.Itoa(q.TopLimit))
	params.Set("client_limit", strconv.Itoa(q.ClientLimit))
	params.Set("warning_limit", strconv.Itoa(q.WarningLimit))
	return params
}

// SlowOrdersQuery scopes the slow-reported-orders resource.
type SlowOrdersQuery struct {
	DateFrom              time.Time
	DateTo                time.Time
	CustomerQuery         string
	MinOpenHours          float64
	OutlierThresholdHours float64
	Limit                 int
}

func (q SlowOrdersQuery) values() url.Values {
	params := url.Values{}
	setDate(params, "date_from", q.DateFrom)
	setDate(params, "date_to", q.DateTo)
	setString(params, "customer_query", q.CustomerQuery)
	params.Set("min_open_hours", formatFloat(q.MinOpenHours))
	params.Set("outlier_threshold_hours", formatFloat(q.OutlierThresholdHours))
	params.Set("limit", strconv.Itoa(q.Limit))
	return params
}

// FetchOverdueOrders retrieves overdue KPIs, ranked order lists, ready
// samples, timeline, heatmap triples and state breakdown in one payload.
func (c *Client) FetchOverdueOrders(ctx context.Context, query OverdueOrdersQuery) (*OverdueOrdersResponse, error) {
	var payload OverdueOrdersResponse
	if err := c.get(ctx, overdueOrdersPath, query.values(), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchSlowOrders retrieves slow-reported order statistics and the ranked
// item list.
func (c *Client) FetchSlowOrders(ctx context.Context, query SlowOrdersQuery) (*SlowOrdersResponse, error) {
	var payload SlowOrdersResponse
	if err := c.get(ctx, slowOrdersPath, query.values(), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	endpoint := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("analytics api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("analytics api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.logger != nil {
		c.logger.Debug("analytics fetch",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(started)))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("analytics api: decode %s: %w", path, err)
	}
	return nil
}

// readDetail extracts the upstream "detail" field from an error body when one
// is present. Anything unparseable yields an empty detail.
func readDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

func setDate(params url.Values, key string, value time.Time) {
	if value.IsZero() {
		return
	}
	params.Set(key, value.Format("2006-01-02"))
}

func setString(params url.Values, key, value string) {
	if value == "" {
		return
	}
	params.Set(key, value)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
