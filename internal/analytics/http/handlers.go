// Package analytichttp exposes the dashboard read model to the rendering
// layer over HTTP.
package analytichttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labwatch/labwatch/internal/analytics"
	"github.com/labwatch/labwatch/internal/analytics/export"
	"github.com/labwatch/labwatch/internal/platform/httpx"
)

// CacheInvalidator drops cached upstream payloads ahead of a forced refresh.
// Satisfied by *analytics.Service.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// Handler serves the dashboard snapshot, filter updates and refresh action.
type Handler struct {
	logger      *slog.Logger
	controller  *analytics.Controller
	invalidator CacheInvalidator
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, controller *analytics.Controller, invalidator CacheInvalidator) *Handler {
	return &Handler{logger: logger, controller: controller, invalidator: invalidator}
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.controller.Snapshot())
}

// handleRefresh bumps the response cache first so the new cycle reaches the
// upstream service instead of replaying a cached payload.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if h.invalidator != nil {
		if err := h.invalidator.InvalidateCache(r.Context()); err != nil {
			h.logger.Warn("invalidate dashboard cache", slog.Any("error", err))
		}
	}
	h.controller.Refresh(r.Context())
	httpx.JSON(w, http.StatusAccepted, map[string]string{"status": "refreshing"})
}

// handleFilters overlays the request onto the active filter set, so a caller
// only has to carry the parameters it changes. JSON bodies and query
// parameters are both accepted.
func (h *Handler) handleFilters(w http.ResponseWriter, r *http.Request) {
	filters := h.controller.Filters()
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err = httpx.DecodeJSON(r, &filters)
	} else {
		filters, err = h.parseFilters(r, filters)
	}
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Filters", err.Error())
		return
	}
	if err := filters.Validate(); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Filters", err.Error())
		return
	}

	started := h.controller.SetFilters(r.Context(), filters)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"filters": filters,
		"started": started,
	})
}

func (h *Handler) parseFilters(r *http.Request, filters analytics.FilterSet) (analytics.FilterSet, error) {
	q := r.URL.Query()

	if err := parseDate(q.Get("date_from"), &filters.DateFrom); err != nil {
		return filters, err
	}
	if err := parseDate(q.Get("date_to"), &filters.DateTo); err != nil {
		return filters, err
	}
	if v := strings.TrimSpace(q.Get("interval")); v != "" {
		filters.Interval = v
	}
	if err := parseInt(q.Get("min_days_overdue"), &filters.MinDaysOverdue); err != nil {
		return filters, err
	}
	if err := parseInt(q.Get("warning_window_days"), &filters.WarningWindowDays); err != nil {
		return filters, err
	}
	if err := parseFloat(q.Get("sla_hours"), &filters.SLAHours); err != nil {
		return filters, err
	}
	if err := parseInt(q.Get("top_limit"), &filters.TopLimit); err != nil {
		return filters, err
	}
	if err := parseInt(q.Get("client_limit"), &filters.ClientLimit); err != nil {
		return filters, err
	}
	if err := parseInt(q.Get("warning_limit"), &filters.WarningLimit); err != nil {
		return filters, err
	}
	if v, ok := q["customer_query"]; ok && len(v) > 0 {
		filters.Slow.CustomerQuery = strings.TrimSpace(v[0])
	}
	if err := parseFloat(q.Get("min_open_hours"), &filters.Slow.MinOpenHours); err != nil {
		return filters, err
	}
	if err := parseFloat(q.Get("outlier_threshold_hours"), &filters.Slow.OutlierThresholdHours); err != nil {
		return filters, err
	}
	if err := parseInt(q.Get("slow_limit"), &filters.Slow.Limit); err != nil {
		return filters, err
	}
	return filters, nil
}

// handleExport streams one dashboard section from the current snapshot as a
// CSV download. Exports never trigger a cycle; they read what is already
// there.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	snapshot := h.controller.Snapshot()
	if snapshot.Data == nil {
		httpx.Problem(w, http.StatusConflict, "No Data", "no dashboard data loaded yet")
		return
	}

	section := r.URL.Query().Get("section")
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "dashboard_"+section+".csv"))

	var err error
	switch section {
	case "top_orders":
		err = export.WriteOverdueOrdersCSV(w, snapshot.Data.TopOrders)
	case "warning_orders":
		err = export.WriteOverdueOrdersCSV(w, snapshot.Data.WarningOrders)
	case "slow_orders":
		err = export.WriteSlowOrdersCSV(w, snapshot.Data.SlowReported)
	case "timeline":
		err = export.WriteTimelineCSV(w, snapshot.Data.Timeline)
	case "heatmap":
		err = export.WriteHeatmapCSV(w, snapshot.Data.Heatmap)
	default:
		w.Header().Del("Content-Disposition")
		httpx.Problem(w, http.StatusBadRequest, "Invalid Section", fmt.Sprintf("unknown export section %q", section))
		return
	}
	if err != nil {
		h.logger.Error("export dashboard section", slog.String("section", section), slog.Any("error", err))
	}
}

func parseDate(raw string, dest *time.Time) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return fmt.Errorf("invalid date %q", raw)
	}
	*dest = t
	return nil
}

func parseInt(raw string, dest *int) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid integer %q", raw)
	}
	*dest = v
	return nil
}

func parseFloat(raw string, dest *float64) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", raw)
	}
	*dest = v
	return nil
}
