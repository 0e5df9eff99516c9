package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labwatch/labwatch/internal/observability"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRouterHealthz(t *testing.T) {
	router := NewRouter(RouterParams{Logger: testLogger(), Config: &Config{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics()
	router := NewRouter(RouterParams{Logger: testLogger(), Config: &Config{}, Metrics: metrics})

	// Drive one request through the middleware so a counter exists.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "labwatch_http_requests_total") {
		t.Fatalf("metrics body missing request counter")
	}
}

func TestRouterSecureHeaders(t *testing.T) {
	router := NewRouter(RouterParams{Logger: testLogger(), Config: &Config{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppAddr != ":8080" {
		t.Fatalf("default addr = %q", cfg.AppAddr)
	}
	if cfg.AnalyticsBaseURL == "" {
		t.Fatalf("analytics base URL must default to a non-empty value")
	}
	if !cfg.CacheEnabled || cfg.CacheTTL <= 0 {
		t.Fatalf("cache defaults = enabled %v ttl %v", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.IsProduction() {
		t.Fatalf("development is the default environment")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LABWATCH_APP_ENV", "production")
	t.Setenv("LABWATCH_ANALYTICS_BASE_URL", "https://lims.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatalf("APP_ENV override not honored")
	}
	if cfg.AnalyticsBaseURL != "https://lims.example.com" {
		t.Fatalf("analytics base URL = %q", cfg.AnalyticsBaseURL)
	}
}
