package analytichttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers the dashboard endpoints onto the router. The refresh
// action is rate limited per client IP so a stuck rendering layer cannot
// hammer the upstream analytics service.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/api/v1/dashboard", h.handleSnapshot)
	r.Get("/api/v1/dashboard/export", h.handleExport)
	r.Put("/api/v1/dashboard/filters", h.handleFilters)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Post("/api/v1/dashboard/refresh", h.handleRefresh)
	})
}
