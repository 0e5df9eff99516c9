package analytics

import (
	"context"
	"log/slog"
	"sync"
)

// Loader produces one composite read model for a filter set. Implemented by
// *Service; narrowed to an interface so controller tests can stub cycles.
type Loader interface {
	LoadPriorityOrders(ctx context.Context, filters FilterSet) (*PriorityOrdersData, error)
}

// Snapshot is the immutable view handed to the rendering layer.
type Snapshot struct {
	Data    *PriorityOrdersData `json:"data"`
	Loading bool                `json:"loading"`
	Error   string              `json:"error"`
	Filters FilterSet           `json:"filters"`
}

// Controller holds the latest composite view model together with the loading
// flag and error message, and re-runs the orchestrator when the filter set
// changes or a refresh is requested.
//
// Each cycle carries a monotonically increasing token; only the cycle whose
// token still matches the current one may write state, so a superseded
// cycle's result is computed but never applied. In-flight upstream calls are
// not cancelled; supersession acts on effects only.
type Controller struct {
	loader Loader
	logger *slog.Logger

	mu      sync.Mutex
	filters FilterSet
	data    *PriorityOrdersData
	loading bool
	errMsg  string
	cycle   uint64

	// afterApply is a test seam invoked after a cycle result is handled;
	// applied reports whether the result was written or discarded.
	afterApply func(token uint64, applied bool)
}

// NewController constructs the view-state controller with its initial filter
// set. No cycle starts until SetFilters or Refresh is called.
func NewController(loader Loader, filters FilterSet, logger *slog.Logger) *Controller {
	return &Controller{loader: loader, filters: filters, logger: logger}
}

// Snapshot returns the current {data, loading, error} triple. The data
// pointer references an immutable composite; callers must not mutate it.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Data: c.data, Loading: c.loading, Error: c.errMsg, Filters: c.filters}
}

// Filters returns the active filter set.
func (c *Controller) Filters() FilterSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SetFilters replaces the filter set and starts a new cycle when the set
// actually changed. It reports whether a cycle was started.
func (c *Controller) SetFilters(ctx context.Context, filters FilterSet) bool {
	c.mu.Lock()
	if c.filters.Equal(filters) {
		c.mu.Unlock()
		return false
	}
	c.filters = filters
	c.startCycleLocked(ctx)
	return true
}

// Refresh re-issues the current filter set unconditionally.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.startCycleLocked(ctx)
}

// startCycleLocked begins a new orchestration cycle: the error message is
// cleared optimistically, loading turns on, and any in-flight cycle is
// superseded by the token increment. Releases c.mu.
func (c *Controller) startCycleLocked(ctx context.Context) {
	c.cycle++
	token := c.cycle
	filters := c.filters
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	// The cycle must outlive the triggering request; context values are
	// kept but cancellation is not propagated.
	go c.runCycle(context.WithoutCancel(ctx), token, filters)
}

func (c *Controller) runCycle(ctx context.Context, token uint64, filters FilterSet) {
	data, err := c.loader.LoadPriorityOrders(ctx, filters)
	c.apply(token, data, err)
}

// apply writes the cycle outcome, unless a newer cycle superseded this one.
// On failure the previous composite is retained as last-known-good; only the
// error message changes.
func (c *Controller) apply(token uint64, data *PriorityOrdersData, err error) {
	c.mu.Lock()
	applied := token == c.cycle
	if applied {
		c.loading = false
		if err != nil {
			c.errMsg = err.Error()
			if c.logger != nil {
				c.logger.Error("dashboard load failed", slog.Uint64("cycle", token), slog.Any("error", err))
			}
		} else {
			c.data = data
			c.errMsg = ""
		}
	}
	hook := c.afterApply
	c.mu.Unlock()

	if hook != nil {
		hook(token, applied)
	}
}
