package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/core/metrics"
	inventory "stock-tracker/internal/features/inventory/domain"
	"stock-tracker/internal/features/inventory/ports"
	"stock-tracker/internal/features/poller/domain"

	"go.uber.org/zap"
)

// Options configures a Controller.
type Options struct {
	// Set is the initial tracked set.
	Set inventory.TrackedSet
	// RefreshInterval is the countdown length in seconds.
	RefreshInterval int
	// AutoRefresh starts the countdown immediately.
	AutoRefresh bool
	// ProductURLBase prefixes card and report links.
	ProductURLBase string
	// Metrics receives fetch observations. Optional.
	Metrics *metrics.Metrics
}

// Controller owns the dashboard state: the last result, the countdown and the
// settings. Nothing else writes them.
type Controller struct {
	provider ports.InventoryProvider
	metrics  *metrics.Metrics
	urlBase  string
	logger   *zap.Logger

	now       func() time.Time
	spawn     func(func())
	tickEvery time.Duration

	mu          sync.Mutex
	set         inventory.TrackedSet
	interval    int
	autoRefresh bool
	countdown   int
	status      domain.Status
	records     []inventory.Availability
	lastUpdated time.Time
	lastError   string
	seq         uint64
	inFlight    int
}

// NewController creates a new Controller in the Idle state.
func NewController(provider ports.InventoryProvider, opts Options) *Controller {
	interval := opts.RefreshInterval
	if interval < domain.MinRefreshInterval {
		interval = domain.MinRefreshInterval
	}

	c := &Controller{
		provider:  provider,
		metrics:   opts.Metrics,
		urlBase:   opts.ProductURLBase,
		logger:    logger.Component("poller"),
		now:       time.Now,
		spawn:     func(f func()) { go f() },
		tickEvery: time.Second,
		set:       copySet(opts.Set),
		interval:  interval,
		status:    domain.StatusIdle,
	}
	c.setAutoRefreshLocked(opts.AutoRefresh)
	return c
}

// Run issues the initial fetch and then ticks the countdown once per second
// until ctx is done.
func (c *Controller) Run(ctx context.Context) {
	c.startFetch("initial")

	ticker := time.NewTicker(c.tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Poller stopped")
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Tick advances the countdown by one second. When it reaches zero a fetch is
// started in the background and the countdown restarts at the interval.
func (c *Controller) Tick() {
	c.mu.Lock()
	if !c.autoRefresh {
		c.mu.Unlock()
		return
	}
	fire := c.countdown <= 1
	if fire {
		c.countdown = c.interval
	} else {
		c.countdown--
	}
	c.mu.Unlock()

	if fire {
		c.startFetch("timer")
	}
}

// Refresh fetches immediately and returns the state once the result is
// applied. Pending timer fetches are not cancelled; whichever completes last
// wins.
func (c *Controller) Refresh(ctx context.Context) domain.Snapshot {
	id, set := c.begin()
	c.fetch(ctx, id, set, "manual")
	return c.Snapshot()
}

// SetAutoRefresh turns the countdown on or off. Turning it on does not fetch.
func (c *Controller) SetAutoRefresh(enabled bool) domain.Snapshot {
	c.mu.Lock()
	c.setAutoRefreshLocked(enabled)
	c.mu.Unlock()

	c.logger.Info("Auto-refresh changed", zap.Bool("enabled", enabled))
	return c.Snapshot()
}

func (c *Controller) setAutoRefreshLocked(enabled bool) {
	c.autoRefresh = enabled
	if enabled {
		c.countdown = c.interval
	} else {
		c.countdown = 0
	}
}

// UpdateSettings replaces the tracked SKUs, postal code and interval. SKUs are
// trimmed and de-duplicated. While auto-refresh is on the countdown restarts
// at the new interval. No fetch is issued.
func (c *Controller) UpdateSettings(s domain.Settings) (domain.Snapshot, error) {
	skus := normalizeSKUs(s.SKUs)
	postal := strings.TrimSpace(s.PostalCode)

	switch {
	case len(skus) == 0:
		return domain.Snapshot{}, fmt.Errorf("%w: at least one SKU is required", domain.ErrInvalidSettings)
	case postal == "":
		return domain.Snapshot{}, fmt.Errorf("%w: postal code is required", domain.ErrInvalidSettings)
	case s.RefreshInterval < domain.MinRefreshInterval:
		return domain.Snapshot{}, fmt.Errorf("%w: refresh interval must be at least %d seconds",
			domain.ErrInvalidSettings, domain.MinRefreshInterval)
	}

	c.mu.Lock()
	c.set.SKUs = skus
	c.set.PostalCode = postal
	c.interval = s.RefreshInterval
	if c.autoRefresh {
		c.countdown = c.interval
	}
	c.mu.Unlock()

	c.logger.Info("Settings updated",
		zap.Strings("skus", skus),
		zap.String("postal_code", postal),
		zap.Int("refresh_interval", s.RefreshInterval),
	)
	return c.Snapshot(), nil
}

// Snapshot returns a copy of the current state with its cards.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := domain.Snapshot{
		Status:          c.status,
		AutoRefresh:     c.autoRefresh,
		Countdown:       c.countdown,
		RefreshInterval: c.interval,
		SKUs:            append([]string(nil), c.set.SKUs...),
		PostalCode:      c.set.PostalCode,
		Error:           c.lastError,
		Cards:           domain.BuildCards(c.records, c.urlBase),
		AnyStock:        inventory.BatchHasStock(c.records),
		InFlight:        c.inFlight,
		FetchSeq:        c.seq,
	}
	if !c.lastUpdated.IsZero() {
		t := c.lastUpdated
		snap.LastUpdated = &t
	}
	return snap
}

// Report builds the email report of the current result.
func (c *Controller) Report() domain.Report {
	c.mu.Lock()
	records := c.records
	c.mu.Unlock()

	return domain.BuildReport(records, c.urlBase, c.now())
}

// startFetch issues a fetch without waiting for it.
func (c *Controller) startFetch(reason string) {
	id, set := c.begin()
	c.spawn(func() {
		c.fetch(context.Background(), id, set, reason)
	})
}

// begin moves the controller to Loading and reserves a fetch sequence number.
func (c *Controller) begin() (uint64, inventory.TrackedSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.inFlight++
	c.status = domain.StatusLoading
	c.lastError = ""
	return c.seq, copySet(c.set)
}

func (c *Controller) fetch(ctx context.Context, id uint64, set inventory.TrackedSet, reason string) {
	start := time.Now()
	records, err := c.provider.FetchAvailability(ctx, set)
	c.metrics.ObserveFetch("poller", time.Since(start), err)
	c.apply(id, records, err, reason)
}

// apply stores the outcome of a completed fetch. Completions are applied in the
// order they land.
func (c *Controller) apply(id uint64, records []inventory.Availability, err error, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	if err != nil {
		c.status = domain.StatusFailed
		c.lastError = err.Error()
		c.logger.Warn("Fetch failed",
			zap.Uint64("fetch_seq", id),
			zap.String("reason", reason),
			zap.Error(err),
		)
		return
	}

	c.status = domain.StatusReady
	c.records = records
	c.lastUpdated = c.now()
	c.lastError = ""
	c.metrics.SetAvailable(inventory.CountAvailable(records))
	c.logger.Debug("Fetch applied",
		zap.Uint64("fetch_seq", id),
		zap.String("reason", reason),
		zap.Int("records", len(records)),
	)
}

func normalizeSKUs(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func copySet(s inventory.TrackedSet) inventory.TrackedSet {
	return inventory.TrackedSet{
		SKUs:       append([]string(nil), s.SKUs...),
		PostalCode: s.PostalCode,
		Locations:  append([]string(nil), s.Locations...),
	}
}
