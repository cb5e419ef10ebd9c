// Package app wires the features together for the command entry points.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-tracker/internal/core/cache"
	"stock-tracker/internal/core/config"
	"stock-tracker/internal/core/httpclient"
	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/core/metrics"
	alertadapter "stock-tracker/internal/features/alerts/adapters"
	alertports "stock-tracker/internal/features/alerts/ports"
	alertservice "stock-tracker/internal/features/alerts/service"
	inventoryadapter "stock-tracker/internal/features/inventory/adapters"
	"stock-tracker/internal/features/inventory/domain"
	"stock-tracker/internal/features/inventory/ports"
	pollerservice "stock-tracker/internal/features/poller/service"

	"go.uber.org/zap"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "stock_tracker"

// Fetcher kinds accepted by POLL_FETCHER.
const (
	FetcherHTTP    = "http"
	FetcherBrowser = "browser"
)

// TrackedSet returns the configured SKUs, postal code and locations.
func TrackedSet(cfg *config.AppConfig) domain.TrackedSet {
	return domain.TrackedSet{
		SKUs:       cfg.Inventory.SKUList(),
		PostalCode: cfg.Inventory.PostalCode,
		Locations:  cfg.Inventory.LocationList(),
	}
}

// NewInventoryProvider builds the fetcher selected by kind.
func NewInventoryProvider(cfg *config.AppConfig, kind string) (ports.InventoryProvider, error) {
	opts := httpclient.Options{
		Timeout:   cfg.Inventory.Timeout,
		UserAgent: cfg.Inventory.UserAgent,
		Proxy:     cfg.Proxy,
	}
	switch kind {
	case "", FetcherHTTP:
		return inventoryadapter.NewBestBuyAdapter(cfg.Inventory.APIURL, httpclient.NewClient(opts)), nil
	case FetcherBrowser:
		return inventoryadapter.NewBrowserAdapter(cfg.Inventory.APIURL, cfg.Inventory.CORSProxyPrefix, opts), nil
	default:
		return nil, fmt.Errorf("unknown fetcher %q", kind)
	}
}

// NewController builds the dashboard poller.
func NewController(cfg *config.AppConfig, m *metrics.Metrics) (*pollerservice.Controller, error) {
	provider, err := NewInventoryProvider(cfg, cfg.Poller.Fetcher)
	if err != nil {
		return nil, err
	}

	return pollerservice.NewController(provider, pollerservice.Options{
		Set:             TrackedSet(cfg),
		RefreshInterval: cfg.Poller.RefreshInterval,
		AutoRefresh:     cfg.Poller.AutoRefresh,
		ProductURLBase:  cfg.Inventory.ProductURLBase,
		Metrics:         m,
	}), nil
}

// NewMailer returns the SMTP mailer, or nil when credentials are missing.
func NewMailer(cfg config.MailConfig) (alertports.Mailer, error) {
	mailer, err := alertadapter.NewSMTPMailer(cfg)
	if errors.Is(err, alertadapter.ErrMissingCredentials) {
		logger.Get().Warn("Mail credentials not configured, stock alerts will not be sent")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mailer, nil
}

// NewReportCache connects to Redis when REDIS_URL is set. It returns nil when
// run reports are disabled.
func NewReportCache(ctx context.Context, cfg config.RedisConfig) (cache.Cache, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	c, err := cache.NewRedisAdapter(cfg.URL, "stock-tracker")
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Checker is a wired CheckerService with the resources it owns.
type Checker struct {
	*alertservice.CheckerService
	cache cache.Cache
}

// Close releases the Redis connection, if any.
func (c *Checker) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Close()
}

// NewChecker builds the unattended checker. A Redis failure disables run
// reports instead of failing the check.
func NewChecker(ctx context.Context, cfg *config.AppConfig, m *metrics.Metrics) (*Checker, error) {
	provider, err := NewInventoryProvider(cfg, FetcherHTTP)
	if err != nil {
		return nil, err
	}

	mailer, err := NewMailer(cfg.Mail)
	if err != nil {
		return nil, err
	}

	opts := alertservice.CheckerOptions{
		Set:            TrackedSet(cfg),
		ProductURLBase: cfg.Inventory.ProductURLBase,
		TestMode:       cfg.Checker.TestMode,
		Metrics:        m,
	}

	c, err := NewReportCache(ctx, cfg.Redis)
	if err != nil {
		logger.Get().Warn("Redis unavailable, run reports disabled", zap.Error(err))
		c = nil
	}
	if c != nil {
		opts.Reports = alertadapter.NewRedisReportRepository(c, cfg.Redis.ReportTTL)
	}

	return &Checker{
		CheckerService: alertservice.NewCheckerService(provider, mailer, opts),
		cache:          c,
	}, nil
}
