package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-tracker/internal/core/config"
	"stock-tracker/internal/core/proxy"
	alertdomain "stock-tracker/internal/features/alerts/domain"
	inventoryadapter "stock-tracker/internal/features/inventory/adapters"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const soldOutBody = `{"availabilities": [
	{"sku": "18391208", "shipping": {"status": "SoldOutOnline"}, "pickup": {"status": "OutOfStock", "locations": []}}
]}`

func testConfig(apiURL string) *config.AppConfig {
	return &config.AppConfig{
		Inventory: config.InventoryConfig{
			APIURL:          apiURL,
			SKUs:            "18391208, 18391209,18391208",
			PostalCode:      "V3M0B2",
			Locations:       "600|134",
			CORSProxyPrefix: "https://corsproxy.io/?",
			ProductURLBase:  "https://www.bestbuy.ca/en-ca/product/",
			UserAgent:       "test-agent",
		},
		Poller: config.PollerConfig{RefreshInterval: 30, AutoRefresh: true, Fetcher: FetcherHTTP},
		Mail:   config.MailConfig{FromName: "BestBuy Tracker", Host: "127.0.0.1", Port: 1},
		Redis:  config.RedisConfig{ReportTTL: time.Hour},
		Proxy:  proxy.Settings{},
	}
}

func TestTrackedSet(t *testing.T) {
	set := TrackedSet(testConfig("https://api.test"))
	assert.Equal(t, []string{"18391208", "18391209"}, set.SKUs)
	assert.Equal(t, "V3M0B2", set.PostalCode)
	assert.Equal(t, []string{"600", "134"}, set.Locations)
}

func TestNewInventoryProvider(t *testing.T) {
	cfg := testConfig("https://api.test")

	p, err := NewInventoryProvider(cfg, FetcherHTTP)
	require.NoError(t, err)
	assert.IsType(t, &inventoryadapter.BestBuyAdapter{}, p)

	p, err = NewInventoryProvider(cfg, FetcherBrowser)
	require.NoError(t, err)
	assert.IsType(t, &inventoryadapter.BrowserAdapter{}, p)

	_, err = NewInventoryProvider(cfg, "carrier-pigeon")
	assert.Error(t, err)
}

func TestNewMailer(t *testing.T) {
	mailer, err := NewMailer(config.MailConfig{})
	require.NoError(t, err)
	assert.Nil(t, mailer)

	mailer, err = NewMailer(config.MailConfig{Username: "u@example.com", Password: "p", Host: "smtp.test", Port: 587})
	require.NoError(t, err)
	assert.NotNil(t, mailer)
}

func TestNewReportCache(t *testing.T) {
	c, err := NewReportCache(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)

	mr := miniredis.RunT(t)
	c, err = NewReportCache(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NoError(t, c.Close())

	_, err = NewReportCache(context.Background(), config.RedisConfig{URL: "redis://127.0.0.1:1"})
	assert.Error(t, err)
}

func TestNewController(t *testing.T) {
	cfg := testConfig("https://api.test")

	c, err := NewController(cfg, nil)
	require.NoError(t, err)
	snap := c.Snapshot()
	assert.Equal(t, 30, snap.Countdown)
	assert.Equal(t, []string{"18391208", "18391209"}, snap.SKUs)

	cfg.Poller.Fetcher = "ftp"
	_, err = NewController(cfg, nil)
	assert.Error(t, err)
}

// TestNewChecker_TestMode runs a full check against a fake upstream and Redis.
func TestNewChecker_TestMode(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "18391208|18391209", r.URL.Query().Get("skus"))
		w.Write([]byte(soldOutBody))
	}))
	defer upstream.Close()
	mr := miniredis.RunT(t)

	cfg := testConfig(upstream.URL)
	cfg.Checker.TestMode = true
	cfg.Redis.URL = "redis://" + mr.Addr()

	checker, err := NewChecker(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer checker.Close()

	report, err := checker.Run(context.Background(), alertdomain.TriggerCLI)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 1, report.Items)
	assert.Equal(t, []string{alertdomain.TestModeSKU}, report.AvailableSKUs)
	assert.True(t, report.MailSkipped)

	last, err := checker.LastReport(context.Background())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, report.RunID, last.RunID)
}

// TestNewChecker_RedisDown verifies a Redis failure only disables reports.
func TestNewChecker_RedisDown(t *testing.T) {
	cfg := testConfig("https://api.test")
	cfg.Redis.URL = "redis://127.0.0.1:1"

	checker, err := NewChecker(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.NoError(t, checker.Close())

	_, err = checker.LastReport(context.Background())
	assert.Error(t, err)
}
