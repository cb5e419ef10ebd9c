package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("INVENTORY_SKUS")
	os.Unsetenv("POSTAL_CODE")
	os.Unsetenv("POLL_INTERVAL_SECONDS")
	os.Unsetenv("POLL_AUTO_REFRESH")
	os.Unsetenv("EMAIL_USER")
	os.Unsetenv("EMAIL_PASS")

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "https://www.bestbuy.ca/ecomm-api/availability/products", cfg.Inventory.APIURL)
	assert.Equal(t, []string{"18391208", "18391209", "18391210", "18391211"}, cfg.Inventory.SKUList())
	assert.Equal(t, "V3M0B2", cfg.Inventory.PostalCode)
	assert.Len(t, cfg.Inventory.LocationList(), 27)
	assert.Equal(t, time.Duration(0), cfg.Inventory.Timeout)
	assert.Equal(t, 30, cfg.Poller.RefreshInterval)
	assert.True(t, cfg.Poller.AutoRefresh)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.False(t, cfg.Mail.HasCredentials())
	assert.False(t, cfg.Checker.TestMode)
	assert.Equal(t, 24*time.Hour, cfg.Redis.ReportTTL)
	assert.False(t, cfg.Proxy.HasProxy())
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("INVENTORY_SKUS", " A , B,A ")
	os.Setenv("EMAIL_USER", "me@example.com")
	os.Setenv("EMAIL_PASS", "app-pass")
	os.Setenv("TEST_MODE", "true")
	os.Setenv("UPSTREAM_TIMEOUT", "15s")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("INVENTORY_SKUS")
		os.Unsetenv("EMAIL_USER")
		os.Unsetenv("EMAIL_PASS")
		os.Unsetenv("TEST_MODE")
		os.Unsetenv("UPSTREAM_TIMEOUT")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, []string{"A", "B"}, cfg.Inventory.SKUList())
	assert.True(t, cfg.Mail.HasCredentials())
	assert.Equal(t, "me@example.com", cfg.Mail.Recipient())
	assert.True(t, cfg.Checker.TestMode)
	assert.Equal(t, 15*time.Second, cfg.Inventory.Timeout)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
POSTAL_CODE=M5V2T6
EMAIL_TO=alerts@example.com
CHECK_SECRET=s3cret
PROXY_ENABLED=true
PROXY_HOST=proxy.local
PROXY_PORT=3128
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "M5V2T6", cfg.Inventory.PostalCode)
	assert.Equal(t, "alerts@example.com", cfg.Mail.Recipient())
	assert.Equal(t, "s3cret", cfg.Checker.Secret)
	assert.True(t, cfg.Proxy.HasProxy())
	assert.Equal(t, "http://proxy.local:3128", cfg.Proxy.HostPort())
}

// TestValidateRequired verifies that blank required fields are reported by key.
func TestValidateRequired(t *testing.T) {
	cfg := &AppConfig{
		Inventory: InventoryConfig{APIURL: "https://api.test", PostalCode: "  "},
	}

	err := validateRequired(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required configuration")
	assert.Contains(t, err.Error(), "POSTAL_CODE")

	cfg.Inventory.PostalCode = "V3M0B2"
	assert.NoError(t, validateRequired(cfg))
}

// TestSplitList verifies trimming, empty removal and de-duplication.
func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, SplitList("1| 2 ||3|1", "|"))
	assert.Empty(t, SplitList("  ,  ", ","))
}
