package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-tracker/internal/core/config"
	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/core/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew verifies that New creates a Server with the correct configuration.
func TestNew(t *testing.T) {
	cfg := &config.AppConfig{
		ServerPort: 8080,
	}

	logger.Init("development", "debug")
	srv := New(cfg, nil)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.App)
	assert.Equal(t, cfg, srv.cfg)
	assert.Equal(t, "stock-tracker", srv.App.Config().AppName)
}

// TestServer_Healthz verifies the health endpoint and the ray id header.
func TestServer_Healthz(t *testing.T) {
	srv := New(&config.AppConfig{}, nil)

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))
}

// TestServer_Metrics verifies /metrics is mounted only with a registry.
func TestServer_Metrics(t *testing.T) {
	m := metrics.New("stock_tracker")
	m.AlertSent()
	srv := New(&config.AppConfig{}, m)

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "stock_tracker_alerts_sent_total 1")

	bare := New(&config.AppConfig{}, nil)
	resp, err = bare.App.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestServer_CORS verifies preflight requests from the dashboard origin.
func TestServer_CORS(t *testing.T) {
	srv := New(&config.AppConfig{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/poller", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)

	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

// TestServer_Run_Error verifies that Run returns an error when binding fails (e.g., privileged port).
func TestServer_Run_Error(t *testing.T) {
	// Privileged port 1 should fail
	cfg := &config.AppConfig{
		ServerPort: 1,
	}
	logger.Init("development", "error")

	srv := New(cfg, nil)

	errCh := make(chan error)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(1 * time.Second):
		srv.Shutdown()
		t.Log("Server unexpectedly started or timed out on Error test")
	}
}
