package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/core/proxy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggingRoundTripper verifies that requests are executed and the User-Agent is applied.
func TestLoggingRoundTripper(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	require.NoError(t, logger.Init("development", "debug"))

	client := NewClient(Options{Timeout: time.Second, UserAgent: "stock-tracker-test"})
	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "stock-tracker-test", gotUA)
}

// TestLoggingRoundTripper_KeepsExplicitUserAgent verifies a caller header wins.
func TestLoggingRoundTripper_KeepsExplicitUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer ts.Close()

	client := NewClient(Options{UserAgent: "default-agent"})
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "explicit")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "explicit", gotUA)
}

// TestLoggingRoundTripper_Error verifies that failed requests are logged.
func TestLoggingRoundTripper_Error(t *testing.T) {
	require.NoError(t, logger.Init("development", "debug"))

	client := NewClient(Options{Timeout: time.Second})
	_, err := client.Get("http://invalid-url-that-does-not-exist.local")
	require.Error(t, err)
}

// TestNewClient_Proxy verifies that an enabled proxy replaces the default transport.
func TestNewClient_Proxy(t *testing.T) {
	client := NewClient(Options{Proxy: proxy.Settings{Enabled: true, Hostname: "proxy.local", Port: 3128}})
	lrt, ok := client.Transport.(*LoggingRoundTripper)
	require.True(t, ok)
	assert.NotSame(t, http.DefaultTransport, lrt.Proxied)

	plain := NewClient(Options{})
	assert.Same(t, http.DefaultTransport, plain.Transport.(*LoggingRoundTripper).Proxied)
}

// TestNewClient_ProxyURL verifies an explicit proxy URL wins over the settings.
func TestNewClient_ProxyURL(t *testing.T) {
	client := NewClient(Options{
		Proxy:    proxy.Settings{Enabled: true, Hostname: "proxy.local", Port: 3128},
		ProxyURL: "http://127.0.0.1:18080",
	})
	tr, ok := client.Transport.(*LoggingRoundTripper).Proxied.(*http.Transport)
	require.True(t, ok)

	req, err := http.NewRequest(http.MethodGet, "https://www.bestbuy.ca/", nil)
	require.NoError(t, err)
	got, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:18080", got.Host)
}
