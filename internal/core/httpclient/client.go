package httpclient

import (
	"net/http"
	"net/url"
	"time"

	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/core/proxy"

	"go.uber.org/zap"
)

// LoggingRoundTripper captures request details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// UserAgent, when set, is added to requests that do not carry one.
	UserAgent string
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	if lrt.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", lrt.UserAgent)
	}

	logger.Get().Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// Options tunes the client returned by NewClient.
type Options struct {
	// Timeout bounds the whole request. Zero means no client-level timeout.
	Timeout time.Duration
	// UserAgent is applied to requests without an explicit User-Agent.
	UserAgent string
	// Proxy routes requests through an outbound proxy when enabled.
	Proxy proxy.Settings
	// ProxyURL, when set, takes precedence over Proxy (e.g. a local forwarder).
	ProxyURL string
}

// NewClient returns an http.Client with logging middleware.
func NewClient(opts Options) *http.Client {
	transport := http.DefaultTransport
	rawProxy := opts.ProxyURL
	if rawProxy == "" && opts.Proxy.HasProxy() {
		rawProxy = opts.Proxy.FullURL()
	}
	if rawProxy != "" {
		if proxyURL, err := url.Parse(rawProxy); err == nil {
			t := http.DefaultTransport.(*http.Transport).Clone()
			t.Proxy = http.ProxyURL(proxyURL)
			transport = t
		} else {
			logger.Get().Warn("Ignoring invalid outbound proxy", zap.Error(err))
		}
	}

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied:   transport,
			UserAgent: opts.UserAgent,
		},
		Timeout: opts.Timeout,
	}
}
