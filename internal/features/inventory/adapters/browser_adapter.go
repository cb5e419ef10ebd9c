package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stock-tracker/internal/core/httpclient"
	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/core/proxy"
	"stock-tracker/internal/features/inventory/domain"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// BrowserAdapter fetches availability the way a browser page does: through the
// CORS proxy, from a real Chromium instance driven by rod.
type BrowserAdapter struct {
	baseURL     string
	proxyPrefix string
	proxy       proxy.Settings
	// client configures the http.Client that loads hijacked documents.
	client  httpclient.Options
	timeout time.Duration
	logger  *zap.Logger
}

// NewBrowserAdapter creates a new BrowserAdapter. opts.Proxy is also used by
// Chromium itself.
func NewBrowserAdapter(baseURL, corsProxyPrefix string, opts httpclient.Options) *BrowserAdapter {
	return &BrowserAdapter{
		baseURL:     baseURL,
		proxyPrefix: corsProxyPrefix,
		proxy:       opts.Proxy,
		client:      opts,
		timeout:     60 * time.Second,
		logger:      logger.Get(),
	}
}

// capturedResponse is the document response seen by the hijack router.
type capturedResponse struct {
	status int
	reason string
	body   []byte
	err    error
}

// TargetURL returns the proxied URL the browser navigates to.
func (a *BrowserAdapter) TargetURL(set domain.TrackedSet) (string, error) {
	target, err := BuildQueryURL(a.baseURL, set)
	if err != nil {
		return "", err
	}
	return WrapWithProxy(a.proxyPrefix, target), nil
}

// FetchAvailability navigates to the proxied URL and parses the captured document.
func (a *BrowserAdapter) FetchAvailability(ctx context.Context, set domain.TrackedSet) ([]domain.Availability, error) {
	pageURL, err := a.TargetURL(set)
	if errors.Is(err, domain.ErrInvalidInput) {
		return []domain.Availability{}, nil
	}
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	localProxyAddr, stopProxy, err := a.startProxy(ctx)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}
	defer stopProxy()

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)
	if localProxyAddr != "" {
		l = l.Proxy(localProxyAddr)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("failed to launch browser: %w", err)}
	}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("failed to connect to browser: %w", err)}
	}
	defer a.closeQuietly("close browser", browser.Close)

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("failed to open page: %w", err)}
	}

	router := page.HijackRequests()
	// Stop fails once ctx has expired, so it is logged rather than MustStop'd.
	defer a.closeQuietly("stop hijack router", router.Stop)

	done := make(chan capturedResponse, 1)
	client := a.hijackClient(localProxyAddr)

	router.MustAdd("*", func(h *rod.Hijack) {
		if h.Request.Type() != proto.NetworkResourceTypeDocument {
			h.ContinueRequest(&proto.FetchContinueRequest{})
			return
		}
		if err := h.LoadResponse(client, true); err != nil {
			a.logger.Error("Failed to load response", zap.Error(err))
			select {
			case done <- capturedResponse{err: err}:
			default:
			}
			return
		}
		select {
		case done <- capturedResponse{
			status: h.Response.Payload().ResponseCode,
			reason: h.Response.Payload().ResponsePhrase,
			body:   []byte(h.Response.Body()),
		}:
		default:
		}
	})

	go router.Run()

	a.logger.Debug("Navigating browser", zap.String("url", pageURL))
	if err := page.Navigate(pageURL); err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("failed to navigate: %w", err)}
	}

	select {
	case res := <-done:
		if res.err != nil {
			return nil, &domain.TransportError{Err: res.err}
		}
		return decodeResponse(res.status, res.reason, res.body)
	case <-ctx.Done():
		return nil, &domain.TransportError{Err: fmt.Errorf("timeout waiting for availability response: %w", ctx.Err())}
	}
}

// closeQuietly runs a cleanup step and logs its error.
func (a *BrowserAdapter) closeQuietly(what string, fn func() error) {
	if err := fn(); err != nil {
		a.logger.Warn("Failed to "+what, zap.Error(err))
	}
}

// startProxy starts a local forwarder when the outbound proxy needs credentials.
func (a *BrowserAdapter) startProxy(ctx context.Context) (string, func(), error) {
	noop := func() {}
	if !a.proxy.HasProxy() {
		return "", noop, nil
	}
	if !a.proxy.HasCredentials() {
		return a.proxy.HostPort(), noop, nil
	}

	fwd, err := proxy.NewForwardingProxy(a.proxy.FullURL(), a.allowedHosts()...)
	if err != nil {
		return "", noop, fmt.Errorf("failed to create proxy forwarder: %w", err)
	}
	addr, err := fwd.Start(ctx)
	if err != nil {
		return "", noop, fmt.Errorf("failed to start proxy forwarder: %w", err)
	}
	return addr, func() {
		if err := fwd.Stop(); err != nil {
			a.logger.Warn("Failed to stop proxy forwarder", zap.Error(err))
		}
	}, nil
}

// allowedHosts limits the forwarder to the upstream API and the CORS proxy.
func (a *BrowserAdapter) allowedHosts() []string {
	var hosts []string
	for _, raw := range []string{a.baseURL, a.proxyPrefix} {
		if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
			hosts = append(hosts, u.Hostname())
		}
	}
	return hosts
}

// hijackClient builds the client for hijacked requests, routed through the
// local forwarder or proxy when one is in use.
func (a *BrowserAdapter) hijackClient(localProxyAddr string) *http.Client {
	opts := a.client
	opts.Proxy = proxy.Settings{}
	opts.ProxyURL = localProxyAddr
	return httpclient.NewClient(opts)
}
