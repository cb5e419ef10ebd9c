package proxy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSettings verifies the URL helpers for enabled and disabled proxies.
func TestSettings(t *testing.T) {
	disabled := Settings{Hostname: "proxy.local", Port: 3128}
	assert.False(t, disabled.HasProxy())
	assert.Empty(t, disabled.HostPort())
	assert.Empty(t, disabled.FullURL())

	anon := Settings{Enabled: true, Hostname: "proxy.local", Port: 3128}
	assert.True(t, anon.HasProxy())
	assert.False(t, anon.HasCredentials())
	assert.Equal(t, "http://proxy.local:3128", anon.FullURL())

	auth := Settings{Enabled: true, Hostname: "proxy.local", Port: 3128, Username: "u", Password: "p"}
	assert.True(t, auth.HasCredentials())
	assert.Equal(t, "http://u:p@proxy.local:3128", auth.FullURL())
}

// TestForwardingProxy_Allows verifies host suffix filtering.
func TestForwardingProxy_Allows(t *testing.T) {
	fp, err := NewForwardingProxy("http://u:p@proxy.local:3128", "bestbuy.ca", "corsproxy.io")
	require.NoError(t, err)

	assert.True(t, fp.Allows("www.bestbuy.ca:443"))
	assert.True(t, fp.Allows("corsproxy.io:443"))
	assert.False(t, fp.Allows("example.com:443"))
	assert.False(t, fp.Allows("notbestbuy.ca:443"))

	open, err := NewForwardingProxy("http://proxy.local:3128")
	require.NoError(t, err)
	assert.True(t, open.Allows("example.com:443"))
}

// TestForwardingProxy_InvalidURL verifies that a URL without host is rejected.
func TestForwardingProxy_InvalidURL(t *testing.T) {
	_, err := NewForwardingProxy("not-a-url")
	assert.Error(t, err)
}

// TestForwardingProxy_StartStop verifies the local listener lifecycle.
func TestForwardingProxy_StartStop(t *testing.T) {
	fp, err := NewForwardingProxy("http://u:p@127.0.0.1:1")
	require.NoError(t, err)

	addr, err := fp.Start(context.Background())
	require.NoError(t, err)
	assert.Contains(t, addr, "http://127.0.0.1:")
	assert.Equal(t, fp.LocalAddr(), addr)

	again, err := fp.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	require.NoError(t, fp.Stop())
	assert.NoError(t, fp.Stop())
}
