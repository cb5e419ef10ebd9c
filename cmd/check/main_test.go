package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RejectsArgs(t *testing.T) {
	rootCmd.SetArgs([]string{"unexpected"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"config-dir", "json", "test-mode"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
}

// runAgainst points the command at an upstream stub and executes it. A nil
// error is exit status 0; any error makes main exit with status 1.
func runAgainst(t *testing.T, status int, body string) (string, error) {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(upstream.Close)

	t.Setenv("BESTBUY_API_URL", upstream.URL)
	t.Setenv("INVENTORY_SKUS", "A")
	t.Setenv("TEST_MODE", "false")
	t.Setenv("EMAIL_USER", "")
	t.Setenv("EMAIL_PASS", "")
	t.Setenv("REDIS_URL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config-dir", t.TempDir(), "--json"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCmd_SoldOutSucceeds(t *testing.T) {
	out, err := runAgainst(t, http.StatusOK, `{"availabilities": [{
		"sku": "A",
		"shipping": {"status": "SoldOutOnline", "purchasable": false},
		"pickup": {"status": "OutOfStock", "purchasable": false, "locations": []}
	}]}`)
	require.NoError(t, err)

	var report struct {
		Checked int  `json:"checked"`
		Items   int  `json:"items"`
		Sent    bool `json:"sent"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Checked)
	assert.Zero(t, report.Items)
	assert.False(t, report.Sent)
}

func TestRootCmd_UpstreamStatusFails(t *testing.T) {
	_, err := runAgainst(t, http.StatusServiceUnavailable, `{"availabilities": []}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error fetching inventory")
	assert.Contains(t, err.Error(), "503")
}

func TestRootCmd_UnexpectedBodyFails(t *testing.T) {
	_, err := runAgainst(t, http.StatusOK, `{"foo": 1}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error fetching inventory")
}
