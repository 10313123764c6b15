package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paystack/paystack-cli/internal/cache"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestNormalizeVersion(t *testing.T) {
	assert.Equal(t, "v1.2.3", normalizeVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", normalizeVersion("v1.2.3"))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		status     int
		body       string
		wantNil    bool
		wantUpdate bool
		wantLatest string
	}{
		{"update available", "1.0.0", 200, `{"tag_name":"v1.1.0","html_url":"https://example.com/r"}`, false, true, "1.1.0"},
		{"up to date", "v1.1.0", 200, `{"tag_name":"v1.1.0"}`, false, false, "1.1.0"},
		{"current newer", "2.0.0", 200, `{"tag_name":"v1.9.9"}`, false, false, "1.9.9"},
		{"prerelease older", "1.2.0-rc.1", 200, `{"tag_name":"v1.2.0"}`, false, true, "1.2.0"},
		{"invalid current semver", "nightly", 200, `{"tag_name":"v1.0.0"}`, false, false, "1.0.0"},
		{"server error", "1.0.0", 500, `{}`, true, false, ""},
		{"rate limited", "1.0.0", 429, `{}`, true, false, ""},
		{"invalid JSON", "1.0.0", 200, `{bad`, true, false, ""},
		{"empty tag", "1.0.0", 200, `{"tag_name":""}`, true, false, ""},
		{"dev build", "dev", 200, `{"tag_name":"v9.0.0"}`, true, false, ""},
		{"empty version", "", 200, `{"tag_name":"v9.0.0"}`, true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newServer(t, tt.status, tt.body)
			checker := &Checker{URL: server.URL, HTTP: server.Client()}

			result := checker.Check(context.Background(), tt.current)
			if tt.wantNil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, tt.wantUpdate, result.UpdateAvailable)
			assert.Equal(t, tt.wantLatest, result.LatestVersion)
		})
	}
}

func TestCheck_Disabled(t *testing.T) {
	t.Setenv("PAYSTACK_NO_UPDATE_CHECK", "1")
	server, calls := newServer(t, 200, `{"tag_name":"v2.0.0"}`)
	assert.Nil(t, (&Checker{URL: server.URL}).Check(context.Background(), "1.0.0"))
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestCheck_UsesCache(t *testing.T) {
	server, calls := newServer(t, 200, `{"tag_name":"v2.0.0"}`)
	store := cache.NewFileStore(t.TempDir(), "meta", time.Hour)
	checker := &Checker{URL: server.URL, HTTP: server.Client(), Cache: store}

	for range 3 {
		result := checker.Check(context.Background(), "1.0.0")
		require.NotNil(t, result)
		assert.True(t, result.UpdateAvailable)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestCheck_ConnectionError(t *testing.T) {
	checker := &Checker{URL: "http://127.0.0.1:1/releases"}
	assert.Nil(t, checker.Check(context.Background(), "1.0.0"))
}

func TestCheck_ContextCanceled(t *testing.T) {
	server, _ := newServer(t, 200, `{"tag_name":"v2.0.0"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, (&Checker{URL: server.URL}).Check(ctx, "1.0.0"))
}

func TestNewChecker(t *testing.T) {
	c := NewChecker(nil)
	assert.Equal(t, DefaultReleasesURL, c.URL)
	assert.NotNil(t, c.HTTP)
}
