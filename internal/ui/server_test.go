package ui

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/assetops/internal/section"
	"github.com/leapstack-labs/assetops/internal/table"
	"github.com/leapstack-labs/assetops/internal/testutil"
	"github.com/leapstack-labs/assetops/internal/ui/features"
	"github.com/leapstack-labs/assetops/internal/ui/features/common"
	"github.com/leapstack-labs/assetops/internal/ui/notifier"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWith(t, Config{})
}

func newTestServerWith(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()

	s := NewServer(Config{
		SecureCookie:   cfg.SecureCookie,
		SessionTTL:     time.Hour,
		MaxUploadBytes: 1 << 20,
		Site:           common.Site{Title: "Asset Operations Dashboard"},
		Logger:         testutil.NewTestLogger(t),
	})
	h, err := s.Handler()
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServer_UploadEditExport(t *testing.T) {
	ts := newTestServer(t)
	alice := newClient(t)

	status, body := get(t, alice, ts.URL+"/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<title>Financial Analysis &amp; Support - Asset Operations Dashboard</title>")

	content := features.WorkbookBytes(t,
		[]any{"Project", "Cash Flow", "RSCR", "DSCR"},
		[]any{"Alpha", 1000, 1.2, 1.5},
		[]any{"Beta", 2500, 1.4, 1.7},
	)
	upload, contentType := features.MultipartUpload(t, "finance.xlsx", content)
	resp, err := alice.Post(ts.URL+"/financial/upload", contentType, upload)
	require.NoError(t, err)
	_ = resp.Body.Close()
	// The client follows the 303 back to the page.
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = alice.Post(ts.URL+"/financial/cells", "application/json",
		strings.NewReader(`{"edit":{"row":1,"col":1,"value":"3000"}}`))
	require.NoError(t, err)
	patch, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(patch), "$4,000")

	status, csv := get(t, alice, ts.URL+"/financial/export.csv")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Project,Cash Flow,RSCR,DSCR\nAlpha,1000,1.2,1.5\nBeta,3000,1.4,1.7\n", csv)

	// A second browser has its own, empty workspace.
	bob := newClient(t)
	status, body = get(t, bob, ts.URL+"/financial")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Upload a financial Excel file to get started.")
	status, _ = get(t, bob, ts.URL+"/financial/export.csv")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_SessionCookieSecureFlag(t *testing.T) {
	tests := []struct {
		name   string
		secure bool
	}{
		{name: "plain http default", secure: false},
		{name: "behind https proxy", secure: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServerWith(t, Config{SecureCookie: tt.secure})

			resp, err := http.Get(ts.URL + "/financial")
			require.NoError(t, err)
			_ = resp.Body.Close()

			cookies := resp.Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, common.SessionName, cookies[0].Name)
			assert.Equal(t, tt.secure, cookies[0].Secure)
			assert.True(t, cookies[0].HttpOnly)
		})
	}
}

func TestServer_EvictionClosesOnlyThatSession(t *testing.T) {
	s := NewServer(Config{SessionTTL: 20 * time.Millisecond, Logger: testutil.NewTestLogger(t)})

	s.store.Put("gone", section.Financial, table.New([]string{"Project"}, [][]string{{"Alpha"}}))
	goneTopic := notifier.Topic("gone", string(section.Financial))
	keepTopic := notifier.Topic("keep", string(section.Financial))
	gone := s.notifier.Subscribe(goneTopic)
	keep := s.notifier.Subscribe(keepTopic)
	defer s.notifier.Unsubscribe(goneTopic, gone)
	defer s.notifier.Unsubscribe(keepTopic, keep)

	time.Sleep(40 * time.Millisecond)
	require.Equal(t, 1, s.store.Sweep())

	_, open := <-gone
	assert.False(t, open, "expired session's stream should be closed")
	assert.Empty(t, keep, "other sessions get no ping")
	assert.Equal(t, 1, s.notifier.Listeners())
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	s := NewServer(Config{Logger: testutil.NewTestLogger(t)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestNewServer_Dev(t *testing.T) {
	assert.True(t, NewServer(Config{Dev: true}).IsDev())
	assert.False(t, NewServer(Config{}).IsDev())
}
