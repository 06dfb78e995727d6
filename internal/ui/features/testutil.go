// Package features provides shared test utilities for UI feature tests.
package features

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leapstack-labs/assetops/internal/session"
	"github.com/leapstack-labs/assetops/internal/testutil"
	"github.com/leapstack-labs/assetops/internal/ui/features/common"
	"github.com/leapstack-labs/assetops/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store        *session.Store
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Site         common.Site

	t *testing.T
}

// SetupTestFixture creates an empty table store, a notifier and a cookie store.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	return &TestFixture{
		Store:        session.NewStore(time.Hour, session.WithLogger(testutil.NewTestLogger(t))),
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		Site: common.Site{
			Title:   "Asset Operations Dashboard",
			Caption: "Test caption",
			Footer:  "Test footer",
		},
		t: t,
	}
}

// NewSession returns the cookie of a fresh session and its ID.
func (f *TestFixture) NewSession() (*http.Cookie, string) {
	f.t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	sess, id := common.EnsureSession(f.SessionStore, req)
	require.NoError(f.t, sess.Save(req, rec))

	cookies := rec.Result().Cookies()
	require.NotEmpty(f.t, cookies)
	return cookies[0], id
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// NewTestNotifier creates a notifier for testing.
func NewTestNotifier() *notifier.Notifier {
	return notifier.New()
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

// WorkbookBytes builds an .xlsx file with one sheet holding header and rows.
func WorkbookBytes(t *testing.T, header []any, rows ...[]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// MultipartUpload builds a multipart body with content under the "file" field.
func MultipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}
