package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/assetops/internal/ui/features"
	sectionsFeature "github.com/leapstack-labs/assetops/internal/ui/features/sections"
)

func setupRouter(t *testing.T, reloader *Reloader) http.Handler {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, sectionsFeature.Deps{
		Store:        fixture.Store,
		SessionStore: fixture.SessionStore,
		Notifier:     fixture.Notifier,
		Site:         fixture.Site,
	}, reloader))
	return r
}

func TestSetupRoutes(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"root redirects", "/", http.StatusFound},
		{"section page", "/operational", http.StatusOK},
		{"unknown section", "/nowhere", http.StatusNotFound},
		{"stylesheet", "/static/app.css", http.StatusOK},
		{"reload not mounted", "/hotreload", http.StatusNotFound},
	}

	h := setupRouter(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestReloader_TriggerReloadsWaitingPage(t *testing.T) {
	rl := NewReloader()
	h := setupRouter(t, rl)

	// Use up the restart reload.
	first := httptest.NewRecorder()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/reload", nil).WithContext(ctx))
	assert.Contains(t, first.Body.String(), "window.location.reload()")

	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reload", nil))
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	hot := httptest.NewRecorder()
	h.ServeHTTP(hot, httptest.NewRequest(http.MethodGet, "/hotreload", nil))
	assert.Equal(t, "OK", hot.Body.String())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reload stream did not finish after trigger")
	}
	assert.Contains(t, rec.Body.String(), "window.location.reload()")
}
