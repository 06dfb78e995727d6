package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"
)

// Reloader tells open dev pages to reload themselves.
type Reloader struct {
	ch   chan struct{}
	once sync.Once
}

// NewReloader creates a Reloader.
func NewReloader() *Reloader {
	return &Reloader{ch: make(chan struct{}, 1)}
}

// Trigger asks one waiting page to reload. Extra triggers coalesce.
func (rl *Reloader) Trigger() {
	select {
	case rl.ch <- struct{}{}:
	default:
	}
}

// Mount registers /reload (SSE, held open by each page) and /hotreload
// (hit by external tooling after a rebuild).
func (rl *Reloader) Mount(router chi.Router) {
	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		// The first page after a restart reloads once to pick up the new binary.
		rl.once.Do(reload)
		select {
		case <-rl.ch:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		rl.Trigger()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
