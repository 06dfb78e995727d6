package sections

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/assetops/internal/session"
	"github.com/leapstack-labs/assetops/internal/ui/features/common"
	"github.com/leapstack-labs/assetops/internal/ui/notifier"
)

// Deps holds what the section handlers need from the server.
type Deps struct {
	Store          *session.Store
	SessionStore   sessions.Store
	Notifier       *notifier.Notifier
	Site           common.Site
	MaxUploadBytes int64
	Logger         *slog.Logger
	IsDev          bool
}

// SetupRoutes registers the section routes.
func SetupRoutes(router chi.Router, deps Deps) error {
	handlers := NewHandlers(deps)

	router.Route("/{section}", func(r chi.Router) {
		// Page routes
		r.Get("/", handlers.SectionPage)
		r.Post("/upload", handlers.Upload)

		// Downloads
		r.Get("/export.csv", handlers.ExportCSV)
		r.Get("/chart.svg", handlers.ChartSVG)

		// SSE routes
		r.Get("/updates", handlers.SectionUpdates)
		r.Post("/cells", handlers.EditCellSSE)
		r.Post("/rows", handlers.AddRowSSE)
		r.Delete("/rows/{row}", handlers.DeleteRowSSE)
	})

	return nil
}
