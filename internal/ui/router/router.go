// Package router sets up HTTP routes for the UI server.
package router

import (
	"github.com/go-chi/chi/v5"

	homeFeature "github.com/leapstack-labs/assetops/internal/ui/features/home"
	sectionsFeature "github.com/leapstack-labs/assetops/internal/ui/features/sections"
	"github.com/leapstack-labs/assetops/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server. A non-nil reloader
// mounts the dev mode reload endpoints.
func SetupRoutes(router chi.Router, deps sectionsFeature.Deps, reloader *Reloader) error {
	// Hot reload endpoint for dev mode
	if reloader != nil {
		reloader.Mount(router)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router); err != nil {
		return err
	}

	if err := sectionsFeature.SetupRoutes(router, deps); err != nil {
		return err
	}

	return nil
}
