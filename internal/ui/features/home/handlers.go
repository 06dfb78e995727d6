package home

import (
	"net/http"

	"github.com/leapstack-labs/assetops/internal/section"
	"github.com/leapstack-labs/assetops/internal/ui/features/common"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	landing string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers() *Handlers {
	return &Handlers{landing: common.SectionPath(section.Default().Key)}
}

// HomePage sends the browser to the first section.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.landing, http.StatusFound)
}
