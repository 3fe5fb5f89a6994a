package handler

import (
	"net/http"

	"github.com/joyva20/ecommerce-api/internal/dashboard"

	"github.com/rs/zerolog"
)

// DashboardHandler serves the admin dashboard read model.
type DashboardHandler struct {
	service dashboard.Service
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service dashboard.Service, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Summary handles GET /api/dashboard/summary (admin).
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"summary": summary})
}
