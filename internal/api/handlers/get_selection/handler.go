package get_selection

import (
	"net/http"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/api/middleware"
)

type Handler struct {
	service WizardService
	logger  Logger
}

func NewHandler(service WizardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/selection
// Query params: hydrate (optional) - асинхронно прогреть рабочую копию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	if r.URL.Query().Get("hydrate") == "true" {
		h.service.HydrateSession(r.Context(), sessionID)
	}

	result, err := h.service.Selection(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("GET /selection - Failed to read selection: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /selection - Selection fetched: session=%s, services=%d", sessionID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
