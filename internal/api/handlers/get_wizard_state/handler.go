package get_wizard_state

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

// Handle GET /api/v1/wizard/state
// Состояние выводится из выбора и ожидаемого платежа, отдельно не хранится
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	result, err := h.service.State(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("GET /wizard/state - Failed to derive state: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /wizard/state - State derived: session=%s, state=%s", sessionID, result.State)
	handlers.RespondJSON(w, http.StatusOK, result)
}
