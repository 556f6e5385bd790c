package clear_selection

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

// Handle DELETE /api/v1/selection
// Сбрасывает выбор целиком на обоих уровнях хранения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	if err := h.service.Abandon(r.Context(), sessionID); err != nil {
		h.logger.Error("DELETE /selection - Failed to clear selection: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /selection - Selection cleared: session=%s", sessionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
