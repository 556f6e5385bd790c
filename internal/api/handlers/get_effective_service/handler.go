package get_effective_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/api/middleware"
	"github.com/glowbook/selection-engine/internal/service/wizard"
)

const msgMissingServiceID = "ID услуги обязателен"

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

// Handle GET /api/v1/services/{serviceId}/effective
// Возвращает действующие цену и длительность услуги после каскада.
// Каскад не падает: при деградации источников возвращается заглушка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	serviceID := mux.Vars(r)["serviceId"]
	if serviceID == "" {
		h.logger.Warn("GET /services/{id}/effective - Missing service ID: session=%s", sessionID)
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	result, err := h.service.EffectiveService(r.Context(), sessionID, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/effective - Invalid input: session=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgMissingServiceID)

		default:
			h.logger.Error("GET /services/{id}/effective - Failed to resolve: session=%s, service_id=%s, error=%v",
				sessionID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/effective - Resolved: session=%s, service_id=%s, source=%s",
		sessionID, serviceID, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
