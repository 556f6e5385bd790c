package deselect_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/api/middleware"
	"github.com/glowbook/selection-engine/internal/service/wizard"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgPaymentPending   = "выбор нельзя менять во время ожидания платежа"
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

// Handle DELETE /api/v1/selection/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	serviceID := mux.Vars(r)["serviceId"]
	if serviceID == "" {
		h.logger.Warn("DELETE /selection/services/{id} - Missing service ID: session=%s", sessionID)
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	result, err := h.service.DeselectService(r.Context(), sessionID, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrPaymentPending):
			h.logger.Warn("DELETE /selection/services/{id} - Payment pending: session=%s", sessionID)
			handlers.RespondConflict(w, msgPaymentPending)

		default:
			h.logger.Error("DELETE /selection/services/{id} - Failed to deselect: session=%s, service_id=%s, error=%v",
				sessionID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /selection/services/{id} - Selection updated: session=%s, services=%d", sessionID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
