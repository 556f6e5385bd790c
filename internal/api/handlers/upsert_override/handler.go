package upsert_override

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/service/overrides"
	"github.com/glowbook/selection-engine/internal/service/overrides/models"
)

const (
	msgInvalidBody  = "некорректное тело запроса"
	msgInvalidInput = "некорректные данные настройки"
)

type Handler struct {
	service OverridesService
	logger  Logger
}

func NewHandler(service OverridesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/services/{serviceId}/overrides/{professionalId}
// Повторная запись той же пары перезаписывает значения целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID := vars["serviceId"]
	professionalID := vars["professionalId"]

	var req models.UpsertOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id}/overrides/{id} - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	// Идентификаторы пары берутся из URL, тело их не переопределяет
	req.ServiceID = serviceID
	req.ProfessionalID = professionalID

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, overrides.ErrInvalidInput):
			h.logger.Warn("PUT /services/{id}/overrides/{id} - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /services/{id}/overrides/{id} - Failed to upsert: service_id=%s, professional_id=%s, error=%v",
				serviceID, professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{id}/overrides/{id} - Override saved: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
