package delete_override

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/service/overrides"
)

const (
	msgMissingIdentifiers = "ID услуги и ID мастера обязательны"
	msgOverrideNotFound   = "настройка не найдена"
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

// Handle DELETE /api/v1/services/{serviceId}/overrides/{professionalId}
// Пара возвращается к каскаду салона и каталога
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID := vars["serviceId"]
	professionalID := vars["professionalId"]

	if serviceID == "" || professionalID == "" {
		h.logger.Warn("DELETE /services/{id}/overrides/{id} - Missing identifiers")
		handlers.RespondBadRequest(w, msgMissingIdentifiers)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID, professionalID); err != nil {
		switch {
		case errors.Is(err, overrides.ErrOverrideNotFound):
			h.logger.Warn("DELETE /services/{id}/overrides/{id} - Not found: service_id=%s, professional_id=%s",
				serviceID, professionalID)
			handlers.RespondNotFound(w, msgOverrideNotFound)

		default:
			h.logger.Error("DELETE /services/{id}/overrides/{id} - Failed to delete: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /services/{id}/overrides/{id} - Override deleted: service_id=%s, professional_id=%s",
		serviceID, professionalID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
