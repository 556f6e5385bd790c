package get_overrides

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/service/overrides"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgOverrideNotFound = "настройка не найдена"
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

// Handle GET /api/v1/services/{serviceId}/overrides
// Query params: professionalId (optional) - настройка конкретной пары
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]
	if serviceID == "" {
		h.logger.Warn("GET /services/{id}/overrides - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	professionalID := r.URL.Query().Get("professionalId")

	if professionalID != "" {
		result, err := h.service.Get(r.Context(), serviceID, professionalID)
		if err != nil {
			switch {
			case errors.Is(err, overrides.ErrOverrideNotFound):
				h.logger.Warn("GET /services/{id}/overrides - Not found: service_id=%s, professional_id=%s",
					serviceID, professionalID)
				handlers.RespondNotFound(w, msgOverrideNotFound)

			default:
				h.logger.Error("GET /services/{id}/overrides - Failed to get: service_id=%s, error=%v", serviceID, err)
				handlers.RespondInternalError(w)
			}
			return
		}

		h.logger.Info("GET /services/{id}/overrides - Override fetched: id=%d", result.ID)
		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.service.GetAllByService(r.Context(), serviceID)
	if err != nil {
		h.logger.Error("GET /services/{id}/overrides - Failed to list: service_id=%s, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services/{id}/overrides - Overrides listed: service_id=%s, count=%d",
		serviceID, len(result.Overrides))
	handlers.RespondJSON(w, http.StatusOK, result)
}
