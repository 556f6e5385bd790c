package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/api/middleware"
	getAvailableSlots "github.com/glowbook/selection-engine/internal/usecase/get_available_slots"
)

const (
	msgMissingProfessionalID = "ID мастера обязателен"
	msgInvalidDays           = "некорректное значение days"
	msgProfessionalNotFound  = "мастер не найден"
	msgInvalidInput          = "некорректные входные данные"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/slots
// Query params: days (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	professionalID := vars["professionalId"]
	if professionalID == "" {
		h.logger.Warn("GET /professionals/{id}/slots - Missing professional ID")
		handlers.RespondBadRequest(w, msgMissingProfessionalID)
		return
	}

	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 0 {
			h.logger.Warn("GET /professionals/{id}/slots - Invalid days: %q", daysStr)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		SessionID:      middleware.SessionID(r.Context()),
		ProfessionalID: professionalID,
		DaysAhead:      days,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrProfessionalNotFound):
			h.logger.Warn("GET /professionals/{id}/slots - Professional not found: professional_id=%s", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /professionals/{id}/slots - Failed to get slots: professional_id=%s, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/slots - Slots generated: professional_id=%s, days=%d", professionalID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
