package select_service

import (
	"errors"
	"net/http"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/api/middleware"
	"github.com/glowbook/selection-engine/internal/service/wizard"
)

const (
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidService  = "непригодные данные услуги"
	msgTooManyServices = "превышен лимит услуг в одном выборе"
	msgPaymentPending  = "выбор нельзя менять во время ожидания платежа"
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

// Handle POST /api/v1/selection/services
// Тело запроса: сырой payload услуги в любом из поддерживаемых форматов,
// нормализация происходит на стороне движка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	var raw map[string]interface{}
	if err := handlers.DecodeJSON(r, &raw); err != nil {
		h.logger.Warn("POST /selection/services - Invalid body: session=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.SelectService(r.Context(), sessionID, raw)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrInvalidServicePayload):
			h.logger.Warn("POST /selection/services - Unusable service payload: session=%s", sessionID)
			handlers.RespondUnprocessable(w, msgInvalidService)

		case errors.Is(err, wizard.ErrTooManyServices):
			h.logger.Warn("POST /selection/services - Service limit reached: session=%s", sessionID)
			handlers.RespondBadRequest(w, msgTooManyServices)

		case errors.Is(err, wizard.ErrPaymentPending):
			h.logger.Warn("POST /selection/services - Payment pending: session=%s", sessionID)
			handlers.RespondConflict(w, msgPaymentPending)

		default:
			h.logger.Error("POST /selection/services - Failed to select service: session=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /selection/services - Selection updated: session=%s, services=%d", sessionID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
