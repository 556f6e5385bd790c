package select_slot

import (
	"errors"
	"net/http"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/api/middleware"
	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/internal/service/wizard"
	"github.com/glowbook/selection-engine/pkg/types"
)

const (
	msgInvalidBody             = "некорректное тело запроса"
	msgInvalidInput            = "некорректные дата или время"
	msgServiceNotSelected      = "сначала выберите услугу"
	msgProfessionalNotSelected = "сначала выберите мастера"
	msgSlotUnavailable         = "слот недоступен"
	msgPaymentPending          = "выбор нельзя менять во время ожидания платежа"
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

// selectSlotRequest тело запроса на выбор слота
type selectSlotRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD
	StartTime string `json:"startTime"`
}

// redirectResponse ответ с перенаправлением на более ранний шаг мастера
type redirectResponse struct {
	handlers.ErrorResponse
	RedirectTo domain.WizardStep `json:"redirectTo"`
}

// Handle POST /api/v1/selection/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	var req selectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /selection/slot - Invalid body: session=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.SelectSlot(r.Context(), sessionID, req.Date, types.TimeString(req.StartTime))
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrServiceNotSelected):
			h.logger.Warn("POST /selection/slot - No service selected: session=%s", sessionID)
			handlers.RespondJSON(w, http.StatusConflict, redirectResponse{
				ErrorResponse: handlers.ErrorResponse{Code: http.StatusConflict, Message: msgServiceNotSelected},
				RedirectTo:    domain.StepServiceSelection,
			})

		case errors.Is(err, wizard.ErrProfessionalNotSelected):
			h.logger.Warn("POST /selection/slot - No professional selected: session=%s", sessionID)
			handlers.RespondJSON(w, http.StatusConflict, redirectResponse{
				ErrorResponse: handlers.ErrorResponse{Code: http.StatusConflict, Message: msgProfessionalNotSelected},
				RedirectTo:    domain.StepProfessionalSelection,
			})

		case errors.Is(err, wizard.ErrSlotUnavailable):
			h.logger.Warn("POST /selection/slot - Slot unavailable: session=%s, date=%s, time=%s",
				sessionID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, wizard.ErrPaymentPending):
			h.logger.Warn("POST /selection/slot - Payment pending: session=%s", sessionID)
			handlers.RespondConflict(w, msgPaymentPending)

		case errors.Is(err, wizard.ErrInvalidInput):
			h.logger.Warn("POST /selection/slot - Invalid input: session=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /selection/slot - Failed to select slot: session=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /selection/slot - Slot selected: session=%s, date=%s, time=%s", sessionID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
