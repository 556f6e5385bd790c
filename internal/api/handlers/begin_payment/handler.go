package begin_payment

import (
	"errors"
	"net/http"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/api/middleware"
	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/internal/service/wizard"
)

const (
	msgServiceNotSelected      = "сначала выберите услугу"
	msgProfessionalNotSelected = "сначала выберите мастера"
	msgSlotNotSelected         = "сначала выберите дату и время"
	msgPriceUnresolved         = "цена услуги еще не известна, оплата невозможна"
	msgPaymentPending          = "платеж уже ожидается"
	msgPaymentGateway          = "платежный шлюз недоступен, попробуйте позже"
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

// redirectResponse ответ с перенаправлением на более ранний шаг мастера
type redirectResponse struct {
	handlers.ErrorResponse
	RedirectTo domain.WizardStep `json:"redirectTo"`
}

// Handle POST /api/v1/wizard/payment
// Инициирует прием депозита за полный выбор
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	result, err := h.service.BeginPayment(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrServiceNotSelected):
			handlers.RespondJSON(w, http.StatusConflict, redirectResponse{
				ErrorResponse: handlers.ErrorResponse{Code: http.StatusConflict, Message: msgServiceNotSelected},
				RedirectTo:    domain.StepServiceSelection,
			})

		case errors.Is(err, wizard.ErrProfessionalNotSelected):
			handlers.RespondJSON(w, http.StatusConflict, redirectResponse{
				ErrorResponse: handlers.ErrorResponse{Code: http.StatusConflict, Message: msgProfessionalNotSelected},
				RedirectTo:    domain.StepProfessionalSelection,
			})

		case errors.Is(err, wizard.ErrSlotNotSelected):
			handlers.RespondJSON(w, http.StatusConflict, redirectResponse{
				ErrorResponse: handlers.ErrorResponse{Code: http.StatusConflict, Message: msgSlotNotSelected},
				RedirectTo:    domain.StepSlotSelection,
			})

		case errors.Is(err, wizard.ErrPriceUnresolved):
			h.logger.Warn("POST /wizard/payment - Price unresolved: session=%s", sessionID)
			handlers.RespondUnprocessable(w, msgPriceUnresolved)

		case errors.Is(err, wizard.ErrPaymentPending):
			h.logger.Warn("POST /wizard/payment - Payment already pending: session=%s", sessionID)
			handlers.RespondConflict(w, msgPaymentPending)

		case errors.Is(err, wizard.ErrPaymentGateway):
			h.logger.Error("POST /wizard/payment - Gateway error: session=%s, error=%v", sessionID, err)
			handlers.RespondJSON(w, http.StatusBadGateway, handlers.ErrorResponse{
				Code:    http.StatusBadGateway,
				Message: msgPaymentGateway,
			})

		default:
			h.logger.Error("POST /wizard/payment - Failed to begin payment: session=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizard/payment - Payment initiated: session=%s, correlation=%s", sessionID, result.CorrelationID)
	handlers.RespondJSON(w, http.StatusAccepted, result)
}
