package select_professional

import (
	"errors"
	"net/http"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/api/middleware"
	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/internal/service/wizard"
)

const (
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidProfessional = "непригодные данные мастера"
	msgServiceNotSelected  = "сначала выберите услугу"
	msgPaymentPending      = "выбор нельзя менять во время ожидания платежа"
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

// Handle POST /api/v1/selection/professional
// Тело запроса: сырой payload мастера, нормализация на стороне движка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	var raw map[string]interface{}
	if err := handlers.DecodeJSON(r, &raw); err != nil {
		h.logger.Warn("POST /selection/professional - Invalid body: session=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.SelectProfessional(r.Context(), sessionID, raw)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrServiceNotSelected):
			// Мастер без услуги не имеет смысла, страницу возвращаем на шаг услуг
			h.logger.Warn("POST /selection/professional - No service selected: session=%s", sessionID)
			handlers.RespondJSON(w, http.StatusConflict, redirectResponse{
				ErrorResponse: handlers.ErrorResponse{Code: http.StatusConflict, Message: msgServiceNotSelected},
				RedirectTo:    domain.StepServiceSelection,
			})

		case errors.Is(err, wizard.ErrInvalidProfessionalPayload):
			h.logger.Warn("POST /selection/professional - Unusable professional payload: session=%s", sessionID)
			handlers.RespondUnprocessable(w, msgInvalidProfessional)

		case errors.Is(err, wizard.ErrPaymentPending):
			h.logger.Warn("POST /selection/professional - Payment pending: session=%s", sessionID)
			handlers.RespondConflict(w, msgPaymentPending)

		default:
			h.logger.Error("POST /selection/professional - Failed to select professional: session=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /selection/professional - Professional selected: session=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
