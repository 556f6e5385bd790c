package payment_callback

import (
	"errors"
	"net/http"

	"github.com/glowbook/selection-engine/internal/api/handlers"
	"github.com/glowbook/selection-engine/internal/service/wizard"
	completeBooking "github.com/glowbook/selection-engine/internal/usecase/complete_booking"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"

	msgInvalidBody     = "некорректное тело запроса"
	msgUnknownPayment  = "платеж не найден"
	msgIncompleteState = "выбор неполон, бронирование невозможно"
	msgSlotConflict    = "слот уже занят"
)

type Handler struct {
	useCase CompleteBookingUseCase
	service WizardService
	logger  Logger
}

func NewHandler(useCase CompleteBookingUseCase, service WizardService, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		service: service,
		logger:  logger,
	}
}

// callbackRequest тело callback платежного шлюза
type callbackRequest struct {
	SessionID     string `json:"sessionId"`
	CorrelationID string `json:"correlationId"`
	Status        string `json:"status"`
}

// Handle POST /api/v1/payments/callback
// Вызывается платежным шлюзом, сессия передается в теле
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req callbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/callback - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	if req.SessionID == "" || req.CorrelationID == "" {
		h.logger.Warn("POST /payments/callback - Missing identifiers")
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	switch req.Status {
	case statusSuccess:
		h.handleSuccess(w, r, &req)
	case statusFailure:
		h.handleFailure(w, r, &req)
	default:
		h.logger.Warn("POST /payments/callback - Unknown status %q", req.Status)
		handlers.RespondBadRequest(w, msgInvalidBody)
	}
}

func (h *Handler) handleSuccess(w http.ResponseWriter, r *http.Request, req *callbackRequest) {
	result, err := h.useCase.Execute(r.Context(), &completeBooking.Request{
		SessionID:     req.SessionID,
		CorrelationID: req.CorrelationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeBooking.ErrUnknownPayment):
			h.logger.Warn("POST /payments/callback - Unknown payment: session=%s, correlation=%s",
				req.SessionID, req.CorrelationID)
			handlers.RespondNotFound(w, msgUnknownPayment)

		case errors.Is(err, completeBooking.ErrNoServiceSelected),
			errors.Is(err, completeBooking.ErrNoProfessionalSelected),
			errors.Is(err, completeBooking.ErrNoSlotSelected),
			errors.Is(err, completeBooking.ErrPriceUnresolved):
			h.logger.Warn("POST /payments/callback - Incomplete selection: session=%s, error=%v", req.SessionID, err)
			handlers.RespondUnprocessable(w, msgIncompleteState)

		case errors.Is(err, completeBooking.ErrSlotConflict):
			h.logger.Warn("POST /payments/callback - Slot conflict: session=%s", req.SessionID)
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("POST /payments/callback - Failed to complete booking: session=%s, error=%v",
				req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/callback - Booking completed: session=%s, booking_id=%d",
		req.SessionID, result.BookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleFailure(w http.ResponseWriter, r *http.Request, req *callbackRequest) {
	if err := h.service.PaymentFailed(r.Context(), req.SessionID, req.CorrelationID); err != nil {
		switch {
		case errors.Is(err, wizard.ErrUnknownPayment):
			h.logger.Warn("POST /payments/callback - Unknown payment on failure: session=%s, correlation=%s",
				req.SessionID, req.CorrelationID)
			handlers.RespondNotFound(w, msgUnknownPayment)

		default:
			h.logger.Error("POST /payments/callback - Failed to handle failure: session=%s, error=%v",
				req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Выбор сохранен, мастер вернулся на шаг слота
	h.logger.Info("POST /payments/callback - Payment failure handled: session=%s", req.SessionID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
