package payment_callback

import (
	"context"

	completeBooking "github.com/glowbook/selection-engine/internal/usecase/complete_booking"
)

type CompleteBookingUseCase interface {
	Execute(ctx context.Context, req *completeBooking.Request) (*completeBooking.Response, error)
}

type WizardService interface {
	PaymentFailed(ctx context.Context, sessionID, correlationID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
