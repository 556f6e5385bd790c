package begin_payment

import (
	"context"

	"github.com/glowbook/selection-engine/internal/service/wizard/models"
)

type WizardService interface {
	BeginPayment(ctx context.Context, sessionID string) (*models.BeginPaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
