package get_wizard_state

import (
	"context"

	"github.com/glowbook/selection-engine/internal/service/wizard/models"
)

type WizardService interface {
	State(ctx context.Context, sessionID string) (*models.WizardStateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
