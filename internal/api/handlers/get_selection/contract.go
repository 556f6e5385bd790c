package get_selection

import (
	"context"

	"github.com/glowbook/selection-engine/internal/service/wizard/models"
)

type WizardService interface {
	Selection(ctx context.Context, sessionID string) (*models.SelectionResponse, error)
	HydrateSession(ctx context.Context, sessionID string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
