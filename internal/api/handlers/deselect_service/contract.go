package deselect_service

import (
	"context"

	"github.com/glowbook/selection-engine/internal/service/wizard/models"
)

type WizardService interface {
	DeselectService(ctx context.Context, sessionID, serviceID string) (*models.SelectionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
