package get_effective_service

import (
	"context"

	"github.com/glowbook/selection-engine/internal/service/wizard/models"
)

type WizardService interface {
	EffectiveService(ctx context.Context, sessionID, serviceID string) (*models.EffectiveServiceView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
