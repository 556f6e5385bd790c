package select_slot

import (
	"context"

	"github.com/glowbook/selection-engine/internal/service/wizard/models"
	"github.com/glowbook/selection-engine/pkg/types"
)

type WizardService interface {
	SelectSlot(ctx context.Context, sessionID, date string, start types.TimeString) (*models.SelectionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
