package get_overrides

import (
	"context"

	"github.com/glowbook/selection-engine/internal/service/overrides/models"
)

type OverridesService interface {
	Get(ctx context.Context, serviceID, professionalID string) (*models.OverrideResponse, error)
	GetAllByService(ctx context.Context, serviceID string) (*models.OverrideListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
