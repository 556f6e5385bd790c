package upsert_override

import (
	"context"

	"github.com/glowbook/selection-engine/internal/service/overrides/models"
)

type OverridesService interface {
	Upsert(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
