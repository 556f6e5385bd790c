package overrides

import (
	"context"

	"github.com/glowbook/selection-engine/internal/domain"
)

// OverrideRepository интерфейс репозитория персональных настроек пары услуга+мастер
type OverrideRepository interface {
	Upsert(ctx context.Context, override *domain.StaffOverride) (*domain.StaffOverride, error)
	GetByServiceAndProfessional(ctx context.Context, serviceID, professionalID string) (*domain.StaffOverride, error)
	GetAllByService(ctx context.Context, serviceID string) ([]*domain.StaffOverride, error)
	Delete(ctx context.Context, serviceID, professionalID string) error
}

// EffectiveResolver кэш действующих записей, инвалидируемый при изменении настроек
type EffectiveResolver interface {
	DropAll()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
