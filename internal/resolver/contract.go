package resolver

import (
	"context"

	"github.com/glowbook/selection-engine/internal/domain"
)

// OverrideRepository доступ к персональным настройкам пары услуга+мастер
type OverrideRepository interface {
	GetByServiceAndProfessional(ctx context.Context, serviceID, professionalID string) (*domain.StaffOverride, error)
}

// CatalogClient клиент каталога салона
type CatalogClient interface {
	GetService(ctx context.Context, salonID, serviceID string) (map[string]interface{}, error)
	GetSalonOverride(ctx context.Context, salonID, serviceID string) (map[string]interface{}, error)
}

// MetricsRecorder счётчики попаданий по уровням каскада
type MetricsRecorder interface {
	IncResolverTierHit(tier string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
