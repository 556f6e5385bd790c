package get_available_slots

import (
	"context"
	"time"

	"github.com/glowbook/selection-engine/internal/domain"
)

// RosterClient интерфейс клиента реестра мастеров
type RosterClient interface {
	GetProfessional(ctx context.Context, professionalID string) (map[string]interface{}, error)
}

// SelectionReader доступ к текущему выбору услуг сессии
type SelectionReader interface {
	GetServices(ctx context.Context, sessionID string) ([]domain.Service, error)
}

// EffectiveResolver вычисляет суммарную действующую длительность выбора
type EffectiveResolver interface {
	AggregateDurationMinutes(ctx context.Context, sessionID string, services []domain.Service, professionalID *string) int
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
