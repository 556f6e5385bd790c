package wizard

import (
	"context"
	"time"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/internal/infra/storage/sessionstate"
	"github.com/glowbook/selection-engine/internal/integrations/payments"
	"github.com/glowbook/selection-engine/pkg/types"
)

// SelectionStore доступ к выбору сессии поверх уровней хранения
type SelectionStore interface {
	SetServices(ctx context.Context, sessionID string, services []domain.Service) error
	GetServices(ctx context.Context, sessionID string) ([]domain.Service, error)
	SetProfessional(ctx context.Context, sessionID string, professional *domain.Professional) error
	GetProfessional(ctx context.Context, sessionID string) (*domain.Professional, error)
	SetDateTime(ctx context.Context, sessionID string, value *domain.SelectedDateTime) error
	ClearDateTime(ctx context.Context, sessionID string) error
	Selection(ctx context.Context, sessionID string) (*domain.Selection, error)
	Clear(ctx context.Context, sessionID string) error
	Hydrate(ctx context.Context, sessionID string)
}

// EffectiveResolver вычисляет действующие цену и длительность услуг
type EffectiveResolver interface {
	ResolveEffective(ctx context.Context, sessionID, serviceID string, professionalID *string) *domain.EffectiveService
	DropSession(sessionID string)
}

// PendingPayments доступ к записи ожидаемого платежа сессии
type PendingPayments interface {
	SetPendingPayment(ctx context.Context, sessionID string, payment *sessionstate.PendingPayment, ttl time.Duration) error
	GetPendingPayment(ctx context.Context, sessionID string) (*sessionstate.PendingPayment, error)
	DeletePendingPayment(ctx context.Context, sessionID string) error
}

// PaymentsClient клиент платежного шлюза
type PaymentsClient interface {
	RequestDeposit(ctx context.Context, req *payments.DepositRequest) error
}

// AvailabilityChecker проверка конкретного слота перед принятием в выбор
type AvailabilityChecker interface {
	IsSlotAvailable(ctx context.Context, sessionID, professionalID, date string, start types.TimeString) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
