package complete_booking

import (
	"context"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/internal/infra/storage/sessionstate"
	"github.com/glowbook/selection-engine/internal/integrations/appointments"
)

// SelectionStore доступ к выбору сессии
type SelectionStore interface {
	Selection(ctx context.Context, sessionID string) (*domain.Selection, error)
	Clear(ctx context.Context, sessionID string) error
}

// EffectiveResolver вычисляет действующие цену и длительность услуг
type EffectiveResolver interface {
	ResolveEffective(ctx context.Context, sessionID, serviceID string, professionalID *string) *domain.EffectiveService
	DropSession(sessionID string)
}

// PendingPayments доступ к записи ожидаемого платежа сессии
type PendingPayments interface {
	GetPendingPayment(ctx context.Context, sessionID string) (*sessionstate.PendingPayment, error)
	DeletePendingPayment(ctx context.Context, sessionID string) error
}

// CompletedRepository репозиторий снимков завершенных бронирований
type CompletedRepository interface {
	Create(ctx context.Context, b *domain.CompletedBooking) (*domain.CompletedBooking, error)
}

// AppointmentsClient клиент сервиса записей
type AppointmentsClient interface {
	CreateAppointment(ctx context.Context, req *appointments.CreateAppointmentRequest) (*appointments.CreateAppointmentResponse, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
