package complete_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/internal/infra/storage/sessionstate"
	appointmentsClient "github.com/glowbook/selection-engine/internal/integrations/appointments"
	"github.com/glowbook/selection-engine/pkg/ptr"
)

// UseCase use case завершения бронирования после успешного callback платежа
type UseCase struct {
	salonID      string
	store        SelectionStore
	resolver     EffectiveResolver
	payments     PendingPayments
	completed    CompletedRepository
	appointments AppointmentsClient
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonID string,
	store SelectionStore,
	resolver EffectiveResolver,
	payments PendingPayments,
	completed CompletedRepository,
	appointments AppointmentsClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonID:      salonID,
		store:        store,
		resolver:     resolver,
		payments:     payments,
		completed:    completed,
		appointments: appointments,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет завершение бронирования.
// Снимок полностью разрешенных данных записывается в одной сериализуемой
// транзакции с очисткой долговечного уровня выбора: после завершения
// не остается выбора, который можно было бы забронировать повторно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteBooking: session=%s, correlation=%s", req.SessionID, req.CorrelationID)

	// 1. Валидация входных данных
	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}
	if req.CorrelationID == "" {
		return nil, fmt.Errorf("%w: correlationID is required", ErrInvalidInput)
	}

	// 2. Сверяем callback с ожидаемым платежом сессии
	pending, err := uc.payments.GetPendingPayment(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionstate.ErrRecordNotFound) {
			uc.logger.Warn("CompleteBooking: no pending payment for session=%s", req.SessionID)
			return nil, ErrUnknownPayment
		}
		uc.logger.Error("CompleteBooking: failed to get pending payment: %v", err)
		return nil, fmt.Errorf("%w: failed to get pending payment: %v", ErrInternal, err)
	}
	if pending.CorrelationID != req.CorrelationID {
		uc.logger.Warn("CompleteBooking: correlation mismatch, expected=%s got=%s",
			pending.CorrelationID, req.CorrelationID)
		return nil, ErrUnknownPayment
	}

	// 3. Читаем выбор и проверяем его полноту
	selection, err := uc.store.Selection(ctx, req.SessionID)
	if err != nil {
		uc.logger.Error("CompleteBooking: failed to read selection: %v", err)
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}

	switch {
	case !selection.HasServices():
		return nil, ErrNoServiceSelected
	case !selection.HasProfessional():
		return nil, ErrNoProfessionalSelected
	case !selection.HasDateTime():
		return nil, ErrNoSlotSelected
	}

	// 4. Разрешаем каждую услугу каскадом, цены должны быть известны
	professionalID := ptr.Ptr(selection.Professional.ID)

	serviceNames := make([]string, 0, len(selection.Services))
	totalPrice := 0.0
	totalDuration := 0

	for _, svc := range selection.Services {
		effective := uc.resolver.ResolveEffective(ctx, req.SessionID, svc.ID, professionalID)
		if effective.Price == nil {
			uc.logger.Warn("CompleteBooking: unresolved price, service=%s", svc.ID)
			return nil, ErrPriceUnresolved
		}

		name := effective.Name
		if name == "" {
			name = svc.Name
		}

		serviceNames = append(serviceNames, name)
		totalPrice += *effective.Price
		totalDuration += effective.EffectiveDurationMinutes()
	}

	// 5. Создаем запись в сервисе записей до транзакции:
	// внешний вызов не должен держать сериализуемую транзакцию открытой
	appointment, err := uc.appointments.CreateAppointment(ctx, &appointmentsClient.CreateAppointmentRequest{
		CorrelationID:    req.CorrelationID,
		SalonID:          uc.salonID,
		ServiceIDs:       selection.ServiceIDs(),
		ServiceNames:     serviceNames,
		DurationMinutes:  totalDuration,
		TotalPrice:       totalPrice,
		ProfessionalID:   selection.Professional.ID,
		ProfessionalName: selection.Professional.Name,
		Date:             selection.DateTime.Date,
		StartTime:        selection.DateTime.StartTime.String(),
	})
	if err != nil {
		if errors.Is(err, appointmentsClient.ErrConflict) {
			uc.logger.Warn("CompleteBooking: slot conflict, session=%s", req.SessionID)
			return nil, ErrSlotConflict
		}
		uc.logger.Error("CompleteBooking: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	// 6. Снимок и очистка выбора атомарно
	snapshot := &domain.CompletedBooking{
		SessionID:        req.SessionID,
		CorrelationID:    req.CorrelationID,
		SalonID:          uc.salonID,
		ServiceIDs:       selection.ServiceIDs(),
		ServiceNames:     serviceNames,
		DurationMinutes:  totalDuration,
		TotalPrice:       totalPrice,
		DepositAmount:    pending.Amount,
		ProfessionalID:   selection.Professional.ID,
		ProfessionalName: selection.Professional.Name,
		Date:             selection.DateTime.Date,
		StartTime:        selection.DateTime.StartTime,
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := uc.completed.Create(txCtx, snapshot); err != nil {
			return fmt.Errorf("%w: failed to create snapshot: %v", ErrInternal, err)
		}
		if err := uc.store.Clear(txCtx, req.SessionID); err != nil {
			return fmt.Errorf("%w: failed to clear selection: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("CompleteBooking: transaction failed: %v", err)
		return nil, err
	}

	// 7. Сессия завершила попытку, кэши ей больше не нужны
	uc.resolver.DropSession(req.SessionID)
	if err := uc.payments.DeletePendingPayment(ctx, req.SessionID); err != nil {
		uc.logger.Warn("CompleteBooking: failed to delete pending payment: %v", err)
	}

	uc.logger.Info("CompleteBooking: booking id=%d, appointment=%s", snapshot.ID, appointment.AppointmentID)

	return &Response{
		BookingID:        snapshot.ID,
		AppointmentID:    appointment.AppointmentID,
		ServiceNames:     snapshot.ServiceNames,
		DurationMinutes:  snapshot.DurationMinutes,
		TotalPrice:       snapshot.TotalPrice,
		DepositAmount:    snapshot.DepositAmount,
		ProfessionalName: snapshot.ProfessionalName,
		Date:             snapshot.Date,
		StartTime:        snapshot.StartTime,
		CreatedAt:        snapshot.CreatedAt,
	}, nil
}
