package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/internal/infra/storage/sessionstate"
	paymentsClient "github.com/glowbook/selection-engine/internal/integrations/payments"
	"github.com/glowbook/selection-engine/internal/normalize"
	"github.com/glowbook/selection-engine/internal/service/wizard/models"
	"github.com/glowbook/selection-engine/pkg/ptr"
	"github.com/glowbook/selection-engine/pkg/types"
)

// Service сервис мастера бронирования: пошаговый выбор услуг, мастера
// и слота с охраной порядка шагов и инициированием депозита
type Service struct {
	depositPercent float64
	pendingTTL     time.Duration

	store        SelectionStore
	resolver     EffectiveResolver
	payments     PendingPayments
	gateway      PaymentsClient
	availability AvailabilityChecker
	logger       Logger
}

// NewService создает новый экземпляр сервиса мастера
func NewService(
	depositPercent float64,
	pendingTTL time.Duration,
	store SelectionStore,
	resolver EffectiveResolver,
	payments PendingPayments,
	gateway PaymentsClient,
	availability AvailabilityChecker,
	logger Logger,
) *Service {
	if depositPercent <= 0 {
		depositPercent = domain.DefaultDepositPercent
	}
	return &Service{
		depositPercent: depositPercent,
		pendingTTL:     pendingTTL,
		store:          store,
		resolver:       resolver,
		payments:       payments,
		gateway:        gateway,
		availability:   availability,
		logger:         logger,
	}
}

// HydrateSession асинхронно прогревает рабочую копию выбора сессии
func (s *Service) HydrateSession(ctx context.Context, sessionID string) {
	s.store.Hydrate(ctx, sessionID)
}

// SelectService переключает услугу в выборе: повторный выбор той же
// услуги убирает её из списка. Выбор мастера и слота не затрагивается
func (s *Service) SelectService(ctx context.Context, sessionID string, raw map[string]interface{}) (*models.SelectionResponse, error) {
	s.logger.Info("SelectService: session=%s", sessionID)

	if err := s.ensureNoPendingPayment(ctx, sessionID); err != nil {
		return nil, err
	}

	svc := normalize.NormalizeService(raw)
	if svc == nil {
		s.logger.Warn("SelectService: unusable service payload, session=%s", sessionID)
		return nil, ErrInvalidServicePayload
	}

	services, err := s.store.GetServices(ctx, sessionID)
	if err != nil {
		s.logger.Error("SelectService: failed to read selection: %v", err)
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}

	toggledOff := false
	next := make([]domain.Service, 0, len(services)+1)
	for _, existing := range services {
		if existing.ID == svc.ID {
			toggledOff = true
			continue
		}
		next = append(next, existing)
	}
	if !toggledOff {
		if len(next) >= domain.MaxSelectedServices {
			s.logger.Warn("SelectService: limit reached, session=%s", sessionID)
			return nil, ErrTooManyServices
		}
		next = append(next, *svc)
	}

	if err := s.store.SetServices(ctx, sessionID, next); err != nil {
		s.logger.Error("SelectService: failed to write selection: %v", err)
		return nil, fmt.Errorf("%w: failed to write selection: %v", ErrInternal, err)
	}

	s.logger.Info("SelectService: session=%s, service=%s, selected=%d", sessionID, svc.ID, len(next))
	return s.Selection(ctx, sessionID)
}

// DeselectService убирает услугу из выбора, отсутствующая услуга не ошибка
func (s *Service) DeselectService(ctx context.Context, sessionID, serviceID string) (*models.SelectionResponse, error) {
	s.logger.Info("DeselectService: session=%s, service=%s", sessionID, serviceID)

	if err := s.ensureNoPendingPayment(ctx, sessionID); err != nil {
		return nil, err
	}

	services, err := s.store.GetServices(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}

	next := make([]domain.Service, 0, len(services))
	for _, existing := range services {
		if existing.ID != serviceID {
			next = append(next, existing)
		}
	}

	if err := s.store.SetServices(ctx, sessionID, next); err != nil {
		return nil, fmt.Errorf("%w: failed to write selection: %v", ErrInternal, err)
	}

	return s.Selection(ctx, sessionID)
}

// SelectProfessional записывает выбранного мастера.
// Требует хотя бы одной выбранной услуги; список услуг не перезаписывается
func (s *Service) SelectProfessional(ctx context.Context, sessionID string, raw map[string]interface{}) (*models.SelectionResponse, error) {
	s.logger.Info("SelectProfessional: session=%s", sessionID)

	if err := s.ensureNoPendingPayment(ctx, sessionID); err != nil {
		return nil, err
	}

	services, err := s.store.GetServices(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}
	if len(services) == 0 {
		s.logger.Warn("SelectProfessional: no service selected, session=%s", sessionID)
		return nil, ErrServiceNotSelected
	}

	professional := normalize.NormalizeProfessional(raw)
	if professional == nil {
		s.logger.Warn("SelectProfessional: unusable professional payload, session=%s", sessionID)
		return nil, ErrInvalidProfessionalPayload
	}

	if err := s.store.SetProfessional(ctx, sessionID, professional); err != nil {
		return nil, fmt.Errorf("%w: failed to write selection: %v", ErrInternal, err)
	}

	// Смена мастера меняет каскад, прежние действующие записи недействительны
	s.resolver.DropSession(sessionID)

	// Выбранный слот проверялся по календарю прежнего мастера, сбрасываем его
	if err := s.store.ClearDateTime(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("%w: failed to reset slot: %v", ErrInternal, err)
	}

	s.logger.Info("SelectProfessional: session=%s, professional=%s", sessionID, professional.ID)
	return s.Selection(ctx, sessionID)
}

// SelectSlot записывает выбранные дату и время после проверки доступности
func (s *Service) SelectSlot(ctx context.Context, sessionID, date string, start types.TimeString) (*models.SelectionResponse, error) {
	s.logger.Info("SelectSlot: session=%s, date=%s, time=%s", sessionID, date, start)

	if err := s.ensureNoPendingPayment(ctx, sessionID); err != nil {
		return nil, err
	}

	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	services, err := s.store.GetServices(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}
	if len(services) == 0 {
		return nil, ErrServiceNotSelected
	}

	professional, err := s.store.GetProfessional(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}
	if professional == nil {
		return nil, ErrProfessionalNotSelected
	}

	available, err := s.availability.IsSlotAvailable(ctx, sessionID, professional.ID, date, start)
	if err != nil {
		s.logger.Error("SelectSlot: availability check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
	if !available {
		s.logger.Warn("SelectSlot: slot unavailable, session=%s, date=%s, time=%s", sessionID, date, start)
		return nil, ErrSlotUnavailable
	}

	if err := s.store.SetDateTime(ctx, sessionID, &domain.SelectedDateTime{Date: date, StartTime: start}); err != nil {
		return nil, fmt.Errorf("%w: failed to write selection: %v", ErrInternal, err)
	}

	return s.Selection(ctx, sessionID)
}

// Selection возвращает составной снимок выбора с действующими записями
func (s *Service) Selection(ctx context.Context, sessionID string) (*models.SelectionResponse, error) {
	selection, err := s.store.Selection(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}
	return s.buildSelectionResponse(ctx, sessionID, selection), nil
}

// EffectiveService возвращает действующую запись одной услуги
// с учетом выбранного мастера
func (s *Service) EffectiveService(ctx context.Context, sessionID, serviceID string) (*models.EffectiveServiceView, error) {
	if serviceID == "" {
		return nil, fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	professional, err := s.store.GetProfessional(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}

	var professionalID *string
	if professional != nil {
		professionalID = ptr.Ptr(professional.ID)
	}

	effective := s.resolver.ResolveEffective(ctx, sessionID, serviceID, professionalID)
	view := models.FromEffectiveService(effective)
	return &view, nil
}

// State возвращает выведенное состояние мастера.
// Состояние не хранится отдельно: оно выводится из выбора и ожидаемого
// платежа, поэтому не может разойтись с ними
func (s *Service) State(ctx context.Context, sessionID string) (*models.WizardStateResponse, error) {
	selection, err := s.store.Selection(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}

	pending, err := s.pendingPayment(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state, redirect := deriveState(selection, pending != nil)

	return &models.WizardStateResponse{
		State:      state,
		RedirectTo: redirect,
		Selection:  s.buildSelectionResponse(ctx, sessionID, selection),
	}, nil
}

// BeginPayment инициирует прием депозита за выбранные услуги.
// Требует полного выбора и разрешенных цен: заглушки оплатить нельзя
func (s *Service) BeginPayment(ctx context.Context, sessionID string) (*models.BeginPaymentResponse, error) {
	s.logger.Info("BeginPayment: session=%s", sessionID)

	if err := s.ensureNoPendingPayment(ctx, sessionID); err != nil {
		return nil, err
	}

	selection, err := s.store.Selection(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}
	switch {
	case !selection.HasServices():
		return nil, ErrServiceNotSelected
	case !selection.HasProfessional():
		return nil, ErrProfessionalNotSelected
	case !selection.HasDateTime():
		return nil, ErrSlotNotSelected
	}

	professionalID := ptr.Ptr(selection.Professional.ID)

	totalPrice := 0.0
	depositAmount := 0.0
	for _, svc := range selection.Services {
		effective := s.resolver.ResolveEffective(ctx, sessionID, svc.ID, professionalID)
		if effective.Price == nil {
			s.logger.Warn("BeginPayment: unresolved price, session=%s, service=%s", sessionID, svc.ID)
			return nil, ErrPriceUnresolved
		}
		totalPrice += *effective.Price
		depositAmount += *effective.Price * effective.DepositFraction(s.depositPercent)
	}

	correlationID := uuid.NewString()
	pending := &sessionstate.PendingPayment{
		CorrelationID: correlationID,
		Amount:        depositAmount,
		CreatedAt:     time.Now().Unix(),
	}
	if err := s.payments.SetPendingPayment(ctx, sessionID, pending, s.pendingTTL); err != nil {
		s.logger.Error("BeginPayment: failed to record pending payment: %v", err)
		return nil, fmt.Errorf("%w: failed to record pending payment: %v", ErrInternal, err)
	}

	if err := s.gateway.RequestDeposit(ctx, &paymentsClient.DepositRequest{
		CorrelationID: correlationID,
		Amount:        depositAmount,
	}); err != nil {
		s.logger.Error("BeginPayment: gateway rejected request: %v", err)
		// Платеж не стартовал, ожидание снимается и выбор остается на шаге слота
		if delErr := s.payments.DeletePendingPayment(ctx, sessionID); delErr != nil {
			s.logger.Warn("BeginPayment: failed to delete pending payment: %v", delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	s.logger.Info("BeginPayment: session=%s, correlation=%s, deposit=%.2f", sessionID, correlationID, depositAmount)
	return &models.BeginPaymentResponse{
		CorrelationID: correlationID,
		DepositAmount: depositAmount,
		TotalPrice:    totalPrice,
	}, nil
}

// PaymentFailed обрабатывает callback о неуспешном платеже.
// Выбор сохраняется целиком: мастер возвращается на шаг слота
func (s *Service) PaymentFailed(ctx context.Context, sessionID, correlationID string) error {
	s.logger.Info("PaymentFailed: session=%s, correlation=%s", sessionID, correlationID)

	pending, err := s.pendingPayment(ctx, sessionID)
	if err != nil {
		return err
	}
	if pending == nil || pending.CorrelationID != correlationID {
		s.logger.Warn("PaymentFailed: unknown payment, session=%s, correlation=%s", sessionID, correlationID)
		return ErrUnknownPayment
	}

	if err := s.payments.DeletePendingPayment(ctx, sessionID); err != nil {
		s.logger.Error("PaymentFailed: failed to delete pending payment: %v", err)
		return fmt.Errorf("%w: failed to delete pending payment: %v", ErrInternal, err)
	}
	return nil
}

// Abandon сбрасывает попытку бронирования целиком
func (s *Service) Abandon(ctx context.Context, sessionID string) error {
	s.logger.Info("Abandon: session=%s", sessionID)

	if err := s.store.Clear(ctx, sessionID); err != nil {
		s.logger.Error("Abandon: failed to clear selection: %v", err)
		return fmt.Errorf("%w: failed to clear selection: %v", ErrInternal, err)
	}

	s.resolver.DropSession(sessionID)

	if err := s.payments.DeletePendingPayment(ctx, sessionID); err != nil {
		s.logger.Warn("Abandon: failed to delete pending payment: %v", err)
	}
	return nil
}

// Вспомогательные методы

func (s *Service) buildSelectionResponse(ctx context.Context, sessionID string, selection *domain.Selection) *models.SelectionResponse {
	var professionalID *string
	if selection.HasProfessional() {
		professionalID = ptr.Ptr(selection.Professional.ID)
	}

	views := make([]models.EffectiveServiceView, 0, len(selection.Services))
	aggregate := 0
	totalPrice := 0.0
	priceResolved := len(selection.Services) > 0

	for _, svc := range selection.Services {
		effective := s.resolver.ResolveEffective(ctx, sessionID, svc.ID, professionalID)
		views = append(views, models.FromEffectiveService(effective))
		aggregate += effective.EffectiveDurationMinutes()
		if effective.Price == nil {
			priceResolved = false
		} else {
			totalPrice += *effective.Price
		}
	}

	resp := &models.SelectionResponse{
		Services:                 views,
		AggregateDurationMinutes: aggregate,
	}
	if priceResolved {
		resp.TotalPrice = ptr.Ptr(totalPrice)
	}
	if selection.HasProfessional() {
		resp.Professional = &models.ProfessionalView{
			ID:       selection.Professional.ID,
			Name:     selection.Professional.Name,
			Role:     selection.Professional.Role,
			PhotoURL: selection.Professional.PhotoURL,
		}
	}
	if selection.HasDateTime() {
		resp.DateTime = &models.DateTimeView{
			Date:      selection.DateTime.Date,
			StartTime: selection.DateTime.StartTime,
		}
	}
	return resp
}

// deriveState выводит состояние мастера из выбора и ожидаемого платежа
func deriveState(selection *domain.Selection, paymentPending bool) (domain.WizardState, *domain.WizardStep) {
	if paymentPending {
		return domain.StateAwaitingPayment, nil
	}

	// Слот без услуг или мастера непригоден: страницу возвращаем на
	// недостающий шаг
	if selection.HasDateTime() {
		switch {
		case !selection.HasServices():
			return domain.StateEmpty, ptr.Ptr(domain.StepServiceSelection)
		case !selection.HasProfessional():
			return domain.StateServiceChosen, ptr.Ptr(domain.StepProfessionalSelection)
		default:
			return domain.StateSlotChosen, nil
		}
	}

	if selection.HasProfessional() && !selection.HasServices() {
		return domain.StateEmpty, ptr.Ptr(domain.StepServiceSelection)
	}

	switch {
	case selection.HasProfessional():
		return domain.StateProfessionalChosen, nil
	case selection.HasServices():
		return domain.StateServiceChosen, nil
	default:
		return domain.StateEmpty, nil
	}
}

func (s *Service) pendingPayment(ctx context.Context, sessionID string) (*sessionstate.PendingPayment, error) {
	pending, err := s.payments.GetPendingPayment(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionstate.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("pendingPayment: failed to read pending payment: %v", err)
		return nil, fmt.Errorf("%w: failed to read pending payment: %v", ErrInternal, err)
	}
	return pending, nil
}

func (s *Service) ensureNoPendingPayment(ctx context.Context, sessionID string) error {
	pending, err := s.pendingPayment(ctx, sessionID)
	if err != nil {
		return err
	}
	if pending != nil {
		return ErrPaymentPending
	}
	return nil
}
