package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glowbook/selection-engine/internal/domain"
	rosterClient "github.com/glowbook/selection-engine/internal/integrations/roster"
	"github.com/glowbook/selection-engine/internal/normalize"
	"github.com/glowbook/selection-engine/pkg/ptr"
	"github.com/glowbook/selection-engine/pkg/types"
)

// UseCase use case генерации доступных слотов мастера
type UseCase struct {
	roster           RosterClient
	selection        SelectionReader
	resolver         EffectiveResolver
	timeProvider     TimeProvider
	defaultDaysAhead int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roster RosterClient,
	selection SelectionReader,
	resolver EffectiveResolver,
	defaultDaysAhead int,
	logger Logger,
) *UseCase {
	return &UseCase{
		roster:           roster,
		selection:        selection,
		resolver:         resolver,
		timeProvider:     &RealTimeProvider{},
		defaultDaysAhead: defaultDaysAhead,
		logger:           logger,
	}
}

// Execute выполняет use case генерации слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: session=%s, professional=%s, days=%d",
		req.SessionID, req.ProfessionalID, req.DaysAhead)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	daysAhead := req.DaysAhead
	if daysAhead == 0 {
		daysAhead = uc.defaultDaysAhead
	}

	// 2. Получаем и нормализуем мастера
	raw, err := uc.roster.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, rosterClient.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%s not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	professional := normalize.NormalizeProfessional(raw)
	if professional == nil {
		uc.logger.Warn("GetAvailableSlots: unusable professional payload, id=%s", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	// 3. Суммарная длительность текущего выбора услуг
	services, err := uc.selection.GetServices(ctx, req.SessionID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to read selected services: %v", err)
		return nil, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}

	aggregate := uc.resolver.AggregateDurationMinutes(ctx, req.SessionID, services, ptr.Ptr(professional.ID))

	// 4. Генерируем дни начиная с сегодняшнего, первый день раскрыт
	now := uc.timeProvider.Now()
	days := make([]domain.Day, 0, daysAhead)
	for i := 0; i < daysAhead; i++ {
		date := now.AddDate(0, 0, i)

		slots, err := generateDaySlots(professional, date, aggregate, now)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for %s: %v",
				date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		days = append(days, domain.Day{
			Date:     date,
			Expanded: i == 0,
			Slots:    slots,
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d days for professional=%s, aggregate=%d min",
		len(days), professional.ID, aggregate)

	return &Response{
		ProfessionalID:           professional.ID,
		AggregateDurationMinutes: aggregate,
		Days:                     days,
	}, nil
}

// IsSlotAvailable проверяет конкретный старт на конкретную дату перед тем,
// как принять его в выбор. Занятость считается теми же правилами, что и
// при генерации списка слотов
func (uc *UseCase) IsSlotAvailable(ctx context.Context, sessionID, professionalID, date string, start types.TimeString) (bool, error) {
	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return false, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	raw, err := uc.roster.GetProfessional(ctx, professionalID)
	if err != nil {
		if errors.Is(err, rosterClient.ErrProfessionalNotFound) {
			return false, ErrProfessionalNotFound
		}
		return false, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	professional := normalize.NormalizeProfessional(raw)
	if professional == nil {
		return false, ErrProfessionalNotFound
	}

	services, err := uc.selection.GetServices(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("%w: failed to read selection: %v", ErrInternal, err)
	}
	aggregate := uc.resolver.AggregateDurationMinutes(ctx, sessionID, services, ptr.Ptr(professional.ID))

	now := uc.timeProvider.Now()
	slots, err := generateDaySlots(professional, day, aggregate, now)
	if err != nil {
		return false, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	for _, slot := range slots {
		if slot.StartTime == start {
			return slot.Available, nil
		}
	}
	return false, nil
}
