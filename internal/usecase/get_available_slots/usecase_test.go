package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/selection-engine/internal/domain"
	rosterClient "github.com/glowbook/selection-engine/internal/integrations/roster"
	"github.com/glowbook/selection-engine/pkg/types"
)

type testLogger struct{}

func (testLogger) Info(format string, v ...interface{})  {}
func (testLogger) Warn(format string, v ...interface{})  {}
func (testLogger) Error(format string, v ...interface{}) {}

type fakeRoster struct {
	professionals map[string]map[string]interface{}
	err           error
}

func (f *fakeRoster) GetProfessional(_ context.Context, professionalID string) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	raw, ok := f.professionals[professionalID]
	if !ok {
		return nil, rosterClient.ErrProfessionalNotFound
	}
	return raw, nil
}

type fakeSelection struct {
	services []domain.Service
	err      error
}

func (f *fakeSelection) GetServices(_ context.Context, sessionID string) ([]domain.Service, error) {
	return f.services, f.err
}

type fakeResolver struct {
	aggregate int
}

func (f *fakeResolver) AggregateDurationMinutes(_ context.Context, _ string, services []domain.Service, _ *string) int {
	if len(services) == 0 {
		return domain.DefaultServiceDurationMinutes
	}
	return f.aggregate
}

type stubTimeProvider struct {
	now time.Time
}

func (s *stubTimeProvider) Now() time.Time { return s.now }

// Мастер без явного расписания: рабочий день 09:00-18:00, перерыв 12:00-14:00,
// одна запись 10:00-10:30 на первый день горизонта
func newTestUseCase(now time.Time) (*UseCase, *fakeRoster) {
	roster := &fakeRoster{professionals: map[string]map[string]interface{}{
		"pro-1": {
			"id":   "pro-1",
			"name": "Анна",
			"appointments": []interface{}{
				map[string]interface{}{
					"date":      now.Format(domain.DateFormat),
					"startTime": "10:00",
					"duration":  float64(30),
				},
			},
		},
	}}
	selection := &fakeSelection{services: []domain.Service{{ID: "svc-1", Name: "Стрижка"}}}
	resolver := &fakeResolver{aggregate: 30}

	uc := NewUseCase(roster, selection, resolver, 7, testLogger{})
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc, roster
}

func slotByTime(t *testing.T, day domain.Day, start types.TimeString) domain.AvailabilitySlot {
	t.Helper()
	for _, slot := range day.Slots {
		if slot.StartTime == start {
			return slot
		}
	}
	t.Fatalf("slot %s not found", start)
	return domain.AvailabilitySlot{}
}

func TestExecute_GeneratesGridAroundBreak(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	uc, _ := newTestUseCase(now)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:      "sess-1",
		ProfessionalID: "pro-1",
		DaysAhead:      3,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)
	assert.Equal(t, 30, resp.AggregateDurationMinutes)

	today := resp.Days[0]
	assert.True(t, today.Expanded)
	assert.False(t, resp.Days[1].Expanded)

	// Утреннее окно 09:00-12:00 и дневное 14:00-18:00, шаг 30 минут
	starts := make([]types.TimeString, 0, len(today.Slots))
	for _, slot := range today.Slots {
		starts = append(starts, slot.StartTime)
	}
	assert.Equal(t, []types.TimeString{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
	}, starts)
}

func TestExecute_AppointmentBlocksOverlappingStart(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	uc, _ := newTestUseCase(now)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:      "sess-1",
		ProfessionalID: "pro-1",
		DaysAhead:      1,
	})
	require.NoError(t, err)

	today := resp.Days[0]
	assert.False(t, slotByTime(t, today, "10:00").Available)

	// Полуоткрытые интервалы: граничащие с записью старты свободны
	assert.True(t, slotByTime(t, today, "09:30").Available)
	assert.True(t, slotByTime(t, today, "10:30").Available)
	assert.True(t, slotByTime(t, today, "11:30").Available)
	assert.True(t, slotByTime(t, today, "14:00").Available)
}

func TestExecute_LongSelectionBlocksEarlierStarts(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	uc, _ := newTestUseCase(now)
	// Суммарная длительность 90 минут: старт 09:00 упирается в запись 10:00
	uc.resolver = &fakeResolver{aggregate: 90}

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:      "sess-1",
		ProfessionalID: "pro-1",
		DaysAhead:      1,
	})
	require.NoError(t, err)

	today := resp.Days[0]
	assert.False(t, slotByTime(t, today, "09:00").Available)
	assert.False(t, slotByTime(t, today, "09:30").Available)
	assert.True(t, slotByTime(t, today, "10:30").Available)
	assert.Equal(t, 90, resp.AggregateDurationMinutes)
}

func TestExecute_TodaysPastStartsShownButClosed(t *testing.T) {
	// Сейчас 10:45: утренние старты до этого момента показываются закрытыми
	now := time.Date(2026, 9, 1, 10, 45, 0, 0, time.UTC)
	uc, _ := newTestUseCase(now)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:      "sess-1",
		ProfessionalID: "pro-1",
		DaysAhead:      2,
	})
	require.NoError(t, err)

	today := resp.Days[0]
	assert.False(t, slotByTime(t, today, "09:00").Available)
	assert.False(t, slotByTime(t, today, "10:30").Available)
	assert.True(t, slotByTime(t, today, "11:00").Available)

	// На завтра отсечка по текущему времени не действует
	tomorrow := resp.Days[1]
	assert.True(t, slotByTime(t, tomorrow, "09:00").Available)
}

func TestExecute_ExplicitUnavailableStart(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	uc, roster := newTestUseCase(now)
	roster.professionals["pro-1"]["unavailable"] = map[string]interface{}{
		now.Format(domain.DateFormat): []interface{}{"15:00"},
	}

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:      "sess-1",
		ProfessionalID: "pro-1",
		DaysAhead:      1,
	})
	require.NoError(t, err)

	today := resp.Days[0]
	assert.False(t, slotByTime(t, today, "15:00").Available)
	assert.True(t, slotByTime(t, today, "15:30").Available)
}

func TestExecute_EmptySelectionUsesDefaultDuration(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	uc, _ := newTestUseCase(now)
	uc.selection = &fakeSelection{services: nil}

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:      "sess-1",
		ProfessionalID: "pro-1",
		DaysAhead:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, resp.AggregateDurationMinutes)
}

func TestExecute_DefaultDaysAhead(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	uc, _ := newTestUseCase(now)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:      "sess-1",
		ProfessionalID: "pro-1",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 7)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(time.Now())

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: "pro-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SessionID: "sess-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		SessionID:      "sess-1",
		ProfessionalID: "pro-1",
		DaysAhead:      domain.MaxDaysAhead + 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ProfessionalNotFound(t *testing.T) {
	uc, _ := newTestUseCase(time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		SessionID:      "sess-1",
		ProfessionalID: "pro-ghost",
	})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_UnusableProfessionalPayload(t *testing.T) {
	uc, roster := newTestUseCase(time.Now())
	roster.professionals["pro-broken"] = map[string]interface{}{"id": "pro-broken"}

	_, err := uc.Execute(context.Background(), &Request{
		SessionID:      "sess-1",
		ProfessionalID: "pro-broken",
	})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestIsSlotAvailable(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	uc, _ := newTestUseCase(now)
	ctx := context.Background()
	date := now.Format(domain.DateFormat)

	available, err := uc.IsSlotAvailable(ctx, "sess-1", "pro-1", date, "09:30")
	require.NoError(t, err)
	assert.True(t, available)

	available, err = uc.IsSlotAvailable(ctx, "sess-1", "pro-1", date, "10:00")
	require.NoError(t, err)
	assert.False(t, available)

	// Старт внутри перерыва не существует в сетке
	available, err = uc.IsSlotAvailable(ctx, "sess-1", "pro-1", date, "12:30")
	require.NoError(t, err)
	assert.False(t, available)

	_, err = uc.IsSlotAvailable(ctx, "sess-1", "pro-1", "не дата", "09:30")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
