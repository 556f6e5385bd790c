package get_available_slots

import (
	"time"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/pkg/types"
)

// generateDaySlots генерирует слоты мастера на одну дату.
// Старты идут с фиксированным шагом в двух рабочих окнах: от начала дня
// до перерыва и от конца перерыва до конца дня. Перерыв жёсткий: внутри
// него старты не генерируются
func generateDaySlots(
	professional *domain.Professional,
	date time.Time,
	aggregateDuration int,
	now time.Time,
) ([]domain.AvailabilitySlot, error) {
	schedule := professional.ScheduleFor(date.Weekday())
	dateKey := date.Format(domain.DateFormat)

	appointments := professional.AppointmentsOn(dateKey)
	unavailable := professional.UnavailableOn(dateKey)

	windows := [][2]types.TimeString{
		{schedule.Start, schedule.BreakStart},
		{schedule.BreakEnd, schedule.End},
	}

	var slots []domain.AvailabilitySlot
	for _, window := range windows {
		start, end := window[0], window[1]

		current := start
		for current.IsBefore(end) {
			slotEnd, err := current.AddMinutes(domain.SlotStepMinutes)
			if err != nil {
				return nil, err
			}
			if slotEnd.IsAfter(end) {
				break
			}

			available := isSlotAvailable(current, aggregateDuration, appointments, unavailable)

			// Сегодняшние старты в прошлом показываем, но закрываем
			if available && isSameDay(date, now) && current.IsBefore(types.NewTimeString(now)) {
				available = false
			}

			slots = append(slots, domain.AvailabilitySlot{
				StartTime: current,
				Available: available,
			})

			current = slotEnd
		}
	}

	return slots, nil
}

// isSlotAvailable проверяет старт слота против явных закрытий и записей.
// Занятость считается по суммарной длительности выбора: интервал
// [start, start+aggregateDuration) не должен пересекаться ни с одной записью.
// Интервалы полуоткрытые, граничащие записи не мешают
func isSlotAvailable(
	start types.TimeString,
	aggregateDuration int,
	appointments []domain.Appointment,
	unavailable []types.TimeString,
) bool {
	for _, blocked := range unavailable {
		if start == blocked {
			return false
		}
	}

	end, err := start.AddMinutes(aggregateDuration)
	if err != nil {
		// Выбор не помещается до конца суток
		return false
	}

	for _, appt := range appointments {
		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}
		if domain.IntervalsOverlap(start, end, appt.StartTime, apptEnd) {
			return false
		}
	}

	return true
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
