package domain

import (
	"time"

	"github.com/glowbook/selection-engine/pkg/types"
)

// DaySchedule working window of a professional for one weekday
// The break is a hard gap: no slot may start inside it
type DaySchedule struct {
	Start      types.TimeString `json:"start"`
	End        types.TimeString `json:"end"`
	BreakStart types.TimeString `json:"breakStart"`
	BreakEnd   types.TimeString `json:"breakEnd"`
}

// DefaultDaySchedule возвращает рабочий день по умолчанию (09:00–18:00, перерыв 12:00–14:00)
func DefaultDaySchedule() DaySchedule {
	return DaySchedule{
		Start:      types.TimeString(DefaultWorkStart),
		End:        types.TimeString(DefaultWorkEnd),
		BreakStart: types.TimeString(DefaultBreakStart),
		BreakEnd:   types.TimeString(DefaultBreakEnd),
	}
}

// Appointment существующая запись клиента к мастеру
type Appointment struct {
	Date            string           `json:"date"` // YYYY-MM-DD
	StartTime       types.TimeString `json:"startTime"`
	DurationMinutes int              `json:"durationMinutes"`
}

// EndTime возвращает время окончания записи
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// Professional represents a normalized salon roster professional
// Immutable during a booking session; sourced externally
type Professional struct {
	ID           string                       `json:"id"`
	Name         string                       `json:"name"`
	Role         string                       `json:"role"`
	PhotoURL     string                       `json:"photoUrl"`
	WorkingHours map[time.Weekday]DaySchedule `json:"workingHours"`
	Appointments []Appointment                `json:"appointments"`
	// Unavailable явно закрытые старты слотов по датам (YYYY-MM-DD -> времена)
	Unavailable map[string][]types.TimeString `json:"unavailable,omitempty"`
}

// ScheduleFor возвращает расписание мастера на день недели
// Если явного расписания нет, применяется DefaultDaySchedule
func (p *Professional) ScheduleFor(weekday time.Weekday) DaySchedule {
	if p.WorkingHours != nil {
		if schedule, ok := p.WorkingHours[weekday]; ok {
			return schedule
		}
	}
	return DefaultDaySchedule()
}

// AppointmentsOn возвращает записи мастера на конкретную дату
func (p *Professional) AppointmentsOn(date string) []Appointment {
	var result []Appointment
	for _, appt := range p.Appointments {
		if appt.Date == date {
			result = append(result, appt)
		}
	}
	return result
}

// UnavailableOn возвращает явно закрытые старты слотов на дату
func (p *Professional) UnavailableOn(date string) []types.TimeString {
	if p.Unavailable == nil {
		return nil
	}
	return p.Unavailable[date]
}
