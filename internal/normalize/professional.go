package normalize

import (
	"strings"
	"time"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/pkg/types"
)

var (
	professionalIDKeys   = []string{"id", "professionalId", "professional_id", "staffId", "staff_id", "_id"}
	professionalNameKeys = []string{"name", "fullName", "full_name", "displayName", "display_name"}
	professionalRoleKeys = []string{"role", "title", "position", "jobTitle", "job_title"}
	photoKeys            = []string{"photo", "photoUrl", "photo_url", "avatar", "image", "picture"}
	workingHoursKeys     = []string{"workingHours", "working_hours", "schedule", "hours"}
	appointmentsKeys     = []string{"appointments", "bookings", "existingAppointments", "existing_appointments"}
	unavailableKeys      = []string{"unavailable", "unavailableSlots", "unavailable_slots", "blocked"}

	dayStartKeys      = []string{"start", "from", "open", "startTime", "start_time"}
	dayEndKeys        = []string{"end", "to", "close", "endTime", "end_time"}
	dayBreakStartKeys = []string{"breakStart", "break_start", "lunchStart", "lunch_start"}
	dayBreakEndKeys   = []string{"breakEnd", "break_end", "lunchEnd", "lunch_end"}

	apptDateKeys     = []string{"date", "day", "bookingDate", "booking_date"}
	apptStartKeys    = []string{"startTime", "start_time", "start", "time"}
	apptDurationKeys = []string{"durationMinutes", "duration_minutes", "duration"}
)

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// NormalizeProfessional converts a heterogeneous raw roster payload into the
// canonical Professional shape.
//
// Returns nil when the payload is unusable (no recognizable id or name).
// Malformed schedule or appointment fragments are dropped individually:
// a partially bad roster record still yields a usable professional
func NormalizeProfessional(raw map[string]interface{}) *domain.Professional {
	if raw == nil {
		return nil
	}
	m := unwrap(raw)

	id, ok := stringField(m, professionalIDKeys...)
	if !ok {
		return nil
	}
	name, ok := stringField(m, professionalNameKeys...)
	if !ok {
		return nil
	}

	professional := &domain.Professional{
		ID:   id,
		Name: name,
	}

	if role, ok := stringField(m, professionalRoleKeys...); ok {
		professional.Role = role
	}
	if photo, ok := stringField(m, photoKeys...); ok {
		professional.PhotoURL = photo
	}
	if rawHours, ok := anyField(m, workingHoursKeys...); ok {
		professional.WorkingHours = normalizeWorkingHours(rawHours)
	}
	if rawAppointments, ok := anyField(m, appointmentsKeys...); ok {
		professional.Appointments = normalizeAppointments(rawAppointments)
	}
	if rawUnavailable, ok := anyField(m, unavailableKeys...); ok {
		professional.Unavailable = normalizeUnavailable(rawUnavailable)
	}

	return professional
}

func normalizeWorkingHours(raw interface{}) map[time.Weekday]domain.DaySchedule {
	hours, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}

	result := make(map[time.Weekday]domain.DaySchedule)
	for key, value := range hours {
		weekday, ok := weekdayNames[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		day, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		schedule, ok := normalizeDaySchedule(day)
		if !ok {
			continue
		}
		result[weekday] = schedule
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

func normalizeDaySchedule(day map[string]interface{}) (domain.DaySchedule, bool) {
	schedule := domain.DefaultDaySchedule()

	start, okStart := timeField(day, dayStartKeys...)
	end, okEnd := timeField(day, dayEndKeys...)
	if !okStart || !okEnd || !start.IsBefore(end) {
		return domain.DaySchedule{}, false
	}
	schedule.Start = start
	schedule.End = end

	if breakStart, ok := timeField(day, dayBreakStartKeys...); ok {
		if breakEnd, ok := timeField(day, dayBreakEndKeys...); ok && breakStart.IsBefore(breakEnd) {
			schedule.BreakStart = breakStart
			schedule.BreakEnd = breakEnd
		}
	}

	return schedule, true
}

func timeField(m map[string]interface{}, keys ...string) (types.TimeString, bool) {
	s, ok := stringField(m, keys...)
	if !ok {
		return "", false
	}
	parsed, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", false
	}
	return parsed, true
}

func normalizeAppointments(raw interface{}) []domain.Appointment {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	var result []domain.Appointment
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		date, ok := stringField(m, apptDateKeys...)
		if !ok {
			continue
		}
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			continue
		}
		start, ok := timeField(m, apptStartKeys...)
		if !ok {
			continue
		}

		duration := domain.DefaultServiceDurationMinutes
		if rawDuration, ok := anyField(m, apptDurationKeys...); ok {
			if parsed := parseDurationMinutes(rawDuration); parsed != nil {
				duration = *parsed
			}
		}

		result = append(result, domain.Appointment{
			Date:            date,
			StartTime:       start,
			DurationMinutes: duration,
		})
	}

	return result
}

// normalizeUnavailable принимает либо map даты в список времен,
// либо список объектов {date, time}
func normalizeUnavailable(raw interface{}) map[string][]types.TimeString {
	result := make(map[string][]types.TimeString)

	switch typed := raw.(type) {
	case map[string]interface{}:
		for date, value := range typed {
			if _, err := time.Parse(domain.DateFormat, date); err != nil {
				continue
			}
			times, ok := value.([]interface{})
			if !ok {
				continue
			}
			for _, t := range times {
				s, ok := t.(string)
				if !ok {
					continue
				}
				parsed, err := types.NewTimeStringFromString(s)
				if err != nil {
					continue
				}
				result[date] = append(result[date], parsed)
			}
		}
	case []interface{}:
		for _, item := range typed {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			date, ok := stringField(m, apptDateKeys...)
			if !ok {
				continue
			}
			if _, err := time.Parse(domain.DateFormat, date); err != nil {
				continue
			}
			start, ok := timeField(m, apptStartKeys...)
			if !ok {
				continue
			}
			result[date] = append(result[date], start)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
