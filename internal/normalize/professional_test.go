package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/pkg/types"
)

func TestNormalizeProfessional_Basic(t *testing.T) {
	pro := NormalizeProfessional(map[string]interface{}{
		"staff_id":  "pro-1",
		"full_name": "Анна Иванова",
		"role":      "Колорист",
		"photoUrl":  "https://cdn.example.com/anna.jpg",
	})

	require.NotNil(t, pro)
	assert.Equal(t, "pro-1", pro.ID)
	assert.Equal(t, "Анна Иванова", pro.Name)
	assert.Equal(t, "Колорист", pro.Role)
	assert.Equal(t, "https://cdn.example.com/anna.jpg", pro.PhotoURL)
}

func TestNormalizeProfessional_Unusable(t *testing.T) {
	assert.Nil(t, NormalizeProfessional(nil))
	assert.Nil(t, NormalizeProfessional(map[string]interface{}{"name": "Без ID"}))
	assert.Nil(t, NormalizeProfessional(map[string]interface{}{"id": "pro-1"}))
}

func TestNormalizeProfessional_WorkingHours(t *testing.T) {
	pro := NormalizeProfessional(map[string]interface{}{
		"id":   "pro-1",
		"name": "Анна",
		"workingHours": map[string]interface{}{
			"monday": map[string]interface{}{
				"start":      "10:00",
				"end":        "19:00",
				"breakStart": "13:00",
				"breakEnd":   "14:00",
			},
			"TUE": map[string]interface{}{
				"from": "09:00",
				"to":   "17:00",
			},
			// Конец раньше начала, день отбрасывается
			"wednesday": map[string]interface{}{
				"start": "18:00",
				"end":   "09:00",
			},
			"someday": map[string]interface{}{
				"start": "09:00",
				"end":   "18:00",
			},
		},
	})

	require.NotNil(t, pro)
	require.NotNil(t, pro.WorkingHours)

	monday, ok := pro.WorkingHours[time.Monday]
	require.True(t, ok)
	assert.Equal(t, types.TimeString("10:00"), monday.Start)
	assert.Equal(t, types.TimeString("19:00"), monday.End)
	assert.Equal(t, types.TimeString("13:00"), monday.BreakStart)
	assert.Equal(t, types.TimeString("14:00"), monday.BreakEnd)

	tuesday, ok := pro.WorkingHours[time.Tuesday]
	require.True(t, ok)
	assert.Equal(t, types.TimeString("09:00"), tuesday.Start)
	// Перерыв не задан, остается перерыв по умолчанию
	assert.Equal(t, types.TimeString(domain.DefaultBreakStart), tuesday.BreakStart)

	_, ok = pro.WorkingHours[time.Wednesday]
	assert.False(t, ok)
	assert.Len(t, pro.WorkingHours, 2)
}

func TestNormalizeProfessional_Appointments(t *testing.T) {
	pro := NormalizeProfessional(map[string]interface{}{
		"id":   "pro-1",
		"name": "Анна",
		"appointments": []interface{}{
			map[string]interface{}{
				"date":      "2026-09-01",
				"startTime": "10:00",
				"duration":  float64(30),
			},
			map[string]interface{}{
				"date":  "2026-09-01",
				"start": "15:00",
				// Длительности нет, применяется значение по умолчанию
			},
			// Непригодные фрагменты отбрасываются по одному
			map[string]interface{}{"date": "не дата", "start": "10:00"},
			map[string]interface{}{"date": "2026-09-01"},
			"garbage",
		},
	})

	require.NotNil(t, pro)
	require.Len(t, pro.Appointments, 2)

	assert.Equal(t, "2026-09-01", pro.Appointments[0].Date)
	assert.Equal(t, types.TimeString("10:00"), pro.Appointments[0].StartTime)
	assert.Equal(t, 30, pro.Appointments[0].DurationMinutes)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, pro.Appointments[1].DurationMinutes)
}

func TestNormalizeProfessional_UnavailableMap(t *testing.T) {
	pro := NormalizeProfessional(map[string]interface{}{
		"id":   "pro-1",
		"name": "Анна",
		"unavailable": map[string]interface{}{
			"2026-09-01": []interface{}{"11:00", "11:30", "мусор"},
			"не дата":    []interface{}{"10:00"},
		},
	})

	require.NotNil(t, pro)
	require.NotNil(t, pro.Unavailable)
	assert.ElementsMatch(t,
		[]types.TimeString{"11:00", "11:30"},
		pro.Unavailable["2026-09-01"])
	assert.Len(t, pro.Unavailable, 1)
}

func TestNormalizeProfessional_UnavailableList(t *testing.T) {
	pro := NormalizeProfessional(map[string]interface{}{
		"id":   "pro-1",
		"name": "Анна",
		"blocked": []interface{}{
			map[string]interface{}{"date": "2026-09-02", "time": "16:00"},
		},
	})

	require.NotNil(t, pro)
	assert.Equal(t, []types.TimeString{"16:00"}, pro.Unavailable["2026-09-02"])
}
