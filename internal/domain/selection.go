package domain

import "github.com/glowbook/selection-engine/pkg/types"

// SelectionField одно из трех полей выбора мастера бронирования
type SelectionField string

const (
	FieldServices     SelectionField = "services"
	FieldProfessional SelectionField = "professional"
	FieldDateTime     SelectionField = "datetime"
)

// SelectedDateTime выбранные дата и время слота
// Хранится на сессионном уровне: вне одной попытки бронирования не имеет смысла
type SelectedDateTime struct {
	Date      string           `json:"date"` // YYYY-MM-DD
	StartTime types.TimeString `json:"startTime"`
}

// Selection is the in-progress booking selection of one browser session.
// Conceptually owned by the session; no server-side entity is authoritative
// for the draft beyond the storage tiers backing it.
//
// Invariants:
//   - DateTime is meaningless without a non-empty Services list
//   - setting Professional never implies or overwrites a service selection
type Selection struct {
	Services     []Service         `json:"services"`
	Professional *Professional     `json:"professional"`
	DateTime     *SelectedDateTime `json:"dateTime"`
}

// HasServices returns true if at least one service is selected
func (s *Selection) HasServices() bool {
	return len(s.Services) > 0
}

// HasProfessional returns true if a professional is selected
func (s *Selection) HasProfessional() bool {
	return s.Professional != nil
}

// HasDateTime returns true if a slot has been picked
func (s *Selection) HasDateTime() bool {
	return s.DateTime != nil
}

// ServiceIDs возвращает идентификаторы выбранных услуг
func (s *Selection) ServiceIDs() []string {
	ids := make([]string, 0, len(s.Services))
	for _, svc := range s.Services {
		ids = append(ids, svc.ID)
	}
	return ids
}

// AggregateDurationMinutes суммарная длительность выбранных услуг
// по их нормализованным записям; неразрешенная длительность считается
// как DefaultServiceDurationMinutes. Каскад переопределений применяется
// выше (resolver), здесь только запасная оценка по записям выбора
func (s *Selection) AggregateDurationMinutes() int {
	total := 0
	for _, svc := range s.Services {
		total += svc.EffectiveDurationMinutes()
	}
	return total
}
