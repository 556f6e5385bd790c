package domain

import (
	"time"

	"github.com/glowbook/selection-engine/pkg/types"
)

// AvailabilitySlot a fixed-start booking opportunity for one professional.
// Derived data: regenerated whenever the professional, the aggregate
// duration or the appointment list changes; never persisted
type AvailabilitySlot struct {
	StartTime types.TimeString `json:"startTime"`
	Available bool             `json:"available"`
}

// Day generated slots for one calendar day
// Expanded is purely a presentation default the caller may override
type Day struct {
	Date     time.Time          `json:"date"`
	Expanded bool               `json:"expanded"`
	Slots    []AvailabilitySlot `json:"slots"`
}

// AvailableCount возвращает количество доступных слотов дня
func (d *Day) AvailableCount() int {
	count := 0
	for _, slot := range d.Slots {
		if slot.Available {
			count++
		}
	}
	return count
}

// IntervalsOverlap проверяет пересечение двух полуоткрытых интервалов
// [startA, endA) и [startB, endB). Граничащие интервалы не пересекаются
func IntervalsOverlap(startA, endA, startB, endB types.TimeString) bool {
	return startA.IsBefore(endB) && startB.IsBefore(endA)
}
