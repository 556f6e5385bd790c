package get_available_slots

import (
	"github.com/glowbook/selection-engine/internal/domain"
	getAvailableSlots "github.com/glowbook/selection-engine/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProfessionalID           string        `json:"professionalId"`
	AggregateDurationMinutes int           `json:"aggregateDurationMinutes"`
	Days                     []DayResponse `json:"days"`
}

// DayResponse слоты одного календарного дня
type DayResponse struct {
	Date           string         `json:"date"`
	Expanded       bool           `json:"expanded"`
	AvailableCount int            `json:"availableCount"`
	Slots          []SlotResponse `json:"slots"`
}

// SlotResponse один старт слота
type SlotResponse struct {
	StartTime string `json:"startTime"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	days := make([]DayResponse, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]SlotResponse, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = SlotResponse{
				StartTime: slot.StartTime.String(),
				Available: slot.Available,
			}
		}
		days[i] = DayResponse{
			Date:           day.Date.Format(domain.DateFormat),
			Expanded:       day.Expanded,
			AvailableCount: day.AvailableCount(),
			Slots:          slots,
		}
	}

	return &AvailableSlotsResponse{
		ProfessionalID:           resp.ProfessionalID,
		AggregateDurationMinutes: resp.AggregateDurationMinutes,
		Days:                     days,
	}
}
