package models

import (
	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/pkg/types"
)

// EffectiveServiceView действующая запись услуги для отображения.
// Pending означает, что ни цена, ни длительность не разрешились:
// показывать прочерк, а не ноль
type EffectiveServiceView struct {
	ServiceID       string   `json:"serviceId"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"durationMinutes"`
	Source          string   `json:"source"`
	Pending         bool     `json:"pending"`
}

// FromEffectiveService конвертирует действующую запись в представление
func FromEffectiveService(e *domain.EffectiveService) EffectiveServiceView {
	return EffectiveServiceView{
		ServiceID:       e.ServiceID,
		Name:            e.Name,
		Price:           e.Price,
		DurationMinutes: e.DurationMinutes,
		Source:          string(e.Source),
		Pending:         e.IsPending(),
	}
}

// ProfessionalView выбранный мастер
type ProfessionalView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// DateTimeView выбранные дата и время
type DateTimeView struct {
	Date      string           `json:"date"`
	StartTime types.TimeString `json:"startTime"`
}

// SelectionResponse составной снимок выбора с действующими записями услуг
type SelectionResponse struct {
	Services                 []EffectiveServiceView `json:"services"`
	Professional             *ProfessionalView      `json:"professional,omitempty"`
	DateTime                 *DateTimeView          `json:"dateTime,omitempty"`
	AggregateDurationMinutes int                    `json:"aggregateDurationMinutes"`
	TotalPrice               *float64               `json:"totalPrice,omitempty"`
}

// WizardStateResponse текущее состояние мастера бронирования.
// RedirectTo заполняется, когда сохраненный выбор не соответствует
// запрошенному шагу и страницу нужно вернуть на более ранний шаг
type WizardStateResponse struct {
	State      domain.WizardState `json:"state"`
	RedirectTo *domain.WizardStep `json:"redirectTo,omitempty"`
	Selection  *SelectionResponse `json:"selection"`
}

// BeginPaymentResponse инициированный платеж депозита
type BeginPaymentResponse struct {
	CorrelationID string  `json:"correlationId"`
	DepositAmount float64 `json:"depositAmount"`
	TotalPrice    float64 `json:"totalPrice"`
}
