package models

import "github.com/glowbook/selection-engine/internal/domain"

// UpsertOverrideRequest запрос на создание или обновление настройки пары
type UpsertOverrideRequest struct {
	ServiceID       string   `json:"serviceId"`
	ProfessionalID  string   `json:"professionalId"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
}

// ToDomainOverride конвертирует запрос в domain модель
func (r *UpsertOverrideRequest) ToDomainOverride() *domain.StaffOverride {
	return &domain.StaffOverride{
		ServiceID:       r.ServiceID,
		ProfessionalID:  r.ProfessionalID,
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
	}
}

// OverrideResponse настройка пары услуга+мастер
type OverrideResponse struct {
	ID              int64    `json:"id"`
	ServiceID       string   `json:"serviceId"`
	ProfessionalID  string   `json:"professionalId"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
}

// FromDomainOverride конвертирует domain модель в ответ
func FromDomainOverride(o *domain.StaffOverride) *OverrideResponse {
	return &OverrideResponse{
		ID:              o.ID,
		ServiceID:       o.ServiceID,
		ProfessionalID:  o.ProfessionalID,
		Name:            o.Name,
		Price:           o.Price,
		DurationMinutes: o.DurationMinutes,
	}
}

// OverrideListResponse список настроек пары
type OverrideListResponse struct {
	Overrides []*OverrideResponse `json:"overrides"`
}

// FromDomainOverrideList конвертирует список domain моделей в ответ
func FromDomainOverrideList(list []*domain.StaffOverride) *OverrideListResponse {
	overrides := make([]*OverrideResponse, 0, len(list))
	for _, o := range list {
		overrides = append(overrides, FromDomainOverride(o))
	}
	return &OverrideListResponse{Overrides: overrides}
}
