package get_available_slots

import "github.com/glowbook/selection-engine/internal/domain"

// Request модель запроса на получение доступных слотов
type Request struct {
	SessionID      string // ID сессии (влияет на суммарную длительность через выбор услуг)
	ProfessionalID string // ID мастера
	DaysAhead      int    // Сколько дней вперёд генерировать, 0 означает значение по умолчанию
}

// Response модель ответа со слотами по дням
type Response struct {
	ProfessionalID           string       // ID мастера
	AggregateDurationMinutes int          // Суммарная длительность выбранных услуг
	Days                     []domain.Day // Дни начиная с сегодняшнего
}
