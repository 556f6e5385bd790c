package complete_booking

import (
	"time"

	"github.com/glowbook/selection-engine/pkg/types"
)

// Request модель запроса на завершение бронирования после успешного платежа
type Request struct {
	SessionID     string // ID сессии
	CorrelationID string // Идентификатор корреляции платежа из callback
}

// Response модель ответа с записанным снимком бронирования
type Response struct {
	BookingID        int64            // ID снимка в хранилище
	AppointmentID    string           // ID записи в сервисе записей
	ServiceNames     []string         // Названия услуг на момент бронирования
	DurationMinutes  int              // Суммарная длительность
	TotalPrice       float64          // Полная цена
	DepositAmount    float64          // Принятый депозит
	ProfessionalName string           // Имя мастера
	Date             string           // Дата бронирования, YYYY-MM-DD
	StartTime        types.TimeString // Время начала
	CreatedAt        time.Time        // Время записи снимка
}
