package appointments

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CreateAppointmentRequest запрос на создание записи
// Полностью разрешенные данные: имена, длительность и цена уже вычислены
// каскадом, сервис записей не обращается к каталогу повторно
type CreateAppointmentRequest struct {
	CorrelationID    string   `json:"correlationId"`
	SalonID          string   `json:"salonId"`
	ServiceIDs       []string `json:"serviceIds"`
	ServiceNames     []string `json:"serviceNames"`
	DurationMinutes  int      `json:"durationMinutes"`
	TotalPrice       float64  `json:"totalPrice"`
	ProfessionalID   string   `json:"professionalId"`
	ProfessionalName string   `json:"professionalName"`
	Date             string   `json:"date"` // YYYY-MM-DD
	StartTime        string   `json:"startTime"`
}

// CreateAppointmentResponse ответ сервиса записей
type CreateAppointmentResponse struct {
	AppointmentID string `json:"appointmentId"`
	Status        string `json:"status"`
}

// ErrorResponse модель ошибки от сервиса записей
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
