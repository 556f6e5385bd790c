package domain

// Slot generation defaults
const (
	// SlotStepMinutes шаг сетки стартов слотов
	SlotStepMinutes = 30

	// DefaultServiceDurationMinutes длительность услуги, когда она не разрешена ни одним уровнем каскада
	DefaultServiceDurationMinutes = 60

	// MaxDaysAhead верхняя граница горизонта генерации слотов
	MaxDaysAhead = 60
)

// Default working hours, applied when the professional has no explicit schedule
const (
	DefaultWorkStart  = "09:00"
	DefaultWorkEnd    = "18:00"
	DefaultBreakStart = "12:00"
	DefaultBreakEnd   = "14:00"
)

// Price normalization
const (
	// MinorUnitThreshold числовые цены больше этого порога считаются копейками/центами и делятся на 100
	MinorUnitThreshold = 1000
)

// Payments
const (
	// DefaultDepositPercent процент депозита, если каталог не задал собственный
	DefaultDepositPercent = 20.0
)

// Business validation constants
const (
	MaxSelectedServices = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
