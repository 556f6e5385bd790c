package domain

import (
	"time"

	"github.com/glowbook/selection-engine/pkg/types"
)

// CompletedBooking denormalized snapshot of a fully resolved booking,
// written once the payment success callback fires. History record:
// later catalog or override edits never touch it
type CompletedBooking struct {
	ID               int64
	SessionID        string
	CorrelationID    string
	SalonID          string
	ServiceIDs       []string
	ServiceNames     []string
	DurationMinutes  int
	TotalPrice       float64
	DepositAmount    float64
	ProfessionalID   string
	ProfessionalName string
	Date             string // YYYY-MM-DD
	StartTime        types.TimeString

	CreatedAt time.Time
}
