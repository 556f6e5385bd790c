package get_available_slots

import (
	"fmt"

	"github.com/glowbook/selection-engine/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	if req.ProfessionalID == "" {
		return fmt.Errorf("%w: professionalID is required", ErrInvalidInput)
	}

	if req.DaysAhead < 0 {
		return fmt.Errorf("%w: daysAhead must not be negative", ErrInvalidInput)
	}

	if req.DaysAhead > domain.MaxDaysAhead {
		return fmt.Errorf("%w: daysAhead must not exceed %d", ErrInvalidInput, domain.MaxDaysAhead)
	}

	return nil
}
