package domain

// Service represents a normalized salon catalog service
// Price is expressed in major currency units after normalization
type Service struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"durationMinutes"`
	RequiresDeposit bool     `json:"requiresDeposit"`
	DepositPercent  *float64 `json:"depositPercent"`
}

// HasPrice returns true if the price has been resolved
func (s *Service) HasPrice() bool {
	return s.Price != nil
}

// EffectiveDurationMinutes returns the resolved duration or the engine default
func (s *Service) EffectiveDurationMinutes() int {
	if s.DurationMinutes != nil {
		return *s.DurationMinutes
	}
	return DefaultServiceDurationMinutes
}

// ResolutionSource identifies the cascade tier an effective record came from
type ResolutionSource string

const (
	SourcePairOverride  ResolutionSource = "pair_override"
	SourceSalonOverride ResolutionSource = "salon_override"
	SourceCatalog       ResolutionSource = "catalog"
	SourcePlaceholder   ResolutionSource = "placeholder"
)

// EffectiveService is the derived price/duration view of a service after
// resolving overrides. Never persisted as authoritative; recomputed on demand.
type EffectiveService struct {
	ServiceID       string           `json:"serviceId"`
	ProfessionalID  *string          `json:"professionalId,omitempty"`
	Name            string           `json:"name"`
	Price           *float64         `json:"price"`
	DurationMinutes *int             `json:"durationMinutes"`
	RequiresDeposit bool             `json:"requiresDeposit"`
	DepositPercent  *float64         `json:"depositPercent"`
	Source          ResolutionSource `json:"source"`
}

// IsPending returns true if neither price nor duration could be resolved.
// Callers must render this as "pending", never as a free or zero-length service.
func (e *EffectiveService) IsPending() bool {
	return e.Price == nil && e.DurationMinutes == nil
}

// EffectiveDurationMinutes returns the resolved duration or the engine default
func (e *EffectiveService) EffectiveDurationMinutes() int {
	if e.DurationMinutes != nil {
		return *e.DurationMinutes
	}
	return DefaultServiceDurationMinutes
}

// DepositFraction returns the deposit share of the price, falling back
// to fallbackPercent when the record carries none
func (e *EffectiveService) DepositFraction(fallbackPercent float64) float64 {
	if e.DepositPercent != nil {
		return *e.DepositPercent / 100
	}
	return fallbackPercent / 100
}

// NewPlaceholderEffectiveService creates the placeholder returned when
// every cascade tier misses for the requested pair
func NewPlaceholderEffectiveService(serviceID string, professionalID *string) *EffectiveService {
	return &EffectiveService{
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		Source:         SourcePlaceholder,
	}
}

// StaffOverride is an explicit staff-initiated override of price/duration
// for an exact {service, professional} pair. It mutates only the effective
// view, never the catalog record
type StaffOverride struct {
	ID              int64
	ServiceID       string
	ProfessionalID  string
	Name            string
	Price           *float64
	DurationMinutes *int
}
