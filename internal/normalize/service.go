package normalize

import "github.com/glowbook/selection-engine/internal/domain"

// Ключи-варианты одних и тех же логических полей у разных продюсеров
// (ответы каталога, кэшированные payload'ы, правки персонала)
var (
	serviceIDKeys       = []string{"id", "serviceId", "service_id", "_id", "uuid"}
	serviceNameKeys     = []string{"name", "title", "serviceName", "service_name", "displayName", "display_name", "label"}
	servicePriceKeys    = []string{"price", "cost", "amount", "servicePrice", "service_price", "priceAmount", "price_amount"}
	serviceDurationKeys = []string{"duration", "durationMinutes", "duration_minutes", "durationMin", "time", "length"}
	depositFlagKeys     = []string{"requiresDeposit", "requires_deposit", "depositRequired", "deposit_required"}
	depositPercentKeys  = []string{"depositPercent", "deposit_percent", "depositPct", "deposit_pct"}
)

// NormalizeService converts a heterogeneous raw service payload into the
// canonical Service shape.
//
// Returns nil when the payload is unusable (no recognizable id or name).
// That is a data-quality signal, not an error: callers fall back to the
// pending placeholder instead of failing
func NormalizeService(raw map[string]interface{}) *domain.Service {
	if raw == nil {
		return nil
	}
	m := unwrap(raw)

	id, ok := stringField(m, serviceIDKeys...)
	if !ok {
		return nil
	}
	name, ok := stringField(m, serviceNameKeys...)
	if !ok {
		return nil
	}

	svc := &domain.Service{
		ID:   id,
		Name: name,
	}

	if rawPrice, ok := anyField(m, servicePriceKeys...); ok {
		svc.Price = parsePrice(rawPrice)
	}
	if rawDuration, ok := anyField(m, serviceDurationKeys...); ok {
		svc.DurationMinutes = parseDurationMinutes(rawDuration)
	}
	if requires, ok := boolField(m, depositFlagKeys...); ok {
		svc.RequiresDeposit = requires
	}
	if rawPercent, ok := anyField(m, depositPercentKeys...); ok {
		// Процент депозита не цена: эвристика копеек здесь неуместна
		if percent, isNumber := rawPercent.(float64); isNumber && percent > 0 && percent <= 100 {
			svc.DepositPercent = &percent
		}
	}

	return svc
}

// FromStaffOverride строит Service-подобную эффективную запись из переопределения персонала
// Запись уровня каскада используется целиком, без слияния полей с другими уровнями
func FromStaffOverride(override *domain.StaffOverride) *domain.EffectiveService {
	return &domain.EffectiveService{
		ServiceID:       override.ServiceID,
		ProfessionalID:  &override.ProfessionalID,
		Name:            override.Name,
		Price:           override.Price,
		DurationMinutes: override.DurationMinutes,
		Source:          domain.SourcePairOverride,
	}
}

// FromService строит эффективную запись из нормализованной записи каталога
// или салонного переопределения
func FromService(svc *domain.Service, professionalID *string, source domain.ResolutionSource) *domain.EffectiveService {
	return &domain.EffectiveService{
		ServiceID:       svc.ID,
		ProfessionalID:  professionalID,
		Name:            svc.Name,
		Price:           svc.Price,
		DurationMinutes: svc.DurationMinutes,
		RequiresDeposit: svc.RequiresDeposit,
		DepositPercent:  svc.DepositPercent,
		Source:          source,
	}
}
