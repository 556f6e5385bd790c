package resolver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/internal/infra/storage/override"
	"github.com/glowbook/selection-engine/internal/integrations/catalog"
	"github.com/glowbook/selection-engine/internal/normalize"
)

const (
	tierPairOverride  = "pair_override"
	tierSalonOverride = "salon_override"
	tierCatalog       = "catalog"
	tierPlaceholder   = "placeholder"

	sweepInterval     = time.Minute
	defaultSessionTTL = time.Hour
)

type cacheKey struct {
	sessionID      string
	serviceID      string
	professionalID string
}

// Resolver вычисляет действующие цену и длительность услуги по каскаду
// приоритетов: настройка пары услуга+мастер, переопределение салона,
// базовая запись каталога. Если ни один уровень не дал пригодной записи,
// возвращается заглушка с неизвестными ценой и длительностью.
//
// Уровни не сливаются между собой: побеждает запись целиком
type Resolver struct {
	salonID    string
	overrides  OverrideRepository
	catalog    CatalogClient
	sessionTTL time.Duration
	logger     Logger
	metrics    MetricsRecorder

	mu      sync.RWMutex
	cache   map[cacheKey]*domain.EffectiveService
	touched map[string]time.Time
}

func New(salonID string, overrides OverrideRepository, catalogClient CatalogClient, sessionTTL time.Duration, logger Logger, metrics MetricsRecorder) *Resolver {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &Resolver{
		salonID:    salonID,
		overrides:  overrides,
		catalog:    catalogClient,
		sessionTTL: sessionTTL,
		logger:     logger,
		metrics:    metrics,
		cache:      make(map[cacheKey]*domain.EffectiveService),
		touched:    make(map[string]time.Time),
	}
}

// ResolveEffective возвращает действующую запись для пары услуга+мастер.
// Никогда не возвращает nil: деградация любого уровня приводит к заглушке,
// а решение о том, как её показывать, остаётся за вызывающим.
// Результат кэшируется в рамках сессии, заглушки не кэшируются
func (r *Resolver) ResolveEffective(ctx context.Context, sessionID, serviceID string, professionalID *string) *domain.EffectiveService {
	key := cacheKey{sessionID: sessionID, serviceID: serviceID}
	if professionalID != nil {
		key.professionalID = *professionalID
	}

	r.mu.Lock()
	r.touched[sessionID] = time.Now()
	cached, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return cached
	}

	effective := r.resolve(ctx, serviceID, professionalID)
	if effective.Source != domain.SourcePlaceholder {
		r.mu.Lock()
		r.cache[key] = effective
		r.mu.Unlock()
	}
	return effective
}

// DropAll выбрасывает кэш целиком, вызывается при изменении настроек пар
func (r *Resolver) DropAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[cacheKey]*domain.EffectiveService)
	r.touched = make(map[string]time.Time)
}

// DropSession выбрасывает кэш сессии после завершения или сброса мастера выбора
func (r *Resolver) DropSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropSessionLocked(sessionID)
}

// Run периодически выметает кэш сессий, молчащих дольше времени жизни
// сессии. Сессии, завершившиеся явно, вычищаются через DropSession,
// сюда попадают закрытые вкладки и истекшие по TTL сессии
func (r *Resolver) Run(ctx context.Context) error {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.sweep(time.Now())
		}
	}
}

func (r *Resolver) sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sessionID, last := range r.touched {
		if now.Sub(last) < r.sessionTTL {
			continue
		}
		r.dropSessionLocked(sessionID)
	}
}

func (r *Resolver) dropSessionLocked(sessionID string) {
	delete(r.touched, sessionID)
	for key := range r.cache {
		if key.sessionID == sessionID {
			delete(r.cache, key)
		}
	}
}

func (r *Resolver) resolve(ctx context.Context, serviceID string, professionalID *string) *domain.EffectiveService {
	// Уровень 1: персональная настройка пары услуга+мастер
	if professionalID != nil {
		staffOverride, err := r.overrides.GetByServiceAndProfessional(ctx, serviceID, *professionalID)
		switch {
		case err == nil:
			r.hit(tierPairOverride)
			return normalize.FromStaffOverride(staffOverride)
		case errors.Is(err, override.ErrOverrideNotFound):
			// промах, спускаемся ниже
		default:
			r.logger.Error("resolve: pair override lookup failed, service=%s professional=%s: %v", serviceID, *professionalID, err)
		}
	}

	// Уровень 2: переопределение салона
	raw, err := r.catalog.GetSalonOverride(ctx, r.salonID, serviceID)
	switch {
	case err == nil:
		if svc := normalize.NormalizeService(raw); svc != nil {
			r.hit(tierSalonOverride)
			return normalize.FromService(svc, professionalID, domain.SourceSalonOverride)
		}
		r.logger.Warn("resolve: unusable salon override payload, service=%s", serviceID)
	case errors.Is(err, catalog.ErrOverrideNotFound):
		// промах, спускаемся ниже
	default:
		r.logger.Error("resolve: salon override lookup failed, service=%s: %v", serviceID, err)
	}

	// Уровень 3: базовая запись каталога
	raw, err = r.catalog.GetService(ctx, r.salonID, serviceID)
	switch {
	case err == nil:
		if svc := normalize.NormalizeService(raw); svc != nil {
			r.hit(tierCatalog)
			return normalize.FromService(svc, professionalID, domain.SourceCatalog)
		}
		r.logger.Warn("resolve: unusable catalog payload, service=%s", serviceID)
	case errors.Is(err, catalog.ErrServiceNotFound):
		// каскад исчерпан
	default:
		r.logger.Error("resolve: catalog lookup failed, service=%s: %v", serviceID, err)
	}

	r.hit(tierPlaceholder)
	return domain.NewPlaceholderEffectiveService(serviceID, professionalID)
}

// AggregateDurationMinutes суммирует действующие длительности выбранных услуг.
// Пустой выбор и неразрешившиеся услуги считаются длительностью по умолчанию
func (r *Resolver) AggregateDurationMinutes(ctx context.Context, sessionID string, services []domain.Service, professionalID *string) int {
	if len(services) == 0 {
		return domain.DefaultServiceDurationMinutes
	}

	total := 0
	for _, svc := range services {
		effective := r.ResolveEffective(ctx, sessionID, svc.ID, professionalID)
		total += effective.EffectiveDurationMinutes()
	}
	return total
}

func (r *Resolver) hit(tier string) {
	if r.metrics != nil {
		r.metrics.IncResolverTierHit(tier)
	}
}
