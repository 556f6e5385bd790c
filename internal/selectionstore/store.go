package selectionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/glowbook/selection-engine/internal/bus"
	"github.com/glowbook/selection-engine/internal/domain"
	storage "github.com/glowbook/selection-engine/internal/infra/storage/selection"
	"github.com/glowbook/selection-engine/internal/infra/storage/sessionstate"
)

// entry закэшированное значение поля выбора вместе со счётчиком ревизий,
// счётчик монотонно растёт при каждой синхронной записи
type entry struct {
	payload  json.RawMessage
	revision uint64
}

// Store рабочая копия выбора поверх двух уровней хранения.
// Запись подтверждается только после записи в уровень хранения,
// после этого изменение раздаётся подписчикам через шину.
//
// Кэшируются только поля долговечного уровня: выбранные дата и время
// живут в redis со своим TTL, их чтение всегда идет сквозь кэш.
type Store struct {
	durable DurableRepository
	session SessionRepository
	bus     EventBus
	logger  Logger

	mu    sync.Mutex
	cache map[string]map[domain.SelectionField]entry
}

func New(durable DurableRepository, session SessionRepository, eventBus EventBus, logger Logger) *Store {
	s := &Store{
		durable: durable,
		session: session,
		bus:     eventBus,
		logger:  logger,
		cache:   make(map[string]map[domain.SelectionField]entry),
	}

	// Чужая запись делает рабочую копию недостоверной: уведомление
	// выбрасывает поле, следующее чтение уйдет в уровень хранения.
	// Собственные публикации пропускаются, запись уже установила значение
	for _, field := range []domain.SelectionField{domain.FieldServices, domain.FieldProfessional} {
		eventBus.Subscribe(field, func(_ context.Context, evt bus.Event) {
			if evt.Origin == eventBus.InstanceID() {
				return
			}
			s.dropField(evt.SessionID, evt.Field)
		})
	}

	return s
}

// SetServices записывает полный список выбранных услуг (долговечный уровень)
func (s *Store) SetServices(ctx context.Context, sessionID string, services []domain.Service) error {
	payload, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("%w: services: %v", ErrEncodePayload, err)
	}

	if err := s.durable.Upsert(ctx, sessionID, domain.FieldServices, payload); err != nil {
		return fmt.Errorf("%w: services: %v", ErrWriteTier, err)
	}

	s.install(sessionID, domain.FieldServices, payload)
	s.publish(ctx, sessionID, domain.FieldServices)
	return nil
}

// GetServices возвращает (nil, nil), если услуги ещё не выбраны
func (s *Store) GetServices(ctx context.Context, sessionID string) ([]domain.Service, error) {
	payload, err := s.loadDurable(ctx, sessionID, domain.FieldServices)
	if err != nil || payload == nil {
		return nil, err
	}

	var services []domain.Service
	if err := json.Unmarshal(payload, &services); err != nil {
		return nil, fmt.Errorf("%w: services: %v", ErrDecodePayload, err)
	}
	return services, nil
}

// SetProfessional записывает выбранного мастера, список услуг не затрагивается
func (s *Store) SetProfessional(ctx context.Context, sessionID string, professional *domain.Professional) error {
	payload, err := json.Marshal(professional)
	if err != nil {
		return fmt.Errorf("%w: professional: %v", ErrEncodePayload, err)
	}

	if err := s.durable.Upsert(ctx, sessionID, domain.FieldProfessional, payload); err != nil {
		return fmt.Errorf("%w: professional: %v", ErrWriteTier, err)
	}

	s.install(sessionID, domain.FieldProfessional, payload)
	s.publish(ctx, sessionID, domain.FieldProfessional)
	return nil
}

func (s *Store) GetProfessional(ctx context.Context, sessionID string) (*domain.Professional, error) {
	payload, err := s.loadDurable(ctx, sessionID, domain.FieldProfessional)
	if err != nil || payload == nil {
		return nil, err
	}

	var professional domain.Professional
	if err := json.Unmarshal(payload, &professional); err != nil {
		return nil, fmt.Errorf("%w: professional: %v", ErrDecodePayload, err)
	}
	return &professional, nil
}

// SetDateTime записывает выбранный слот (сессионный уровень)
func (s *Store) SetDateTime(ctx context.Context, sessionID string, value *domain.SelectedDateTime) error {
	if err := s.session.SetDateTime(ctx, sessionID, value); err != nil {
		return fmt.Errorf("%w: datetime: %v", ErrWriteTier, err)
	}

	s.publish(ctx, sessionID, domain.FieldDateTime)
	return nil
}

// GetDateTime читает сессионный уровень напрямую: TTL записи
// принадлежит redis, рабочая копия его не переживает
func (s *Store) GetDateTime(ctx context.Context, sessionID string) (*domain.SelectedDateTime, error) {
	value, err := s.session.GetDateTime(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionstate.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: datetime: %v", ErrReadTier, err)
	}
	return value, nil
}

// ClearDateTime сбрасывает только выбранный слот, остальные поля сохраняются
func (s *Store) ClearDateTime(ctx context.Context, sessionID string) error {
	if err := s.session.DeleteDateTime(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: datetime: %v", ErrWriteTier, err)
	}

	s.publish(ctx, sessionID, domain.FieldDateTime)
	return nil
}

// Selection собирает составной снимок всех трёх полей
func (s *Store) Selection(ctx context.Context, sessionID string) (*domain.Selection, error) {
	services, err := s.GetServices(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	professional, err := s.GetProfessional(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	dateTime, err := s.GetDateTime(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &domain.Selection{
		Services:     services,
		Professional: professional,
		DateTime:     dateTime,
	}, nil
}

// Clear удаляет выбор целиком на обоих уровнях хранения.
// Удаление в долговечном уровне присоединяется к транзакции из контекста,
// если она там есть
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.durable.DeleteAll(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: durable: %v", ErrClear, err)
	}

	if err := s.session.DeleteDateTime(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: session: %v", ErrClear, err)
	}

	s.mu.Lock()
	delete(s.cache, sessionID)
	s.mu.Unlock()

	for _, field := range []domain.SelectionField{domain.FieldServices, domain.FieldProfessional, domain.FieldDateTime} {
		s.publish(ctx, sessionID, field)
	}
	return nil
}

// Hydrate асинхронно прогревает рабочую копию из долговечного уровня.
// Если за время чтения поле успели записать синхронно, прочитанное
// значение отбрасывается: побеждает последняя запись.
// Чтения живут дольше вызвавшего запроса, поэтому идут со своим контекстом
func (s *Store) Hydrate(_ context.Context, sessionID string) {
	seen := s.snapshotRevisions(sessionID)
	ctx := context.Background()

	go func() {
		type loaded struct {
			field   domain.SelectionField
			payload json.RawMessage
		}
		var results []loaded

		for _, field := range []domain.SelectionField{domain.FieldServices, domain.FieldProfessional} {
			payload, err := s.durable.Get(ctx, sessionID, field)
			if err != nil {
				if !errors.Is(err, storage.ErrRecordNotFound) {
					s.logger.Warn("Hydrate: failed to read durable tier, session=%s field=%s: %v", sessionID, field, err)
				}
				continue
			}
			results = append(results, loaded{field: field, payload: payload})
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for _, r := range results {
			current := s.cache[sessionID][r.field]
			if current.revision != seen[r.field] {
				s.logger.Info("Hydrate: discarding stale read, session=%s field=%s", sessionID, r.field)
				continue
			}
			s.installLocked(sessionID, r.field, r.payload, current.revision)
		}
	}()
}

// dropField выбрасывает поле из рабочей копии, уровни хранения не затрагиваются
func (s *Store) dropField(sessionID string, field domain.SelectionField) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.cache[sessionID]
	if !ok {
		return
	}
	delete(fields, field)
	if len(fields) == 0 {
		delete(s.cache, sessionID)
	}
}

func (s *Store) loadDurable(ctx context.Context, sessionID string, field domain.SelectionField) (json.RawMessage, error) {
	s.mu.Lock()
	cached, ok := s.cache[sessionID][field]
	s.mu.Unlock()

	if ok {
		if len(cached.payload) == 0 || string(cached.payload) == "null" {
			return nil, nil
		}
		return cached.payload, nil
	}

	payload, err := s.durable.Get(ctx, sessionID, field)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrReadTier, field, err)
	}
	return payload, nil
}

// install записывает значение в рабочую копию и поднимает ревизию поля
func (s *Store) install(sessionID string, field domain.SelectionField, payload json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.cache[sessionID][field]
	s.installLocked(sessionID, field, payload, current.revision+1)
}

func (s *Store) installLocked(sessionID string, field domain.SelectionField, payload json.RawMessage, revision uint64) {
	fields, ok := s.cache[sessionID]
	if !ok {
		fields = make(map[domain.SelectionField]entry)
		s.cache[sessionID] = fields
	}
	fields[field] = entry{payload: payload, revision: revision}
}

func (s *Store) snapshotRevisions(sessionID string) map[domain.SelectionField]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[domain.SelectionField]uint64)
	for _, field := range []domain.SelectionField{domain.FieldServices, domain.FieldProfessional} {
		seen[field] = s.cache[sessionID][field].revision
	}
	return seen
}

// publish раздаёт изменение подписчикам, запись к этому моменту уже
// подтверждена уровнем хранения, поэтому ошибка шины её не отменяет
func (s *Store) publish(ctx context.Context, sessionID string, field domain.SelectionField) {
	if err := s.bus.Publish(ctx, sessionID, field); err != nil {
		s.logger.Warn("publish: failed to propagate change, session=%s field=%s: %v", sessionID, field, err)
	}
}
