package selectionstore

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/selection-engine/internal/bus"
	"github.com/glowbook/selection-engine/internal/domain"
	storage "github.com/glowbook/selection-engine/internal/infra/storage/selection"
	"github.com/glowbook/selection-engine/internal/infra/storage/sessionstate"
	"github.com/glowbook/selection-engine/pkg/ptr"
)

type testLogger struct{}

func (testLogger) Info(format string, v ...interface{})  {}
func (testLogger) Warn(format string, v ...interface{})  {}
func (testLogger) Error(format string, v ...interface{}) {}

type fakeDurable struct {
	mu      sync.Mutex
	records map[string]map[domain.SelectionField]json.RawMessage
	gets    int
	// gate, если задан, блокирует Get до закрытия канала
	gate chan struct{}
}

func newFakeDurable() *fakeDurable {
	return &fakeDurable{records: make(map[string]map[domain.SelectionField]json.RawMessage)}
}

func (f *fakeDurable) Upsert(_ context.Context, sessionID string, field domain.SelectionField, payload json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.records[sessionID] == nil {
		f.records[sessionID] = make(map[domain.SelectionField]json.RawMessage)
	}
	f.records[sessionID][field] = payload
	return nil
}

func (f *fakeDurable) Get(_ context.Context, sessionID string, field domain.SelectionField) (json.RawMessage, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	payload, ok := f.records[sessionID][field]
	if !ok {
		return nil, storage.ErrRecordNotFound
	}
	return payload, nil
}

func (f *fakeDurable) DeleteAll(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, sessionID)
	return nil
}

func (f *fakeDurable) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

type fakeSession struct {
	mu     sync.Mutex
	values map[string]*domain.SelectedDateTime
}

func newFakeSession() *fakeSession {
	return &fakeSession{values: make(map[string]*domain.SelectedDateTime)}
}

func (f *fakeSession) SetDateTime(_ context.Context, sessionID string, value *domain.SelectedDateTime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[sessionID] = value
	return nil
}

func (f *fakeSession) GetDateTime(_ context.Context, sessionID string) (*domain.SelectedDateTime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.values[sessionID]
	if !ok {
		return nil, sessionstate.ErrRecordNotFound
	}
	return value, nil
}

func (f *fakeSession) DeleteDateTime(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, sessionID)
	return nil
}

type fakeBus struct {
	mu       sync.Mutex
	events   []domain.SelectionField
	handlers map[domain.SelectionField][]bus.Handler
}

func (f *fakeBus) Publish(_ context.Context, sessionID string, field domain.SelectionField) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, field)
	return nil
}

func (f *fakeBus) Subscribe(field domain.SelectionField, handler bus.Handler) bus.Unsubscribe {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.handlers == nil {
		f.handlers = make(map[domain.SelectionField][]bus.Handler)
	}
	f.handlers[field] = append(f.handlers[field], handler)
	return func() {}
}

func (f *fakeBus) InstanceID() string { return "instance-local" }

// emit доставляет событие подписчикам так, как это делает кросс-инстансный канал
func (f *fakeBus) emit(sessionID string, field domain.SelectionField, origin string) {
	f.mu.Lock()
	handlers := append([]bus.Handler(nil), f.handlers[field]...)
	f.mu.Unlock()
	for _, handler := range handlers {
		handler(context.Background(), bus.Event{SessionID: sessionID, Field: field, Origin: origin})
	}
}

func (f *fakeBus) published() []domain.SelectionField {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.SelectionField(nil), f.events...)
}

func newTestStore() (*Store, *fakeDurable, *fakeSession, *fakeBus) {
	durable := newFakeDurable()
	session := newFakeSession()
	eventBus := &fakeBus{}
	return New(durable, session, eventBus, testLogger{}), durable, session, eventBus
}

func TestStore_ServicesRoundTrip(t *testing.T) {
	store, _, _, bus := newTestStore()
	ctx := context.Background()

	services := []domain.Service{
		{ID: "svc-1", Name: "Стрижка", Price: ptr.Ptr(1500.0)},
		{ID: "svc-2", Name: "Укладка", DurationMinutes: ptr.Ptr(30)},
	}
	require.NoError(t, store.SetServices(ctx, "sess-1", services))

	got, err := store.GetServices(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, services, got)

	assert.Equal(t, []domain.SelectionField{domain.FieldServices}, bus.published())
}

func TestStore_GetServices_Empty(t *testing.T) {
	store, _, _, _ := newTestStore()

	got, err := store.GetServices(context.Background(), "sess-absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SetProfessionalDoesNotTouchServices(t *testing.T) {
	store, durable, _, _ := newTestStore()
	ctx := context.Background()

	services := []domain.Service{{ID: "svc-1", Name: "Стрижка"}}
	require.NoError(t, store.SetServices(ctx, "sess-1", services))
	require.NoError(t, store.SetProfessional(ctx, "sess-1", &domain.Professional{ID: "pro-1", Name: "Анна"}))

	got, err := store.GetServices(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, services, got)

	// И в долговечном уровне поле услуг не перезаписано
	payload := durable.records["sess-1"][domain.FieldServices]
	var fromTier []domain.Service
	require.NoError(t, json.Unmarshal(payload, &fromTier))
	assert.Equal(t, services, fromTier)
}

func TestStore_DateTimeSessionTier(t *testing.T) {
	store, _, session, _ := newTestStore()
	ctx := context.Background()

	value := &domain.SelectedDateTime{Date: "2026-09-01", StartTime: "10:30"}
	require.NoError(t, store.SetDateTime(ctx, "sess-1", value))

	got, err := store.GetDateTime(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, value, got)

	// Значение ушло именно в сессионный уровень
	assert.Equal(t, value, session.values["sess-1"])

	require.NoError(t, store.ClearDateTime(ctx, "sess-1"))
	got, err = store.GetDateTime(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NotContains(t, session.values, "sess-1")
}

func TestStore_GetDateTime_ExpiredRecordIsGone(t *testing.T) {
	store, _, session, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.SetDateTime(ctx, "sess-1", &domain.SelectedDateTime{Date: "2026-09-01", StartTime: "10:30"}))

	// Запись истекла по TTL сессионного уровня, инстанс-писатель
	// не должен продолжать отдавать её из рабочей копии
	require.NoError(t, session.DeleteDateTime(ctx, "sess-1"))

	got, err := store.GetDateTime(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetDateTime_AbsentIsNotError(t *testing.T) {
	store, _, _, _ := newTestStore()

	got, err := store.GetDateTime(context.Background(), "sess-absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Selection_Composite(t *testing.T) {
	store, _, _, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.SetServices(ctx, "sess-1", []domain.Service{{ID: "svc-1", Name: "Стрижка"}}))
	require.NoError(t, store.SetProfessional(ctx, "sess-1", &domain.Professional{ID: "pro-1", Name: "Анна"}))
	require.NoError(t, store.SetDateTime(ctx, "sess-1", &domain.SelectedDateTime{Date: "2026-09-01", StartTime: "10:00"}))

	selection, err := store.Selection(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, selection.HasServices())
	assert.True(t, selection.HasProfessional())
	assert.True(t, selection.HasDateTime())
	assert.Equal(t, "pro-1", selection.Professional.ID)
}

func TestStore_Clear(t *testing.T) {
	store, durable, session, bus := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.SetServices(ctx, "sess-1", []domain.Service{{ID: "svc-1", Name: "Стрижка"}}))
	require.NoError(t, store.SetDateTime(ctx, "sess-1", &domain.SelectedDateTime{Date: "2026-09-01", StartTime: "10:00"}))

	require.NoError(t, store.Clear(ctx, "sess-1"))

	selection, err := store.Selection(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, selection.HasServices())
	assert.False(t, selection.HasProfessional())
	assert.False(t, selection.HasDateTime())

	assert.Empty(t, durable.records)
	assert.Empty(t, session.values)

	// Очистка уведомляет обо всех трех полях
	events := bus.published()
	assert.Contains(t, events, domain.FieldServices)
	assert.Contains(t, events, domain.FieldProfessional)
	assert.Contains(t, events, domain.FieldDateTime)
}

func TestStore_HydrateWarmsCache(t *testing.T) {
	store, durable, _, _ := newTestStore()
	ctx := context.Background()

	payload, err := json.Marshal([]domain.Service{{ID: "svc-1", Name: "Стрижка"}})
	require.NoError(t, err)
	require.NoError(t, durable.Upsert(ctx, "sess-1", domain.FieldServices, payload))

	store.Hydrate(ctx, "sess-1")

	// Рабочая копия прогрета, когда чтение возвращает данные, не трогая уровень хранения
	require.Eventually(t, func() bool {
		before := durable.getCount()
		services, err := store.GetServices(ctx, "sess-1")
		if err != nil || len(services) != 1 {
			return false
		}
		return durable.getCount() == before
	}, time.Second, 5*time.Millisecond)
}

func TestStore_HydrateDiscardsStaleRead(t *testing.T) {
	store, durable, _, _ := newTestStore()
	ctx := context.Background()

	stale, err := json.Marshal([]domain.Service{{ID: "svc-old", Name: "Старая"}})
	require.NoError(t, err)
	require.NoError(t, durable.Upsert(ctx, "sess-1", domain.FieldServices, stale))

	// Чтения гидратации зависают на воротах, пока идет синхронная запись
	gate := make(chan struct{})
	durable.gate = gate
	store.Hydrate(ctx, "sess-1")

	fresh := []domain.Service{{ID: "svc-new", Name: "Новая"}}
	require.NoError(t, store.SetServices(ctx, "sess-1", fresh))

	close(gate)

	// Устаревшее чтение отброшено: побеждает последняя запись
	require.Never(t, func() bool {
		services, err := store.GetServices(ctx, "sess-1")
		return err != nil || len(services) != 1 || services[0].ID != "svc-new"
	}, 200*time.Millisecond, 10*time.Millisecond)
}

func TestStore_ForeignEventDropsCachedField(t *testing.T) {
	store, durable, _, eventBus := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.SetServices(ctx, "sess-1", []domain.Service{{ID: "svc-1", Name: "Стрижка"}}))
	require.NoError(t, store.SetProfessional(ctx, "sess-1", &domain.Professional{ID: "pro-1", Name: "Анна"}))

	// Другой инстанс переписал услуги напрямую в долговечном уровне
	fresh, err := json.Marshal([]domain.Service{{ID: "svc-2", Name: "Укладка"}})
	require.NoError(t, err)
	require.NoError(t, durable.Upsert(ctx, "sess-1", domain.FieldServices, fresh))

	eventBus.emit("sess-1", domain.FieldServices, "instance-remote")

	// Следующее чтение услуг уходит в уровень хранения и видит чужую запись
	services, err := store.GetServices(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "svc-2", services[0].ID)

	// Остальные поля сессии уведомление не затронуло
	before := durable.getCount()
	professional, err := store.GetProfessional(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, professional)
	assert.Equal(t, "pro-1", professional.ID)
	assert.Equal(t, before, durable.getCount())
}

func TestStore_OwnEventKeepsCache(t *testing.T) {
	store, durable, _, eventBus := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.SetServices(ctx, "sess-1", []domain.Service{{ID: "svc-1", Name: "Стрижка"}}))

	// Собственная публикация возвращается синхронным локальным каналом
	// и не должна выбрасывать только что установленное значение
	eventBus.emit("sess-1", domain.FieldServices, eventBus.InstanceID())

	before := durable.getCount()
	services, err := store.GetServices(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, before, durable.getCount())
}

func TestStore_CrossInstanceWriteInvalidatesPeerCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdbA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rdbB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdbA.Close()
		rdbB.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	busA := bus.New(rdbA, "selection-events", testLogger{}, nil)
	busB := bus.New(rdbB, "selection-events", testLogger{}, nil)

	// Общий долговечный уровень, у каждого инстанса своя рабочая копия
	durable := newFakeDurable()
	storeA := New(durable, newFakeSession(), busA, testLogger{})
	storeB := New(durable, newFakeSession(), busB, testLogger{})

	go busA.Run(ctx)
	go busB.Run(ctx)

	// Даем подпискам установиться
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, storeA.SetServices(ctx, "sess-1", []domain.Service{{ID: "svc-old", Name: "Старая"}}))
	require.NoError(t, storeB.SetServices(ctx, "sess-1", []domain.Service{{ID: "svc-new", Name: "Новая"}}))

	// Инстанс A сверяется с каноническим состоянием после чужой записи
	require.Eventually(t, func() bool {
		services, err := storeA.GetServices(ctx, "sess-1")
		return err == nil && len(services) == 1 && services[0].ID == "svc-new"
	}, 2*time.Second, 10*time.Millisecond)
}
