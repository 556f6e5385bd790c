package bus

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/selection-engine/internal/domain"
)

type testLogger struct{}

func (testLogger) Info(format string, v ...interface{})  {}
func (testLogger) Warn(format string, v ...interface{})  {}
func (testLogger) Error(format string, v ...interface{}) {}

func TestBus_LocalDeliveryIsSynchronous(t *testing.T) {
	b := New(nil, "selection-events", testLogger{}, nil)

	var delivered []Event
	b.Subscribe(domain.FieldServices, func(ctx context.Context, evt Event) {
		delivered = append(delivered, evt)
	})

	err := b.Publish(context.Background(), "sess-1", domain.FieldServices)
	require.NoError(t, err)

	// Обработчик отработал до возврата из Publish, без ожиданий
	require.Len(t, delivered, 1)
	assert.Equal(t, "sess-1", delivered[0].SessionID)
	assert.Equal(t, domain.FieldServices, delivered[0].Field)
	assert.Equal(t, b.InstanceID(), delivered[0].Origin)
}

func TestBus_SubscribeFiltersByField(t *testing.T) {
	b := New(nil, "selection-events", testLogger{}, nil)

	var services, professionals int
	b.Subscribe(domain.FieldServices, func(ctx context.Context, evt Event) { services++ })
	b.Subscribe(domain.FieldProfessional, func(ctx context.Context, evt Event) { professionals++ })

	require.NoError(t, b.Publish(context.Background(), "sess-1", domain.FieldServices))
	require.NoError(t, b.Publish(context.Background(), "sess-1", domain.FieldServices))
	require.NoError(t, b.Publish(context.Background(), "sess-1", domain.FieldProfessional))

	assert.Equal(t, 2, services)
	assert.Equal(t, 1, professionals)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New(nil, "selection-events", testLogger{}, nil)

	calls := 0
	unsubscribe := b.Subscribe(domain.FieldDateTime, func(ctx context.Context, evt Event) { calls++ })

	require.NoError(t, b.Publish(context.Background(), "sess-1", domain.FieldDateTime))
	unsubscribe()
	require.NoError(t, b.Publish(context.Background(), "sess-1", domain.FieldDateTime))

	assert.Equal(t, 1, calls)
}

func TestBus_CrossInstanceDelivery(t *testing.T) {
	mr := miniredis.RunT(t)

	rdbA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rdbB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdbA.Close()
	defer rdbB.Close()

	busA := New(rdbA, "selection-events", testLogger{}, nil)
	busB := New(rdbB, "selection-events", testLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var receivedOnB []Event
	busB.Subscribe(domain.FieldServices, func(ctx context.Context, evt Event) {
		mu.Lock()
		receivedOnB = append(receivedOnB, evt)
		mu.Unlock()
	})

	var selfNotified int
	busA.Subscribe(domain.FieldServices, func(ctx context.Context, evt Event) {
		// Локальный канал busA, сюда событие приходит ровно один раз
		mu.Lock()
		selfNotified++
		mu.Unlock()
	})

	go busA.Run(ctx)
	go busB.Run(ctx)

	// Даем подпискам установиться
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, busA.Publish(context.Background(), "sess-1", domain.FieldServices))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(receivedOnB) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "sess-1", receivedOnB[0].SessionID)
	assert.Equal(t, busA.InstanceID(), receivedOnB[0].Origin)

	// Кросс-инстансный канал не дублирует локальную доставку на инстансе-писателе
	assert.Equal(t, 1, selfNotified)
}

func TestBus_RunStopsOnContextCancel(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	b := New(rdb, "selection-events", testLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancel")
	}
}
