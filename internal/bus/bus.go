package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/glowbook/selection-engine/internal/domain"
)

// Event уведомление об изменении одного поля выбора сессии
type Event struct {
	SessionID string                `json:"sessionId"`
	Field     domain.SelectionField `json:"field"`
	// Origin идентификатор инстанса-писателя; на кросс-инстансном канале
	// собственные публикации отбрасываются
	Origin string `json:"origin"`
}

type subscription struct {
	id      uint64
	handler Handler
}

// Bus шина распространения изменений выбора с двумя каналами доставки:
//
//   - внутрипроцессным: полностью синхронным, обработчики отрабатывают
//     до возврата из Publish;
//   - кросс-инстансным (redis pub/sub): асинхронным, доставляющим только
//     на чужие инстансы. Самоуведомления на нем не ожидаются и покрыты
//     внутрипроцессным каналом.
//
// Порядок доставки между каналами не гарантируется: медленная кросс-инстансная
// доставка может обогнать более свежую локальную запись, поэтому подписчики
// обязаны перечитывать каноническое состояние, а не доверять факту уведомления
type Bus struct {
	instanceID string
	channel    string
	rdb        *redis.Client
	logger     Logger
	metrics    MetricsRecorder

	mu     sync.RWMutex
	nextID uint64
	subs   map[domain.SelectionField][]subscription
}

// New создает шину. rdb может быть nil: тогда работает только
// внутрипроцессный канал (удобно в тестах и однонодовой конфигурации)
func New(rdb *redis.Client, channel string, logger Logger, metrics MetricsRecorder) *Bus {
	return &Bus{
		instanceID: uuid.NewString(),
		channel:    channel,
		rdb:        rdb,
		logger:     logger,
		metrics:    metrics,
		subs:       make(map[domain.SelectionField][]subscription),
	}
}

// InstanceID возвращает идентификатор этого инстанса шины
func (b *Bus) InstanceID() string {
	return b.instanceID
}

// Subscribe подписывает обработчик на изменения поля
// Возвращает функцию отписки
func (b *Bus) Subscribe(field domain.SelectionField, handler Handler) Unsubscribe {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[field] = append(b.subs[field], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[field]
		for i, sub := range subs {
			if sub.id == id {
				b.subs[field] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish доставляет событие локальным подписчикам синхронно,
// затем публикует его в кросс-инстансный канал
func (b *Bus) Publish(ctx context.Context, sessionID string, field domain.SelectionField) error {
	evt := Event{
		SessionID: sessionID,
		Field:     field,
		Origin:    b.instanceID,
	}

	b.dispatchLocal(ctx, evt)
	if b.metrics != nil {
		b.metrics.IncBusEvent("local", string(field))
	}

	if b.rdb == nil {
		return nil
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("bus: marshal event: %w", err)
	}

	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("bus: publish to %s: %w", b.channel, err)
	}
	if b.metrics != nil {
		b.metrics.IncBusEvent("cross_instance", string(field))
	}

	return nil
}

func (b *Bus) dispatchLocal(ctx context.Context, evt Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[evt.Field]))
	copy(subs, b.subs[evt.Field])
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(ctx, evt)
	}
}

// Run слушает кросс-инстансный канал до отмены контекста
// Собственные публикации (Origin == InstanceID) отбрасываются
func (b *Bus) Run(ctx context.Context) error {
	if b.rdb == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	pubsub := b.rdb.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				b.logger.Warn("Bus: failed to decode cross-instance event: %v", err)
				continue
			}
			if evt.Origin == b.instanceID {
				continue
			}

			b.dispatchLocal(ctx, evt)
		}
	}
}
