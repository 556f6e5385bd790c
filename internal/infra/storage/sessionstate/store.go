package sessionstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glowbook/selection-engine/internal/domain"
)

// Store сессионный уровень хранения: данные, имеющие смысл только в рамках
// одной попытки бронирования (выбранные дата/время, ожидаемый платеж).
// Записи живут с TTL и исчезают вместе с сессией
type Store struct {
	rdb        *redis.Client
	sessionTTL time.Duration
}

// NewStore создает сессионное хранилище поверх redis
func NewStore(rdb *redis.Client, sessionTTL time.Duration) *Store {
	return &Store{rdb: rdb, sessionTTL: sessionTTL}
}

func dateTimeKey(sessionID string) string {
	return fmt.Sprintf("selection:%s:datetime", sessionID)
}

func pendingPaymentKey(sessionID string) string {
	return fmt.Sprintf("selection:%s:pending_payment", sessionID)
}

// SetDateTime записывает выбранные дату и время слота
func (s *Store) SetDateTime(ctx context.Context, sessionID string, value *domain.SelectedDateTime) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: SetDateTime - marshal: %v", ErrInternal, err)
	}
	if err := s.rdb.Set(ctx, dateTimeKey(sessionID), payload, s.sessionTTL).Err(); err != nil {
		return fmt.Errorf("%w: SetDateTime - redis set: %v", ErrInternal, err)
	}
	return nil
}

// GetDateTime читает выбранные дату и время слота
func (s *Store) GetDateTime(ctx context.Context, sessionID string) (*domain.SelectedDateTime, error) {
	payload, err := s.rdb.Get(ctx, dateTimeKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDateTime - redis get: %v", ErrInternal, err)
	}

	var value domain.SelectedDateTime
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, fmt.Errorf("%w: GetDateTime - unmarshal: %v", ErrInternal, err)
	}
	return &value, nil
}

// DeleteDateTime удаляет выбранные дату и время слота
func (s *Store) DeleteDateTime(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, dateTimeKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: DeleteDateTime - redis del: %v", ErrInternal, err)
	}
	return nil
}

// PendingPayment запись ожидаемого платежа депозита
type PendingPayment struct {
	CorrelationID string  `json:"correlationId"`
	Amount        float64 `json:"amount"`
	CreatedAt     int64   `json:"createdAt"` // unix seconds
}

// SetPendingPayment записывает ожидаемый платеж с собственным TTL
func (s *Store) SetPendingPayment(ctx context.Context, sessionID string, payment *PendingPayment, ttl time.Duration) error {
	payload, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("%w: SetPendingPayment - marshal: %v", ErrInternal, err)
	}
	if err := s.rdb.Set(ctx, pendingPaymentKey(sessionID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetPendingPayment - redis set: %v", ErrInternal, err)
	}
	return nil
}

// GetPendingPayment читает ожидаемый платеж
func (s *Store) GetPendingPayment(ctx context.Context, sessionID string) (*PendingPayment, error) {
	payload, err := s.rdb.Get(ctx, pendingPaymentKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingPayment - redis get: %v", ErrInternal, err)
	}

	var payment PendingPayment
	if err := json.Unmarshal(payload, &payment); err != nil {
		return nil, fmt.Errorf("%w: GetPendingPayment - unmarshal: %v", ErrInternal, err)
	}
	return &payment, nil
}

// DeletePendingPayment удаляет ожидаемый платеж
func (s *Store) DeletePendingPayment(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, pendingPaymentKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: DeletePendingPayment - redis del: %v", ErrInternal, err)
	}
	return nil
}
