package selectionstore

import (
	"context"
	"encoding/json"

	"github.com/glowbook/selection-engine/internal/bus"
	"github.com/glowbook/selection-engine/internal/domain"
)

// DurableRepository долговечный уровень хранения (переживает закрытие вкладки)
// Используется для выбранных услуг и мастера
type DurableRepository interface {
	Upsert(ctx context.Context, sessionID string, field domain.SelectionField, payload json.RawMessage) error
	Get(ctx context.Context, sessionID string, field domain.SelectionField) (json.RawMessage, error)
	DeleteAll(ctx context.Context, sessionID string) error
}

// SessionRepository сессионный уровень хранения (очищается с концом сессии)
// Используется для выбранных даты и времени
type SessionRepository interface {
	SetDateTime(ctx context.Context, sessionID string, value *domain.SelectedDateTime) error
	GetDateTime(ctx context.Context, sessionID string) (*domain.SelectedDateTime, error)
	DeleteDateTime(ctx context.Context, sessionID string) error
}

// EventBus шина распространения изменений выбора
type EventBus interface {
	Publish(ctx context.Context, sessionID string, field domain.SelectionField) error
	Subscribe(field domain.SelectionField, handler bus.Handler) bus.Unsubscribe
	InstanceID() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
