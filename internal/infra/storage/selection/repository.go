package selection

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/pkg/dbmetrics"
	"github.com/glowbook/selection-engine/pkg/psqlbuilder"
)

const tableName = "selection_records"

// Repository долговечный уровень хранения выбора: нормализованные записи
// выбранной услуги (списка услуг) и мастера, переживающие закрытие вкладки.
// Ключ составной (session_id, field); payload всегда нормализованная запись,
// никогда сырой сетевой ответ
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория выбора
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert записывает значение поля выбора сессии
// Запись подтверждается только после фиксации в хранилище: вызывающий
// не должен публиковать уведомления до возврата из этого метода
func (r *Repository) Upsert(ctx context.Context, sessionID string, field domain.SelectionField, payload json.RawMessage) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("session_id", "field", "payload").
		Values(sessionID, string(field), []byte(payload)).
		Suffix(`ON CONFLICT (session_id, field) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Get читает значение поля выбора сессии
func (r *Repository) Get(ctx context.Context, sessionID string, field domain.SelectionField) (json.RawMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("payload").
		From(tableName).
		Where(squirrel.Eq{"session_id": sessionID, "field": string(field)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var payload []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan payload: %v", ErrScanRow, err)
	}

	return payload, nil
}

// DeleteAll удаляет все поля выбора сессии
// Отсутствие записей не считается ошибкой: очистка идемпотентна
func (r *Repository) DeleteAll(ctx context.Context, sessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteAll - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteAll - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
