package override

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/pkg/dbmetrics"
	"github.com/glowbook/selection-engine/pkg/psqlbuilder"
)

const tableName = "staff_overrides"

var columns = []string{
	"id",
	"service_id",
	"professional_id",
	"name",
	"price",
	"duration_minutes",
}

// Repository репозиторий переопределений персонала для пар {услуга, мастер}
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория переопределений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает переопределение или обновляет существующее для той же пары
func (r *Repository) Upsert(ctx context.Context, o *domain.StaffOverride) (*domain.StaffOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"service_id",
			"professional_id",
			"name",
			"price",
			"duration_minutes",
		).
		Values(
			o.ServiceID,
			o.ProfessionalID,
			o.Name,
			o.Price,
			o.DurationMinutes,
		).
		Suffix(`ON CONFLICT (service_id, professional_id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			duration_minutes = EXCLUDED.duration_minutes,
			updated_at = NOW()
			RETURNING id`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&o.ID); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return o, nil
}

// GetByServiceAndProfessional получает переопределение для точной пары {услуга, мастер}
func (r *Repository) GetByServiceAndProfessional(ctx context.Context, serviceID, professionalID string) (*domain.StaffOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"service_id": serviceID, "professional_id": professionalID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceAndProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.StaffOverride
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.ServiceID,
		&o.ProfessionalID,
		&o.Name,
		&o.Price,
		&o.DurationMinutes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceAndProfessional - scan override: %v", ErrScanRow, err)
	}

	return &o, nil
}

// GetAllByService получает все переопределения услуги по всем мастерам
func (r *Repository) GetAllByService(ctx context.Context, serviceID string) ([]*domain.StaffOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("professional_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.StaffOverride, 0)

	for rows.Next() {
		var o domain.StaffOverride
		if err := rows.Scan(
			&o.ID,
			&o.ServiceID,
			&o.ProfessionalID,
			&o.Name,
			&o.Price,
			&o.DurationMinutes,
		); err != nil {
			return nil, fmt.Errorf("%w: GetAllByService - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByService - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Delete удаляет переопределение пары {услуга, мастер}
func (r *Repository) Delete(ctx context.Context, serviceID, professionalID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"service_id": serviceID, "professional_id": professionalID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}
