package completed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/glowbook/selection-engine/internal/domain"
	"github.com/glowbook/selection-engine/pkg/dbmetrics"
	"github.com/glowbook/selection-engine/pkg/psqlbuilder"
)

const tableName = "completed_bookings"

// Repository репозиторий денормализованных снимков завершенных бронирований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория снимков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает снимок завершенного бронирования
// Вызывается внутри сериализуемой транзакции вместе с очисткой
// долговечного уровня выбора
func (r *Repository) Create(ctx context.Context, b *domain.CompletedBooking) (*domain.CompletedBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"session_id",
			"correlation_id",
			"salon_id",
			"service_ids",
			"service_names",
			"duration_minutes",
			"total_price",
			"deposit_amount",
			"professional_id",
			"professional_name",
			"booking_date",
			"start_time",
		).
		Values(
			b.SessionID,
			b.CorrelationID,
			b.SalonID,
			pq.Array(b.ServiceIDs),
			pq.Array(b.ServiceNames),
			b.DurationMinutes,
			b.TotalPrice,
			b.DepositAmount,
			b.ProfessionalID,
			b.ProfessionalName,
			b.Date,
			b.StartTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	return b, nil
}

// GetByCorrelationID читает снимок по идентификатору корреляции платежа
func (r *Repository) GetByCorrelationID(ctx context.Context, correlationID string) (*domain.CompletedBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"session_id",
		"correlation_id",
		"salon_id",
		"service_ids",
		"service_names",
		"duration_minutes",
		"total_price",
		"deposit_amount",
		"professional_id",
		"professional_name",
		"booking_date",
		"start_time",
		"created_at",
	).
		From(tableName).
		Where(squirrel.Eq{"correlation_id": correlationID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCorrelationID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.CompletedBooking
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.SessionID,
		&b.CorrelationID,
		&b.SalonID,
		pq.Array(&b.ServiceIDs),
		pq.Array(&b.ServiceNames),
		&b.DurationMinutes,
		&b.TotalPrice,
		&b.DepositAmount,
		&b.ProfessionalID,
		&b.ProfessionalName,
		&b.Date,
		&b.StartTime,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCorrelationID - scan booking: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	return &b, nil
}
