package table

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/pkg/dbmetrics"
	"github.com/avdeev-m/TMS-BookingService/pkg/psqlbuilder"
)

var tableColumns = []string{
	"id",
	"venue_id",
	"label",
	"capacity",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со столами площадки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория столов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает стол по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tableColumns...).
		From("tables").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Table
	var capacity sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.VenueID,
		&t.Label,
		&capacity,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan table: %v", ErrScanRow, err)
	}

	if capacity.Valid {
		c := int(capacity.Int64)
		t.Capacity = &c
	}

	return &t, nil
}

// GetActiveByVenue получает все активные столы площадки.
// Сортировка по вместимости нужна ранжированию best-fit: при равном
// приоритете меньший стол предлагается первым.
func (r *Repository) GetActiveByVenue(ctx context.Context, venueID int64) ([]*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tableColumns...).
		From("tables").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("capacity ASC NULLS LAST, label ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)
	for rows.Next() {
		var t domain.Table
		var capacity sql.NullInt64

		err := rows.Scan(
			&t.ID,
			&t.VenueID,
			&t.Label,
			&capacity,
			&t.IsActive,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByVenue - scan row: %v", ErrScanRow, err)
		}

		if capacity.Valid {
			c := int(capacity.Int64)
			t.Capacity = &c
		}

		tables = append(tables, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByVenue - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}
