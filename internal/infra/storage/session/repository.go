package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/pkg/dbmetrics"
	"github.com/avdeev-m/TMS-BookingService/pkg/psqlbuilder"
)

var sessionColumns = []string{
	"id",
	"venue_id",
	"table_id",
	"party_size",
	"activity_id",
	"opened_at",
	"closed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с walk-in сессиями (живыми посадками)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Open открывает новую сессию на столе
func (r *Repository) Open(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"venue_id",
			"table_id",
			"party_size",
			"activity_id",
			"opened_at",
		).
		Values(
			s.VenueID,
			s.TableID,
			s.PartySize,
			s.ActivityID,
			s.OpenedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Open - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Open - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// Close закрывает активную сессию. Сессия заканчивается только явным
// закрытием, у неё нет планового времени окончания.
func (r *Repository) Close(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("closed_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"closed_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Close - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Close - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Close - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо сессии нет, либо она уже закрыта - уточняем
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrSessionAlreadyClosed
	}

	return nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Session
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.VenueID,
		&s.TableID,
		&s.PartySize,
		&s.ActivityID,
		&s.OpenedAt,
		&s.ClosedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetActiveByVenue получает все активные сессии площадки
func (r *Repository) GetActiveByVenue(ctx context.Context, venueID int64) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Eq{"closed_at": nil}).
		OrderBy("opened_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		var s domain.Session
		err := rows.Scan(
			&s.ID,
			&s.VenueID,
			&s.TableID,
			&s.PartySize,
			&s.ActivityID,
			&s.OpenedAt,
			&s.ClosedAt,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByVenue - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByVenue - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
