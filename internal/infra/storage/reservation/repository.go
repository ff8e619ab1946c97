package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/pkg/dbmetrics"
	"github.com/avdeev-m/TMS-BookingService/pkg/psqlbuilder"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

var reservationColumns = []string{
	"id",
	"venue_id",
	"table_id",
	"guest_name",
	"guest_phone",
	"party_size",
	"reservation_date",
	"start_time",
	"duration_minutes",
	"status",
	"activity_id",
	"source",
	"notes",
	"created_by",
	"confirmed_at",
	"arrived_at",
	"seated_at",
	"completed_at",
	"cancelled_at",
	"no_show_at",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями столов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value),
// использует её - создание с проверкой доступности стола обязано выполняться
// внутри сериализуемой транзакции, иначе возможна гонка двух одновременных
// бронирований одного интервала.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"venue_id",
			"table_id",
			"guest_name",
			"guest_phone",
			"party_size",
			"reservation_date",
			"start_time",
			"duration_minutes",
			"status",
			"activity_id",
			"source",
			"notes",
			"created_by",
		).
		Values(
			res.VenueID,
			res.TableID,
			res.GuestName,
			res.GuestPhone,
			res.PartySize,
			res.Date,
			res.StartTime,
			res.DurationMinutes,
			res.Status,
			res.ActivityID,
			res.Source,
			res.Notes,
			res.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByTableAndDate получает бронирования стола на конкретную дату,
// занимающие стол (терминальные cancelled/no-show исключаются).
//
// Если вызов происходит внутри транзакции, строки блокируются FOR UPDATE:
// это и есть scoped exclusivity по паре (стол, дата) на время
// повторной проверки и вставки при создании бронирования.
func (r *Repository) GetByTableAndDate(ctx context.Context, tableID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"table_id": tableID}).
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.NotEq{"status": nonOccupyingStatusStrings()}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTableAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTableAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CountOverlapping подсчитывает занимающие стол бронирования, пересекающиеся
// с интервалом [start, end) на указанную дату. Предикат пересечения выполнен
// на стороне БД и в точности повторяет domain.Overlaps: строгие неравенства,
// граничные интервалы не конфликтуют.
func (r *Repository) CountOverlapping(
	ctx context.Context,
	tableID int64,
	date time.Time,
	start, end types.TimeString,
	excludeReservationID *int64,
) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"table_id": tableID}).
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.NotEq{"status": nonOccupyingStatusStrings()}).
		Where(squirrel.Expr("start_time < ?::time", end.String())).
		Where(squirrel.Expr("start_time + make_interval(mins => duration_minutes) > ?::time", start.String()))

	if excludeReservationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeReservationID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - execute query: %v", ErrExecQuery, err)
	}

	return count, nil
}

// GetByVenueWithFilter получает бронирования площадки с гибкой фильтрацией
// по столу, периоду, статусу и включению терминальных статусов
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.TableID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"table_id": *filter.TableID})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeTerminal {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": nonOccupyingStatusStrings()})
	}

	// Для выборки на один день сортируем по времени начала, иначе сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByGuestPhone получает историю бронирований гостя по номеру телефона
func (r *Repository) GetByGuestPhone(ctx context.Context, phone string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"guest_phone": phone}).
		OrderBy("reservation_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestPhone - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования, проставляя выделенную
// временную метку перехода (confirmed_at, arrived_at и т.д.)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, ok := statusTimestampColumn(status)
	if !ok {
		return fmt.Errorf("%w: UpdateStatus - no timestamp column for status %s", ErrInvalidStatus, status)
	}

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set(column, at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины.
// Отмена - это статус, а не физическое удаление строки.
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// statusTimestampColumn возвращает колонку временной метки для статуса
func statusTimestampColumn(status domain.ReservationStatus) (string, bool) {
	switch status {
	case domain.StatusConfirmed:
		return "confirmed_at", true
	case domain.StatusArrived:
		return "arrived_at", true
	case domain.StatusSeated:
		return "seated_at", true
	case domain.StatusCompleted:
		return "completed_at", true
	case domain.StatusNoShow:
		return "no_show_at", true
	case domain.StatusCancelledByGuest, domain.StatusCancelledByVenue:
		return "cancelled_at", true
	default:
		return "", false
	}
}

func nonOccupyingStatusStrings() []string {
	statuses := make([]string, len(domain.NonOccupyingStatuses))
	for i, s := range domain.NonOccupyingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.VenueID,
		&res.TableID,
		&res.GuestName,
		&res.GuestPhone,
		&res.PartySize,
		&res.Date,
		&res.StartTime,
		&res.DurationMinutes,
		&res.Status,
		&res.ActivityID,
		&res.Source,
		&res.Notes,
		&res.CreatedBy,
		&res.ConfirmedAt,
		&res.ArrivedAt,
		&res.SeatedAt,
		&res.CompletedAt,
		&res.CancelledAt,
		&res.NoShowAt,
		&res.CancellationReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
