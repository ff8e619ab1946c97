package check_availability

import (
	"context"
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований.
// CountOverlapping - авторитетная серверная проверка (предикат пересечения
// выполняется в БД); GetByTableAndDate - сырьё для локального пересчёта
// тем же предикатом при недоступности серверной проверки.
type ReservationRepository interface {
	CountOverlapping(ctx context.Context, tableID int64, date time.Time, start, end types.TimeString, excludeReservationID *int64) (int, error)
	GetByTableAndDate(ctx context.Context, tableID int64, date time.Time) ([]*domain.Reservation, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
