package find_tables

import (
	"context"
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	"github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CountOverlapping(ctx context.Context, tableID int64, date time.Time, start, end types.TimeString, excludeReservationID *int64) (int, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetActiveByVenue(ctx context.Context, venueID int64) ([]*domain.Table, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
