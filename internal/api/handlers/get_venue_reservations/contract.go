package get_venue_reservations

import (
	"context"

	"github.com/avdeev-m/TMS-BookingService/internal/service/reservations/models"
)

// ReservationsService сервис бронирований
type ReservationsService interface {
	GetVenueReservations(ctx context.Context, req *models.GetVenueReservationsRequest) (*models.ReservationListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
