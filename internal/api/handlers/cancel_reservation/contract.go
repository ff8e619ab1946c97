package cancel_reservation

import (
	"context"

	"github.com/avdeev-m/TMS-BookingService/internal/service/reservations/models"
)

// ReservationsService сервис бронирований
type ReservationsService interface {
	Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
