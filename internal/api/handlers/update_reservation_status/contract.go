package update_reservation_status

import (
	"context"

	"github.com/avdeev-m/TMS-BookingService/internal/service/reservations/models"
)

// ReservationsService сервис бронирований
type ReservationsService interface {
	UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
