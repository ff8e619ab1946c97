package open_session

import (
	"context"

	"github.com/avdeev-m/TMS-BookingService/internal/service/sessions/models"
)

// SessionsService сервис walk-in сессий
type SessionsService interface {
	Open(ctx context.Context, venueID int64, req *models.OpenSessionRequest) (*models.SessionResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
