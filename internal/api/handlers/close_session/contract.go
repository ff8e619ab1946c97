package close_session

import (
	"context"

	"github.com/avdeev-m/TMS-BookingService/internal/service/sessions/models"
)

// SessionsService сервис walk-in сессий
type SessionsService interface {
	Close(ctx context.Context, sessionID int64) (*models.SessionResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
