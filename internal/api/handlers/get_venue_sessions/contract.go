package get_venue_sessions

import (
	"context"

	"github.com/avdeev-m/TMS-BookingService/internal/service/sessions/models"
)

// SessionsService сервис walk-in сессий
type SessionsService interface {
	GetActiveSessions(ctx context.Context, venueID int64) (*models.SessionListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
