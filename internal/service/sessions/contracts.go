package sessions

import (
	"context"
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
)

// SessionRepository интерфейс репозитория walk-in сессий
type SessionRepository interface {
	Open(ctx context.Context, s *domain.Session) (*domain.Session, error)
	Close(ctx context.Context, id int64, at time.Time) error
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	GetActiveByVenue(ctx context.Context, venueID int64) ([]*domain.Session, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
