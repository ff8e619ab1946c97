package detect_conflicts

import (
	"context"

	detectConflicts "github.com/avdeev-m/TMS-BookingService/internal/usecase/detect_conflicts"
)

// DetectConflictsUseCase use case поиска конфликтов расписания
type DetectConflictsUseCase interface {
	Execute(ctx context.Context, req *detectConflicts.Request) (*detectConflicts.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
