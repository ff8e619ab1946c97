package detect_turnover

import (
	"context"

	detectTurnover "github.com/avdeev-m/TMS-BookingService/internal/usecase/detect_turnover"
)

// DetectTurnoverUseCase use case поиска рисков несвоевременного освобождения столов
type DetectTurnoverUseCase interface {
	Execute(ctx context.Context, req *detectTurnover.Request) (*detectTurnover.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
