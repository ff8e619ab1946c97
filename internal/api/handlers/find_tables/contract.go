package find_tables

import (
	"context"

	findTables "github.com/avdeev-m/TMS-BookingService/internal/usecase/find_tables"
)

type FindTablesUseCase interface {
	Execute(ctx context.Context, req *findTables.Request) (*findTables.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
