package find_tables

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// Request модель запроса подбора столов под интервал и размер компании
type Request struct {
	VenueID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	PartySize int
}

// Response модель ответа с ранжированным списком столов
type Response struct {
	Tables []RankedTable
}

// RankedTable стол, подходящий под запрос, с признаками качества подбора.
// Порядок в списке: точное совпадение вместимости, затем вместимость
// partySize+1, затем по возрастанию вместимости.
type RankedTable struct {
	TableID    int64
	Label      string
	Capacity   int
	IsExactFit bool
	IsTightFit bool
}
