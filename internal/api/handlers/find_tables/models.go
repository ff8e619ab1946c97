package find_tables

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	findTables "github.com/avdeev-m/TMS-BookingService/internal/usecase/find_tables"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// FittingTablesResponse HTTP response model
type FittingTablesResponse struct {
	VenueID   int64           `json:"venueId"`
	Date      string          `json:"date"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	PartySize int             `json:"partySize"`
	Tables    []TableResponse `json:"tables"`
}

// TableResponse стол в порядке качества подбора
type TableResponse struct {
	TableID    int64  `json:"tableId"`
	Label      string `json:"label"`
	Capacity   int    `json:"capacity"`
	IsExactFit bool   `json:"isExactFit"`
	IsTightFit bool   `json:"isTightFit"`
}

// ToUseCaseRequest собирает модель use case из параметров запроса
func ToUseCaseRequest(venueID int64, dateStr, startStr, endStr string, partySize int) (*findTables.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return nil, err
	}

	return &findTables.Request{
		VenueID:   venueID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		PartySize: partySize,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(req *findTables.Request, resp *findTables.Response) *FittingTablesResponse {
	tables := make([]TableResponse, 0, len(resp.Tables))
	for _, t := range resp.Tables {
		tables = append(tables, TableResponse{
			TableID:    t.TableID,
			Label:      t.Label,
			Capacity:   t.Capacity,
			IsExactFit: t.IsExactFit,
			IsTightFit: t.IsTightFit,
		})
	}

	return &FittingTablesResponse{
		VenueID:   req.VenueID,
		Date:      req.Date.Format(domain.DateFormat),
		StartTime: req.StartTime.String(),
		EndTime:   req.EndTime.String(),
		PartySize: req.PartySize,
		Tables:    tables,
	}
}
