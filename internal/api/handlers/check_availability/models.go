package check_availability

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	checkAvailability "github.com/avdeev-m/TMS-BookingService/internal/usecase/check_availability"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TableID   int64              `json:"tableId"`
	Date      string             `json:"date"`
	StartTime string             `json:"startTime"`
	EndTime   string             `json:"endTime"`
	Available bool               `json:"available"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// ConflictResponse пересекающееся бронирование
type ConflictResponse struct {
	ReservationID  int64  `json:"reservationId"`
	GuestName      string `json:"guestName"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	OverlapMinutes int    `json:"overlapMinutes"`
}

// ToUseCaseRequest собирает модель use case из параметров запроса
func ToUseCaseRequest(tableID int64, dateStr, startStr, endStr string, excludeID *int64) (*checkAvailability.Request, error) {
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

	return &checkAvailability.Request{
		TableID:              tableID,
		Date:                 date,
		StartTime:            startTime,
		EndTime:              endTime,
		ExcludeReservationID: excludeID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(req *checkAvailability.Request, resp *checkAvailability.Response) *AvailabilityResponse {
	conflicts := make([]ConflictResponse, 0, len(resp.Conflicts))
	for _, c := range resp.Conflicts {
		conflicts = append(conflicts, ConflictResponse{
			ReservationID:  c.ReservationID,
			GuestName:      c.GuestName,
			StartTime:      c.StartTime.String(),
			EndTime:        c.EndTime.String(),
			OverlapMinutes: c.OverlapMinutes,
		})
	}

	return &AvailabilityResponse{
		TableID:   req.TableID,
		Date:      req.Date.Format(domain.DateFormat),
		StartTime: req.StartTime.String(),
		EndTime:   req.EndTime.String(),
		Available: resp.Available,
		Conflicts: conflicts,
	}
}
