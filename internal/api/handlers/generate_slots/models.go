package generate_slots

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	generateSlots "github.com/avdeev-m/TMS-BookingService/internal/usecase/generate_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	VenueID int64          `json:"venueId"`
	Date    string         `json:"date"`
	Slots   []SlotResponse `json:"slots"`
}

// SlotResponse один слот сетки с доступными столами
type SlotResponse struct {
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	TableIDs        []int64 `json:"tableIds"`
	Available       bool    `json:"available"`
}

// ToUseCaseRequest собирает модель use case из параметров запроса
func ToUseCaseRequest(venueID int64, dateStr string, partySize, duration, interval int) (*generateSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &generateSlots.Request{
		VenueID:         venueID,
		Date:            date,
		PartySize:       partySize,
		DurationMinutes: duration,
		IntervalMinutes: interval,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
			TableIDs:        slot.TableIDs,
			Available:       slot.Available,
		})
	}

	return &AvailableSlotsResponse{
		VenueID: resp.VenueID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   slots,
	}
}
