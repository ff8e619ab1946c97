package detect_turnover

import (
	detectTurnover "github.com/avdeev-m/TMS-BookingService/internal/usecase/detect_turnover"
)

// TurnoverRiskResponse риск того, что стол не освободится к приходу брони
type TurnoverRiskResponse struct {
	TableID          int64  `json:"tableId"`
	SessionID        int64  `json:"sessionId"`
	ReservationID    int64  `json:"reservationId"`
	GuestName        string `json:"guestName"`
	PartySize        int    `json:"partySize"`
	ReservationStart string `json:"reservationStart"`
	EstimatedFreeAt  string `json:"estimatedFreeAt"`
	BufferMinutes    int    `json:"bufferMinutes"`
	Severity         string `json:"severity"`
}

// TurnoverRiskListResponse ответ со списком рисков, отсортированных для разбора
type TurnoverRiskListResponse struct {
	VenueID int64                  `json:"venueId"`
	Risks   []TurnoverRiskResponse `json:"risks"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *detectTurnover.Response) *TurnoverRiskListResponse {
	result := &TurnoverRiskListResponse{
		VenueID: resp.VenueID,
		Risks:   make([]TurnoverRiskResponse, 0, len(resp.Risks)),
	}

	for _, risk := range resp.Risks {
		result.Risks = append(result.Risks, TurnoverRiskResponse{
			TableID:          risk.TableID,
			SessionID:        risk.SessionID,
			ReservationID:    risk.ReservationID,
			GuestName:        risk.GuestName,
			PartySize:        risk.PartySize,
			ReservationStart: risk.ReservationStart.String(),
			EstimatedFreeAt:  risk.EstimatedFreeAt.String(),
			BufferMinutes:    risk.BufferMinutes,
			Severity:         string(risk.Severity),
		})
	}

	return result
}
