package create_reservation

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
	createReservation "github.com/avdeev-m/TMS-BookingService/internal/usecase/create_reservation"
	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	VenueID         int64   `json:"venueId"`
	TableID         int64   `json:"tableId"`
	GuestName       string  `json:"guestName"`
	GuestPhone      *string `json:"guestPhone,omitempty"`
	PartySize       int     `json:"partySize"`
	Date            string  `json:"date"`      // "2026-09-12"
	StartTime       string  `json:"startTime"` // "18:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	ActivityID      *int64  `json:"activityId,omitempty"`
	Source          string  `json:"source,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	VenueID         int64   `json:"venueId"`
	TableID         int64   `json:"tableId"`
	GuestName       string  `json:"guestName"`
	GuestPhone      *string `json:"guestPhone,omitempty"`
	PartySize       int     `json:"partySize"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ActivityID      *int64  `json:"activityId,omitempty"`
	Source          string  `json:"source"`
	Notes           *string `json:"notes,omitempty"`
	CreatedBy       *string `json:"createdBy,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ConflictResponse типизированный ответ 409: вызывающая сторона перепроверяет
// доступность и предлагает гостю другие варианты
type ConflictResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TableID int64  `json:"tableId"`
	Date    string `json:"date"`
	Start   string `json:"startTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(createdBy *string) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	source := r.Source
	if source == "" {
		source = "online"
	}

	return &createReservation.Request{
		VenueID:         r.VenueID,
		TableID:         r.TableID,
		GuestName:       r.GuestName,
		GuestPhone:      r.GuestPhone,
		PartySize:       r.PartySize,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		ActivityID:      r.ActivityID,
		Source:          source,
		Notes:           r.Notes,
		CreatedBy:       createdBy,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		VenueID:         resp.VenueID,
		TableID:         resp.TableID,
		GuestName:       resp.GuestName,
		GuestPhone:      resp.GuestPhone,
		PartySize:       resp.PartySize,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ActivityID:      resp.ActivityID,
		Source:          resp.Source,
		Notes:           resp.Notes,
		CreatedBy:       resp.CreatedBy,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
