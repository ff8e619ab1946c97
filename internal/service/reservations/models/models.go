package models

import (
	"errors"
	"time"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// UpdateStatusRequest запрос на перевод бронирования в новый статус
type UpdateStatusRequest struct {
	Status  string  `json:"status"`
	StaffID *string `json:"staffId,omitempty"` // Сотрудник, выполнивший перевод
}

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	CancelledBy        string `json:"cancelledBy"` // "guest" или "venue"
	CancellationReason string `json:"cancellationReason"`
}

// GetVenueReservationsRequest запрос на получение бронирований площадки
type GetVenueReservationsRequest struct {
	VenueID         int64      `json:"venueId"`
	TableID         *int64     `json:"tableId,omitempty"`         // Фильтр по столу (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeTerminal bool       `json:"includeTerminal,omitempty"` // Включить отменённые и неявки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueReservationsRequest) ToDomainFilter() (domain.VenueReservationsFilter, error) {
	filter := domain.VenueReservationsFilter{
		VenueID:         r.VenueID,
		TableID:         r.TableID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeTerminal: r.IncludeTerminal,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64   `json:"id"`
	VenueID         int64   `json:"venueId"`
	TableID         int64   `json:"tableId"`
	GuestName       string  `json:"guestName"`
	GuestPhone      *string `json:"guestPhone,omitempty"`
	PartySize       int     `json:"partySize"`
	Date            string  `json:"date"`      // "2026-09-12"
	StartTime       string  `json:"startTime"` // "18:00"
	EndTime         string  `json:"endTime"`   // "20:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ActivityID      *int64  `json:"activityId,omitempty"`
	Source          string  `json:"source"`
	Notes           *string `json:"notes,omitempty"`
	CreatedBy       *string `json:"createdBy,omitempty"`

	// Отметки переходов статусов в формате ISO 8601
	ConfirmedAt *string `json:"confirmedAt,omitempty"`
	ArrivedAt   *string `json:"arrivedAt,omitempty"`
	SeatedAt    *string `json:"seatedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
	NoShowAt    *string `json:"noShowAt,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		VenueID:         r.VenueID,
		TableID:         r.TableID,
		GuestName:       r.GuestName,
		GuestPhone:      r.GuestPhone,
		PartySize:       r.PartySize,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		ActivityID:      r.ActivityID,
		Source:          r.Source,
		Notes:           r.Notes,
		CreatedBy:       r.CreatedBy,

		ConfirmedAt: formatTimestamp(r.ConfirmedAt),
		ArrivedAt:   formatTimestamp(r.ArrivedAt),
		SeatedAt:    formatTimestamp(r.SeatedAt),
		CompletedAt: formatTimestamp(r.CompletedAt),
		CancelledAt: formatTimestamp(r.CancelledAt),
		NoShowAt:    formatTimestamp(r.NoShowAt),

		CancellationReason: r.CancellationReason,

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if endTime, err := r.EndTime(); err == nil {
		resp.EndTime = endTime.String()
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if converted := FromDomainReservation(r); converted != nil {
			result.Reservations = append(result.Reservations, *converted)
		}
	}

	return result
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusArrived,
		domain.StatusSeated,
		domain.StatusCompleted,
		domain.StatusCancelledByGuest,
		domain.StatusCancelledByVenue,
		domain.StatusNoShow:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
