package domain

import (
	"time"

	"github.com/avdeev-m/TMS-BookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending          ReservationStatus = "pending"
	StatusConfirmed        ReservationStatus = "confirmed"
	StatusArrived          ReservationStatus = "arrived"
	StatusSeated           ReservationStatus = "seated"
	StatusCompleted        ReservationStatus = "completed"
	StatusCancelledByGuest ReservationStatus = "cancelled_by_guest"
	StatusCancelledByVenue ReservationStatus = "cancelled_by_venue"
	StatusNoShow           ReservationStatus = "no_show"
)

// Reservation represents a timed booking of one table over the half-open
// interval [Date+StartTime, Date+StartTime+DurationMinutes)
type Reservation struct {
	ID              int64
	VenueID         int64
	TableID         int64
	GuestName       string
	GuestPhone      *string
	PartySize       int
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus
	ActivityID      *int64 // linked activity, feeds the duration heuristic
	Source          string // "phone", "walk_in", "online", ...
	Notes           *string
	CreatedBy       *string

	// Transition timestamps, one per state-machine step
	ConfirmedAt *time.Time
	ArrivedAt   *time.Time
	SeatedAt    *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	NoShowAt    *time.Time

	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the reservation's end as wall-clock time of day
func (r *Reservation) EndTime() (types.TimeString, error) {
	return r.StartTime.AddMinutes(r.DurationMinutes)
}

// IsTerminal returns true if the reservation reached a terminal status
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelledByGuest ||
		r.Status == StatusCancelledByVenue ||
		r.Status == StatusNoShow ||
		r.Status == StatusCompleted
}

// OccupiesTable returns true if the reservation counts against table
// availability. Cancelled and no-show reservations free the interval;
// completed ones keep their historical claim on it.
func (r *Reservation) OccupiesTable() bool {
	return r.Status != StatusCancelledByGuest &&
		r.Status != StatusCancelledByVenue &&
		r.Status != StatusNoShow
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByGuest || r.Status == StatusCancelledByVenue
}

// CanTransitionTo reports whether the state machine permits moving to next.
// The happy path is strictly linear (pending → confirmed → arrived → seated
// → completed); cancellation and no-show are reachable from any non-terminal
// state. Re-applying the current status is rejected, not silently accepted.
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	if r.IsTerminal() {
		return false
	}

	switch next {
	case StatusCancelledByGuest, StatusCancelledByVenue, StatusNoShow:
		return true
	case StatusConfirmed:
		return r.Status == StatusPending
	case StatusArrived:
		return r.Status == StatusConfirmed
	case StatusSeated:
		return r.Status == StatusArrived
	case StatusCompleted:
		return r.Status == StatusSeated
	default:
		return false
	}
}

// VenueReservationsFilter фильтр для выборки бронирований площадки
type VenueReservationsFilter struct {
	VenueID         int64              // Обязательный параметр
	TableID         *int64             // Фильтр по столу (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeTerminal bool               // Включать ли отменённые и no-show
}
