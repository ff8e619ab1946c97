package domain

// Время и форматы
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default scheduling parameters, used when the venue settings provider
// does not override them
const (
	DefaultSlotIntervalMinutes   = 30
	DefaultReservationMinutes    = 120
	DefaultMinBookingNoticeHours = 1
	DefaultOccupationMinutes     = 90 // fallback when a session has no linked activity
)

// Conflict detection thresholds
const (
	// Overlap at or above this many minutes is classified critical;
	// any smaller positive overlap is a warning
	ConflictCriticalOverlapMinutes = 15
)

// Turnover risk thresholds (minutes of buffer between a session's
// estimated end and the next reservation's start)
const (
	TurnoverLookaheadMinutes    = 120
	TurnoverSafetyBufferMinutes = 60
	TurnoverHighBufferMinutes   = 15
	TurnoverMediumBufferMinutes = 30
)

// Business validation constants
const (
	MinPartySize                = 1
	MaxPartySize                = 50
	MinReservationMinutes       = 15
	MaxReservationMinutes       = 480 // 8 hours
	MaxSlotIntervalMinutes      = 240
	MaxGuestNameLength          = 200
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// NonOccupyingStatuses список статусов, не занимающих стол.
// Используется при фильтрации бронирований для проверки доступности.
var NonOccupyingStatuses = []ReservationStatus{
	StatusCancelledByGuest,
	StatusCancelledByVenue,
	StatusNoShow,
}

// OccupyingStatuses список статусов, занимающих стол
var OccupyingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusArrived,
	StatusSeated,
	StatusCompleted,
}
