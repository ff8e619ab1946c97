package domain

import "time"

// Session represents an untimed walk-in occupation of a table. Unlike a
// Reservation it has no scheduled end: it stays open until explicitly
// closed, and its expected end can only be estimated heuristically.
type Session struct {
	ID         int64
	VenueID    int64
	TableID    int64
	PartySize  int
	ActivityID *int64 // linked activity, feeds the duration heuristic
	OpenedAt   time.Time
	ClosedAt   *time.Time // nil while the party is still at the table

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the session has not been closed
func (s *Session) IsActive() bool {
	return s.ClosedAt == nil
}

// MinutesOpen returns how long the session has been running as of now
func (s *Session) MinutesOpen(now time.Time) int {
	end := now
	if s.ClosedAt != nil {
		end = *s.ClosedAt
	}
	return int(end.Sub(s.OpenedAt).Minutes())
}
