package domain

import "github.com/avdeev-m/TMS-BookingService/pkg/types"

// TimeSlot is a derived candidate interval together with the tables that
// can host it. Never persisted; recomputed per query.
type TimeSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	TableIDs        []int64
	Available       bool
}

// TableCount returns the number of fitting tables for the slot
func (s *TimeSlot) TableCount() int {
	return len(s.TableIDs)
}
