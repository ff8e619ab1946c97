package domain

import "github.com/avdeev-m/TMS-BookingService/pkg/types"

// Overlaps reports whether the half-open intervals [start1, end1) and
// [start2, end2) intersect. Strict inequalities on both sides: intervals
// that merely touch at an endpoint never conflict. This is the single
// overlap predicate for the whole engine; the SQL pushed-down check in the
// reservation repository mirrors it exactly.
func Overlaps(start1, end1, start2, end2 types.TimeString) bool {
	return start1.IsBefore(end2) && end1.IsAfter(start2)
}

// OverlapMinutes returns the length of the intersection of two half-open
// intervals in minutes, or 0 when they do not overlap
func OverlapMinutes(start1, end1, start2, end2 types.TimeString) int {
	if !Overlaps(start1, end1, start2, end2) {
		return 0
	}

	s1, err := start1.Minutes()
	if err != nil {
		return 0
	}
	e1, err := end1.Minutes()
	if err != nil {
		return 0
	}
	s2, err := start2.Minutes()
	if err != nil {
		return 0
	}
	e2, err := end2.Minutes()
	if err != nil {
		return 0
	}

	start := s1
	if s2 > start {
		start = s2
	}
	end := e1
	if e2 < end {
		end = e2
	}

	return end - start
}
