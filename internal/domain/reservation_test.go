package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservation_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, allowed: true},
		{name: "confirmed to arrived", from: StatusConfirmed, to: StatusArrived, allowed: true},
		{name: "arrived to seated", from: StatusArrived, to: StatusSeated, allowed: true},
		{name: "seated to completed", from: StatusSeated, to: StatusCompleted, allowed: true},
		{name: "pending cannot skip to seated", from: StatusPending, to: StatusSeated, allowed: false},
		{name: "confirmed cannot skip to completed", from: StatusConfirmed, to: StatusCompleted, allowed: false},
		{name: "re-confirming is rejected", from: StatusConfirmed, to: StatusConfirmed, allowed: false},
		{name: "cancel from pending", from: StatusPending, to: StatusCancelledByGuest, allowed: true},
		{name: "venue cancel from seated", from: StatusSeated, to: StatusCancelledByVenue, allowed: true},
		{name: "no-show from confirmed", from: StatusConfirmed, to: StatusNoShow, allowed: true},
		{name: "no transitions out of completed", from: StatusCompleted, to: StatusNoShow, allowed: false},
		{name: "no transitions out of cancelled", from: StatusCancelledByGuest, to: StatusConfirmed, allowed: false},
		{name: "no transitions out of no-show", from: StatusNoShow, to: StatusCancelledByVenue, allowed: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := &Reservation{Status: tc.from}
			assert.Equal(t, tc.allowed, r.CanTransitionTo(tc.to))
		})
	}
}

func TestReservation_OccupiesTable(t *testing.T) {
	occupying := []ReservationStatus{StatusPending, StatusConfirmed, StatusArrived, StatusSeated, StatusCompleted}
	for _, s := range occupying {
		r := &Reservation{Status: s}
		assert.True(t, r.OccupiesTable(), "status %s must occupy the table", s)
	}

	for _, s := range NonOccupyingStatuses {
		r := &Reservation{Status: s}
		assert.False(t, r.OccupiesTable(), "status %s must not occupy the table", s)
	}
}

func TestReservation_EndTime(t *testing.T) {
	r := &Reservation{StartTime: "18:00", DurationMinutes: 120}
	end, err := r.EndTime()
	assert.NoError(t, err)
	assert.Equal(t, "20:00", end.String())
}

func TestTable_Fit(t *testing.T) {
	four := 4
	table := &Table{Capacity: &four}

	assert.True(t, table.Fits(4))
	assert.True(t, table.IsExactFit(4))
	assert.False(t, table.IsTightFit(4))
	assert.True(t, table.IsTightFit(3))
	assert.False(t, table.Fits(5))

	noCapacity := &Table{}
	assert.False(t, noCapacity.Fits(1))
}
