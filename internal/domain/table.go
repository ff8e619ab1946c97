package domain

import "time"

// Table represents a physical table at a venue.
// Capacity is nullable: legacy imports may lack it, and such tables are
// excluded from capacity-based ranking.
type Table struct {
	ID       int64
	VenueID  int64
	Label    string
	Capacity *int
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapacity returns true if the table has a known capacity
func (t *Table) HasCapacity() bool {
	return t.Capacity != nil
}

// Fits returns true if the table can seat the given party size.
// Tables without a known capacity never fit.
func (t *Table) Fits(partySize int) bool {
	return t.Capacity != nil && *t.Capacity >= partySize
}

// IsExactFit returns true if the table's capacity equals the party size
func (t *Table) IsExactFit(partySize int) bool {
	return t.Capacity != nil && *t.Capacity == partySize
}

// IsTightFit returns true if the table seats exactly one more than the party
func (t *Table) IsTightFit(partySize int) bool {
	return t.Capacity != nil && *t.Capacity == partySize+1
}
