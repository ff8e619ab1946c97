package domain

import "github.com/avdeev-m/TMS-BookingService/pkg/types"

// BlockKind identifies the source a timeline block was projected from
type BlockKind string

const (
	BlockKindReservation BlockKind = "reservation"
	BlockKindSession     BlockKind = "session"
)

// ConflictSeverity grades a detected overlap
type ConflictSeverity string

const (
	SeverityCritical ConflictSeverity = "critical"
	SeverityWarning  ConflictSeverity = "warning"
)

// Block is the uniform timeline projection of a reservation or an active
// session on one table. Session blocks carry an estimated end.
type Block struct {
	TableID   int64
	Kind      BlockKind
	SourceID  int64 // reservation or session ID
	Label     string
	StartTime types.TimeString
	EndTime   types.TimeString
	Estimated bool // true when EndTime is heuristic, not scheduled
}

// Conflict is a pairwise overlap between two blocks on one table
type Conflict struct {
	TableID        int64
	First          Block
	Second         Block
	OverlapMinutes int
	Severity       ConflictSeverity
}

// SeverityForOverlap classifies a positive overlap duration
func SeverityForOverlap(overlapMinutes int) ConflictSeverity {
	if overlapMinutes >= ConflictCriticalOverlapMinutes {
		return SeverityCritical
	}
	return SeverityWarning
}
