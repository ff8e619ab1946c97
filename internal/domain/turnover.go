package domain

import "github.com/avdeev-m/TMS-BookingService/pkg/types"

// RiskSeverity grades a turnover risk by remaining buffer
type RiskSeverity string

const (
	RiskHigh   RiskSeverity = "high"
	RiskMedium RiskSeverity = "medium"
	RiskLow    RiskSeverity = "low"
)

// TurnoverRisk correlates one active session with one upcoming reservation
// on the same table. BufferMinutes may be negative: the table is believed
// occupied past the reservation's arrival time. The estimate is a heuristic,
// not ground truth.
type TurnoverRisk struct {
	TableID          int64
	SessionID        int64
	ReservationID    int64
	GuestName        string
	PartySize        int
	ReservationStart types.TimeString
	EstimatedFreeAt  types.TimeString
	BufferMinutes    int
	Severity         RiskSeverity
}

// RiskSeverityForBuffer grades the remaining buffer. Callers only invoke it
// for buffers below the safety threshold.
func RiskSeverityForBuffer(bufferMinutes int) RiskSeverity {
	switch {
	case bufferMinutes < TurnoverHighBufferMinutes:
		return RiskHigh
	case bufferMinutes < TurnoverMediumBufferMinutes:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskSeverityRank orders severities for triage sorting, highest first
func RiskSeverityRank(s RiskSeverity) int {
	switch s {
	case RiskHigh:
		return 0
	case RiskMedium:
		return 1
	default:
		return 2
	}
}
