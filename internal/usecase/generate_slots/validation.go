package generate_slots

import (
	"fmt"

	"github.com/avdeev-m/TMS-BookingService/internal/domain"
)

// validateRequest проверяет корректность запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venue id must be positive", ErrInvalidRequest)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: party size must be between %d and %d",
			ErrInvalidRequest, domain.MinPartySize, domain.MaxPartySize)
	}

	if req.DurationMinutes < 0 || req.DurationMinutes > domain.MaxReservationMinutes {
		return fmt.Errorf("%w: duration must be between 0 and %d minutes",
			ErrInvalidRequest, domain.MaxReservationMinutes)
	}

	if req.IntervalMinutes < 0 || req.IntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: interval must be between 0 and %d minutes",
			ErrInvalidRequest, domain.MaxSlotIntervalMinutes)
	}

	return nil
}
