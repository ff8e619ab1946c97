package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" form.
// It is the canonical time-of-day representation across the service:
// parsed from requests, stored in the database (TIME column) and
// compared with strict inequalities for interval math.
type TimeString string

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString is returned when a string cannot be parsed as "HH:MM" or "HH:MM:SS"
	ErrInvalidTimeString = errors.New("types: invalid time string format")
)

// NewTimeString creates a TimeString from the wall-clock part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses "HH:MM" or "HH:MM:SS" input.
// Seconds are accepted and normalized away: "18:30:00" becomes "18:30".
func NewTimeStringFromString(s string) (TimeString, error) {
	hours, minutes, err := parseParts(s)
	if err != nil {
		return "", err
	}
	return TimeString(fmt.Sprintf("%02d:%02d", hours, minutes)), nil
}

// NewTimeStringFromMinutes converts minutes-since-midnight into a TimeString.
// Values outside a single day wrap around midnight.
func NewTimeStringFromMinutes(minutes int) TimeString {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// Minutes returns the value as minutes since midnight
func (t TimeString) Minutes() (int, error) {
	hours, minutes, err := parseParts(string(t))
	if err != nil {
		return 0, err
	}
	return hours*60 + minutes, nil
}

// AddMinutes returns the time shifted forward by the given number of minutes,
// wrapping around midnight
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes), nil
}

// IsBefore reports whether t is strictly earlier in the day than other.
// Malformed values compare as not-before so callers can rely on Validate
// having been applied at the boundary.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later in the day than other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks that the value parses as a time of day
func (t TimeString) Validate() error {
	_, _, err := parseParts(string(t))
	return err
}

// String returns the normalized "HH:MM" representation
func (t TimeString) String() string {
	normalized, err := NewTimeStringFromString(string(t))
	if err != nil {
		return string(t)
	}
	return string(normalized)
}

// Value implements driver.Valuer for writing into TIME columns
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t.String(), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive either as
// []byte/string ("18:30:00") or as time.Time depending on the driver.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

func parseParts(s string) (hours, minutes int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, err = strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	minutes, err = strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	if len(parts) == 3 {
		seconds, err := strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}

	return hours, minutes, nil
}
