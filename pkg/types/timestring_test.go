package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected TimeString
		wantErr  bool
	}{
		{name: "plain HH:MM", input: "18:30", expected: "18:30"},
		{name: "seconds normalized away", input: "18:30:45", expected: "18:30"},
		{name: "midnight", input: "00:00", expected: "00:00"},
		{name: "single digit hour padded", input: "9:05", expected: "09:05"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minutes out of range", input: "12:60", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	testCases := []struct {
		name     string
		start    TimeString
		minutes  int
		expected TimeString
	}{
		{name: "simple addition", start: "10:00", minutes: 90, expected: "11:30"},
		{name: "wraps past midnight", start: "23:30", minutes: 45, expected: "00:15"},
		{name: "zero minutes", start: "12:00", minutes: 0, expected: "12:00"},
		{name: "negative wraps backwards", start: "00:15", minutes: -30, expected: "23:45"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.start.AddMinutes(tc.minutes)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("21:00").IsAfter("20:59"))
	assert.False(t, TimeString("21:00").IsAfter("21:00"))
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("18:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 18*60+30, m)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("18:30:00"))
	assert.Equal(t, TimeString("18:30"), ts)

	require.NoError(t, ts.Scan([]byte("07:05")))
	assert.Equal(t, TimeString("07:05"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 1, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
