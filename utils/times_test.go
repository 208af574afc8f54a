package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocalTime(t *testing.T) {
	// Monday 2025-06-23 13:00 UTC
	now := time.Date(2025, 6, 23, 13, 0, 0, 0, time.UTC)

	weekday, hhmm, err := ResolveLocalTime("America/New_York", now)
	require.NoError(t, err)
	assert.Equal(t, int(time.Monday), weekday)
	assert.Equal(t, "09:00", hhmm) // EDT, UTC-4

	weekday, hhmm, err = ResolveLocalTime("Asia/Tokyo", now)
	require.NoError(t, err)
	assert.Equal(t, int(time.Monday), weekday)
	assert.Equal(t, "22:00", hhmm)
}

func TestResolveLocalTimeCrossesDateLine(t *testing.T) {
	// Monday 16:30 UTC is already Tuesday 01:30 in Tokyo.
	now := time.Date(2025, 6, 23, 16, 30, 0, 0, time.UTC)

	weekday, hhmm, err := ResolveLocalTime("Asia/Tokyo", now)
	require.NoError(t, err)
	assert.Equal(t, int(time.Tuesday), weekday)
	assert.Equal(t, "01:30", hhmm)
}

func TestResolveLocalTimeHandlesDST(t *testing.T) {
	// New York is UTC-5 in January and UTC-4 in July; both instants are
	// 10:00 on the wall clock.
	winter := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)
	summer := time.Date(2025, 7, 10, 14, 0, 0, 0, time.UTC)

	_, winterTime, err := ResolveLocalTime("America/New_York", winter)
	require.NoError(t, err)
	_, summerTime, err := ResolveLocalTime("America/New_York", summer)
	require.NoError(t, err)

	assert.Equal(t, "10:00", winterTime)
	assert.Equal(t, "10:00", summerTime)
}

func TestResolveLocalTimeInvalidZone(t *testing.T) {
	_, _, err := ResolveLocalTime("Mars/Olympus_Mons", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestTimeToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"12:30", 750},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := TimeToMinutes(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := TimeToMinutes("9am")
	assert.Error(t, err)
}
