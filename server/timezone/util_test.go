package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimezone(t *testing.T) {
	loc, err := ParseTimezone("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = ParseTimezone("Asia/Seoul")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", loc.String())

	loc, err = ParseTimezone("Not/AZone")
	assert.Error(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestIsValidTimezone(t *testing.T) {
	assert.True(t, IsValidTimezone(""))
	assert.True(t, IsValidTimezone("UTC"))
	assert.True(t, IsValidTimezone("Europe/Dublin"))
	assert.False(t, IsValidTimezone("Mars/Olympus"))
}

func TestStartOfDay(t *testing.T) {
	loc := MustParseTimezone("Asia/Seoul")
	ts := time.Date(2024, 1, 15, 23, 45, 12, 0, loc)
	start := StartOfDay(ts)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, loc, start.Location())
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-07", DayKey(ts))
}
