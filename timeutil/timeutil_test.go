package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStart(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	now := time.Date(2024, 3, 15, 17, 42, 13, 500, loc)
	start := DayStart(now)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, loc, start.Location())
}

func TestHourStart(t *testing.T) {
	now := time.Date(2024, 3, 15, 17, 42, 13, 500, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC), HourStart(now))
}

func TestLocalDayStartUnix(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	// 23:30 UTC del 14 marzo è ancora il 14 a Londra (GMT)
	unix := time.Date(2024, 3, 14, 23, 30, 0, 0, time.UTC).Unix()
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, loc).Unix(), LocalDayStartUnix(unix, loc))

	// 23:30 UTC del 14 luglio è già il 15 a Londra (BST, UTC+1)
	unix = time.Date(2024, 7, 14, 23, 30, 0, 0, time.UTC).Unix()
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, loc).Unix(), LocalDayStartUnix(unix, loc))
}

func TestLocalDayStartIsIdempotent(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	unix := time.Date(2024, 7, 14, 23, 30, 0, 0, time.UTC).Unix()
	aligned := LocalDayStartUnix(unix, loc)
	assert.Equal(t, aligned, LocalDayStartUnix(aligned, loc))
}

func TestLocalHour(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	unix := time.Date(2024, 7, 14, 23, 30, 0, 0, time.UTC).Unix()
	assert.Equal(t, 0, LocalHour(unix, loc))
	assert.Equal(t, 23, LocalHour(unix, time.UTC))
}
