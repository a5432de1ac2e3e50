package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRangeFebruaryLeapYear(t *testing.T) {
	rng := MonthRange(2, 2024)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), rng.Start)
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC), rng.End)
}

func TestMonthRangeDecemberRollsYear(t *testing.T) {
	rng := MonthRange(12, 2025)

	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), rng.Start)
	assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), rng.End)
}

func TestMonthRangeDefaultsToCurrentYear(t *testing.T) {
	rng := MonthRange(3, 0)

	require.Equal(t, time.Now().UTC().Year(), rng.Start.Year())
	assert.Equal(t, time.March, rng.Start.Month())
}

func TestYearRangeBoundaries(t *testing.T) {
	rng := YearRange(2023)

	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), rng.Start)
	assert.Equal(t, time.Date(2023, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), rng.End)
}

func TestDateRangeOverlaps(t *testing.T) {
	rng := DateRange{
		Start: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC),
	}

	day := func(d int) time.Time { return time.Date(2024, time.May, d, 12, 0, 0, 0, time.UTC) }

	// Entirely before and entirely after never match.
	assert.False(t, rng.Overlaps(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, rng.Overlaps(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)))

	// Starts inside, ends inside, spans the whole range.
	assert.True(t, rng.Overlaps(day(20), time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, rng.Overlaps(time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC), day(3)))
	assert.True(t, rng.Overlaps(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)))

	// Touching a boundary instant counts, bounds are inclusive.
	assert.True(t, rng.Overlaps(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), rng.Start))
	assert.True(t, rng.Overlaps(rng.End, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)))
}
