package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location("Not/AZone"))
	loc := Location("America/Bogota")
	assert.Equal(t, "America/Bogota", loc.String())
}

func TestCivilRoundTrip(t *testing.T) {
	loc := Location("America/Bogota")
	instant := FromCivil(2026, time.March, 9, 14, 30, loc)

	civil := ToCivil(instant, loc)
	assert.Equal(t, 2026, civil.Year)
	assert.Equal(t, time.March, civil.Month)
	assert.Equal(t, 9, civil.Day)
	assert.Equal(t, 14, civil.Hour)
	assert.Equal(t, 30, civil.Minute)
	assert.Equal(t, time.Monday, civil.Weekday)

	// Millis round-trip preserves the instant
	assert.True(t, instant.Equal(FromMillis(ToMillis(instant))))
}

func TestDayBoundsAndKeys(t *testing.T) {
	loc := Location("America/Bogota")
	instant := FromCivil(2026, time.March, 9, 14, 30, loc)

	start := DayStart(instant, loc)
	assert.Equal(t, "2026-03-09", DateKey(start, loc))
	assert.Equal(t, "00:00", HHMM(start, loc))

	end := DayEnd(instant, loc)
	assert.Equal(t, "2026-03-10", DateKey(end, loc))
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	assert.Equal(t, "20260309", CompactDateKey(instant, loc))
	assert.Equal(t, "monday", WeekdayKey(instant, loc))
}

// The same instant carries different date keys in different zones; all slot
// math must stay in the shop zone
func TestDateKeyIsZoneLocal(t *testing.T) {
	bogota := Location("America/Bogota")
	tokyo := Location("Asia/Tokyo")

	// 23:00 in Bogota is already the next day in Tokyo
	instant := FromCivil(2026, time.March, 9, 23, 0, bogota)
	assert.Equal(t, "2026-03-09", DateKey(instant, bogota))
	assert.Equal(t, "2026-03-10", DateKey(instant, tokyo))
}

func TestParseDateKey(t *testing.T) {
	loc := Location("America/Bogota")

	d, err := ParseDateKey("2026-03-09", loc)
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-09", DateKey(d, loc))
	assert.Equal(t, "00:00", HHMM(d, loc))

	_, err = ParseDateKey("09/03/2026", loc)
	assert.Error(t, err)
	_, err = ParseDateKey("", loc)
	assert.Error(t, err)
}

func TestParseHHMM(t *testing.T) {
	hour, minute, err := ParseHHMM("09:30")
	assert.NoError(t, err)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 30, minute)

	for _, bad := range []string{"9:3:0", "24:00", "12:60", "noon", "", "12-30"} {
		_, _, err := ParseHHMM(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestOnDateAndHHMM(t *testing.T) {
	loc := Location("America/Bogota")
	date, err := ParseDateKey("2026-03-09", loc)
	require.NoError(t, err)

	instant, err := OnDate(date, "16:45", loc)
	assert.NoError(t, err)
	assert.Equal(t, "16:45", HHMM(instant, loc))
	assert.Equal(t, "2026-03-09", DateKey(instant, loc))

	_, err = OnDate(date, "26:00", loc)
	assert.Error(t, err)
}

// Calendar stepping keeps the wall-clock time across a DST transition, which
// naive epoch arithmetic would shift by an hour
func TestOnDateAcrossDST(t *testing.T) {
	ny := Location("America/New_York")

	// 2026-03-08 is the US spring-forward date
	before, err := ParseDateKey("2026-03-07", ny)
	require.NoError(t, err)
	after := before.AddDate(0, 0, 2)

	slotBefore, err := OnDate(before, "10:00", ny)
	require.NoError(t, err)
	slotAfter, err := OnDate(after, "10:00", ny)
	require.NoError(t, err)

	assert.Equal(t, "10:00", HHMM(slotBefore, ny))
	assert.Equal(t, "10:00", HHMM(slotAfter, ny))
	// The two instants are 47 real hours apart, not 48
	assert.Equal(t, 47*time.Hour, slotAfter.Sub(slotBefore))
}

func TestNextWeekdayAndOccurrences(t *testing.T) {
	loc := Location("America/Bogota")
	// A Monday
	from, err := ParseDateKey("2026-03-09", loc)
	require.NoError(t, err)

	// Matching weekday on the start date returns the start date itself
	assert.Equal(t, "2026-03-09", DateKey(NextWeekday(from, "monday", loc), loc))
	assert.Equal(t, "2026-03-13", DateKey(NextWeekday(from, "friday", loc), loc))

	occurrences := NextOccurrences(from, "friday", 3, loc)
	require.Len(t, occurrences, 3)
	assert.Equal(t, "2026-03-13", DateKey(occurrences[0], loc))
	assert.Equal(t, "2026-03-20", DateKey(occurrences[1], loc))
	assert.Equal(t, "2026-03-27", DateKey(occurrences[2], loc))
	for _, d := range occurrences {
		assert.Equal(t, "friday", WeekdayKey(d, loc))
	}
}
