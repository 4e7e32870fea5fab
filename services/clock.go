package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// All slot math is calendar math in one fixed IANA zone. Raw epoch
// arithmetic silently breaks across DST transitions and month boundaries, so
// every date/time computation in the engine routes through this file.

// Location loads the shop timezone, falling back to UTC on a bad name
func Location(timezone string) *time.Location {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Civil holds the zone-local calendar fields of an instant
type Civil struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Weekday time.Weekday
}

// ToCivil converts an instant to zone-local calendar fields
func ToCivil(t time.Time, loc *time.Location) Civil {
	lt := t.In(loc)
	return Civil{
		Year:    lt.Year(),
		Month:   lt.Month(),
		Day:     lt.Day(),
		Hour:    lt.Hour(),
		Minute:  lt.Minute(),
		Weekday: lt.Weekday(),
	}
}

// FromCivil builds the instant at the given zone-local calendar fields
func FromCivil(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

// ToMillis converts an instant to epoch milliseconds (the API boundary unit)
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds back to an instant
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// DayStart returns the zone-local midnight at the start of t's day
func DayStart(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayEnd returns the zone-local midnight at the end of t's day
func DayEnd(t time.Time, loc *time.Location) time.Time {
	return DayStart(t, loc).AddDate(0, 0, 1)
}

// DateKey formats an instant as its zone-local "YYYY-MM-DD" date key
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// CompactDateKey formats an instant as "YYYYMMDD" (synthetic occurrence ids)
func CompactDateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("20060102")
}

// WeekdayKey returns the lowercase weekday key of a zone-local instant
func WeekdayKey(t time.Time, loc *time.Location) string {
	return strings.ToLower(t.In(loc).Weekday().String())
}

// ParseDateKey parses a "YYYY-MM-DD" date key as zone-local midnight
func ParseDateKey(dateKey string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", dateKey, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}
	return t, nil
}

// ParseHHMM validates an "HH:MM" time-of-day string and returns its parts
func ParseHHMM(hhmm string) (hour, minute int, err error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: expected HH:MM")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return hour, minute, nil
}

// OnDate places an "HH:MM" time-of-day on the given date's zone-local calendar
func OnDate(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	hour, minute, err := ParseHHMM(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	ld := date.In(loc)
	return time.Date(ld.Year(), ld.Month(), ld.Day(), hour, minute, 0, 0, loc), nil
}

// HHMM formats an instant's zone-local time of day
func HHMM(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// NextWeekday returns the first date on or after from whose zone-local
// weekday matches the given key
func NextWeekday(from time.Time, weekday string, loc *time.Location) time.Time {
	d := DayStart(from, loc)
	for i := 0; i < 7; i++ {
		if WeekdayKey(d, loc) == weekday {
			return d
		}
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// NextOccurrences returns the next n dates matching the weekday key,
// starting on or after from
func NextOccurrences(from time.Time, weekday string, n int, loc *time.Location) []time.Time {
	dates := make([]time.Time, 0, n)
	d := NextWeekday(from, weekday, loc)
	for i := 0; i < n; i++ {
		dates = append(dates, d)
		d = d.AddDate(0, 0, 7)
	}
	return dates
}

