package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBreakoutValidate(t *testing.T) {
	end := "13:00"

	assert.NoError(t, NewSingleBreakout("b1", "2026-03-09", "12:00", &end, nil).Validate())
	assert.NoError(t, NewRangeBreakout("b1", "2026-03-09", "2026-03-11", "12:00", &end, nil).Validate())
	assert.NoError(t, NewRecurringBreakout("b1", DayMonday, "12:00", nil, nil).Validate())

	// Inverted or empty time window
	badEnd := "11:00"
	assert.ErrorIs(t, NewSingleBreakout("b1", "2026-03-09", "12:00", &badEnd, nil).Validate(), ErrBreakoutInvalidTime)
	sameEnd := "12:00"
	assert.ErrorIs(t, NewSingleBreakout("b1", "2026-03-09", "12:00", &sameEnd, nil).Validate(), ErrBreakoutInvalidTime)

	// Inverted date range
	assert.ErrorIs(t, NewRangeBreakout("b1", "2026-03-11", "2026-03-09", "12:00", &end, nil).Validate(), ErrBreakoutInvalidDates)

	// Unknown weekday and type
	assert.ErrorIs(t, NewRecurringBreakout("b1", "lunes", "12:00", nil, nil).Validate(), ErrBreakoutInvalidWeekday)
	assert.ErrorIs(t, (&BarberBreakout{BreakoutType: "monthly", StartTime: "12:00"}).Validate(), ErrBreakoutInvalidType)
}

// Each variant must carry exactly its own fields
func TestBreakoutValidateFieldMismatch(t *testing.T) {
	end := "13:00"

	single := NewSingleBreakout("b1", "2026-03-09", "12:00", &end, nil)
	single.DayOfWeek = strPtr(DayMonday)
	assert.ErrorIs(t, single.Validate(), ErrBreakoutFieldsMismatch)

	ranged := NewRangeBreakout("b1", "2026-03-09", "2026-03-11", "12:00", &end, nil)
	ranged.EndDate = nil
	assert.ErrorIs(t, ranged.Validate(), ErrBreakoutFieldsMismatch)

	recurring := NewRecurringBreakout("b1", DayMonday, "12:00", nil, nil)
	recurring.StartDate = strPtr("2026-03-09")
	assert.ErrorIs(t, recurring.Validate(), ErrBreakoutFieldsMismatch)
}

func TestBreakoutAppliesTo(t *testing.T) {
	end := "13:00"

	single := NewSingleBreakout("b1", "2026-03-09", "12:00", &end, nil)
	assert.True(t, single.AppliesTo("2026-03-09", DayMonday))
	assert.False(t, single.AppliesTo("2026-03-10", DayTuesday))

	ranged := NewRangeBreakout("b1", "2026-03-09", "2026-03-11", "12:00", &end, nil)
	assert.True(t, ranged.AppliesTo("2026-03-09", DayMonday))
	assert.True(t, ranged.AppliesTo("2026-03-11", DayWednesday))
	assert.False(t, ranged.AppliesTo("2026-03-12", DayThursday))
	assert.False(t, ranged.AppliesTo("2026-03-08", DaySunday))

	recurring := NewRecurringBreakout("b1", DayMonday, "12:00", nil, nil)
	assert.True(t, recurring.AppliesTo("2026-03-09", DayMonday))
	assert.True(t, recurring.AppliesTo("2026-03-16", DayMonday))
	assert.False(t, recurring.AppliesTo("2026-03-10", DayTuesday))

	// Deactivated breakouts never apply
	recurring.IsActive = false
	assert.False(t, recurring.AppliesTo("2026-03-09", DayMonday))
}

func TestBreakoutBlocksTime(t *testing.T) {
	end := "13:00"
	lunch := NewRecurringBreakout("b1", DayMonday, "12:00", &end, nil)

	assert.True(t, lunch.BlocksTime("12:00", "19:00"))
	assert.True(t, lunch.BlocksTime("12:30", "19:00"))
	assert.False(t, lunch.BlocksTime("11:30", "19:00")) // before the window
	assert.False(t, lunch.BlocksTime("13:00", "19:00")) // end is exclusive

	// Open-ended block runs through the working day end
	openEnded := NewSingleBreakout("b1", "2026-03-09", "15:00", nil, nil)
	assert.True(t, openEnded.BlocksTime("15:00", "19:00"))
	assert.True(t, openEnded.BlocksTime("18:30", "19:00"))
	assert.False(t, openEnded.BlocksTime("19:00", "19:00"))
	assert.False(t, openEnded.BlocksTime("14:30", "19:00"))
}
