package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClosureValidation(t *testing.T) {
	database := setupSchedulingTestDB(t)
	loc := testLocation(t)
	barber := seedBarber(t, database)

	_, err := CreateBarberClosure(database, loc, barber.ID, "not-a-date", "2026-03-11", nil)
	assert.True(t, IsCode(err, CodeValidationError))

	_, err = CreateBarberClosure(database, loc, barber.ID, "2026-03-11", "2026-03-09", nil)
	assert.True(t, IsCode(err, CodeInvalidDateRange))

	_, err = CreateBarbershopClosure(database, loc, "2026-03-11", "2026-03-09", nil)
	assert.True(t, IsCode(err, CodeInvalidDateRange))

	// A single-day closure is a valid range
	closure, err := CreateBarberClosure(database, loc, barber.ID, "2026-03-09", "2026-03-09", nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, closure.ID)
}

func TestBarberClosedOn(t *testing.T) {
	database := setupSchedulingTestDB(t)
	loc := testLocation(t)
	barber := seedBarber(t, database)
	other := seedBarber(t, database)

	reason := "vacation"
	_, err := CreateBarberClosure(database, loc, barber.ID, "2026-03-09", "2026-03-11", &reason)
	require.NoError(t, err)

	// Inclusive on both ends, scoped to the barber
	for _, day := range []string{"2026-03-09", "2026-03-10", "2026-03-11"} {
		closed, err := BarberClosedOn(database, barber.ID, day)
		assert.NoError(t, err)
		assert.True(t, closed, "expected %s to be closed", day)

		closed, err = BarberClosedOn(database, other.ID, day)
		assert.NoError(t, err)
		assert.False(t, closed)
	}
	closed, err := BarberClosedOn(database, barber.ID, "2026-03-12")
	assert.NoError(t, err)
	assert.False(t, closed)

	// A shop closure covers every barber
	_, err = CreateBarbershopClosure(database, loc, "2026-03-20", "2026-03-20", nil)
	require.NoError(t, err)
	closed, err = BarberClosedOn(database, other.ID, "2026-03-20")
	assert.NoError(t, err)
	assert.True(t, closed)
}

func TestDeleteClosure(t *testing.T) {
	database := setupSchedulingTestDB(t)
	loc := testLocation(t)
	barber := seedBarber(t, database)

	closure, err := CreateBarberClosure(database, loc, barber.ID, "2026-03-09", "2026-03-11", nil)
	require.NoError(t, err)

	assert.NoError(t, DeleteBarberClosure(database, closure.ID))

	closed, err := BarberClosedOn(database, barber.ID, "2026-03-10")
	assert.NoError(t, err)
	assert.False(t, closed)

	assert.True(t, IsCode(DeleteBarberClosure(database, closure.ID), CodeNotFound))
	assert.True(t, IsCode(DeleteBarbershopClosure(database, "missing"), CodeNotFound))
}

func TestClosureReasonSanitized(t *testing.T) {
	database := setupSchedulingTestDB(t)
	loc := testLocation(t)
	barber := seedBarber(t, database)

	reason := `<b>family</b> trip`
	closure, err := CreateBarberClosure(database, loc, barber.ID, "2026-03-09", "2026-03-09", &reason)
	assert.NoError(t, err)
	require.NotNil(t, closure.Reason)
	assert.Equal(t, "family trip", *closure.Reason)

	// A reason that is pure markup collapses to nothing
	empty := `<script>alert(1)</script>`
	closure, err = CreateBarberClosure(database, loc, barber.ID, "2026-03-10", "2026-03-10", &empty)
	assert.NoError(t, err)
	assert.Nil(t, closure.Reason)
}
