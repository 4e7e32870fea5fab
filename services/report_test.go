package services

import (
	"bytes"
	"testing"

	"barber_flow_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildReservationsReport(t *testing.T) {
	database := setupSchedulingTestDB(t)
	loc := testLocation(t)
	settings := seedSettings(t, database)
	barber := seedBarber(t, database)
	customer := seedCustomer(t, database, "Ana")
	service := seedService(t, database, barber.ID)
	cfg := testConfig()

	monday := upcoming(t, loc, models.DayMonday)
	kept, err := CreateReservation(database, loc, settings, barber.ID, &customer.ID, service.ID,
		at(t, monday, "10:00", loc), nil)
	require.NoError(t, err)
	toCancel, err := CreateReservation(database, loc, settings, barber.ID, nil, service.ID,
		at(t, monday, "11:00", loc), nil)
	require.NoError(t, err)
	_, err = CancelReservation(database, cfg, toCancel.ID, models.CancelledByBarber, nil, toCancel.Version)
	require.NoError(t, err)

	buf, err := BuildReservationsReport(database, loc, monday, monday)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reservations")
	require.NoError(t, err)
	// Header + 2 reservations
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "Date", rows[0][0])

	assert.Equal(t, DateKey(kept.StartTime, loc), rows[1][0])
	assert.Equal(t, "10:00", rows[1][1])
	assert.Equal(t, "Ana", rows[1][3])
	assert.Equal(t, models.ReservationStatusConfirmed, rows[1][7])

	assert.Equal(t, "walk-in", rows[2][3])
	assert.Equal(t, models.ReservationStatusCancelled, rows[2][7])
	assert.Equal(t, models.CancelledByBarber, rows[2][8])
}

func TestBuildReservationsReportRangeValidation(t *testing.T) {
	database := setupSchedulingTestDB(t)
	loc := testLocation(t)

	from, err := ParseDateKey("2026-03-11", loc)
	require.NoError(t, err)
	to, err := ParseDateKey("2026-03-09", loc)
	require.NoError(t, err)

	_, err = BuildReservationsReport(database, loc, from, to)
	assert.True(t, IsCode(err, CodeInvalidDateRange))
}

func TestBuildReservationsReportEmptyRange(t *testing.T) {
	database := setupSchedulingTestDB(t)
	loc := testLocation(t)

	day, err := ParseDateKey("2026-03-09", loc)
	require.NoError(t, err)

	buf, err := BuildReservationsReport(database, loc, day, day)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reservations")
	require.NoError(t, err)
	// Header only, then the summary block with zero totals
	assert.Equal(t, "Date", rows[0][0])
}
