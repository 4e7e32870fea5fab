package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"barber_flow_app_go/models"
	"barber_flow_app_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reservationFixture struct {
	barber   *models.Barber
	customer *models.Customer
	service  *models.BarberService
	slot     time.Time
}

func seedReservationFixture(t *testing.T, database *gorm.DB) reservationFixture {
	loc := services.Location("America/Bogota")

	barber := &models.Barber{Name: "Nico", IsActive: true}
	require.NoError(t, database.Create(barber).Error)
	customer := &models.Customer{Name: "Ana"}
	require.NoError(t, database.Create(customer).Error)
	service := &models.BarberService{BarberID: barber.ID, Name: "Classic cut", DurationMinutes: 30, IsActive: true}
	require.NoError(t, database.Create(service).Error)

	monday := services.NextWeekday(time.Now().In(loc).AddDate(0, 0, 1), models.DayMonday, loc)
	slot, err := services.OnDate(monday, "10:00", loc)
	require.NoError(t, err)

	return reservationFixture{barber: barber, customer: customer, service: service, slot: slot}
}

func TestCreateReservationHandler(t *testing.T) {
	database := setupTestDB(t)
	f := seedReservationFixture(t, database)

	body := fmt.Sprintf(`{"barber_id":%q,"customer_id":%q,"service_id":%q,"start_timestamp":%d}`,
		f.barber.ID, f.customer.ID, f.service.ID, f.slot.UnixMilli())
	_, c, rec := setupEcho(http.MethodPost, "/api/reservations", strings.NewReader(body))

	err := CreateReservationHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.ReservationStatusConfirmed, created.Status)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, f.slot.UnixMilli(), created.StartTime.UnixMilli())
}

func TestCreateReservationHandlerConflict(t *testing.T) {
	database := setupTestDB(t)
	f := seedReservationFixture(t, database)

	body := fmt.Sprintf(`{"barber_id":%q,"customer_id":%q,"service_id":%q,"start_timestamp":%d}`,
		f.barber.ID, f.customer.ID, f.service.ID, f.slot.UnixMilli())

	_, c, rec := setupEcho(http.MethodPost, "/api/reservations", strings.NewReader(body))
	require.NoError(t, CreateReservationHandler(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	_, c, rec = setupEcho(http.MethodPost, "/api/reservations", strings.NewReader(body))
	require.NoError(t, CreateReservationHandler(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, services.CodeSlotConflict, resp.Code)
}

func TestCreateReservationHandlerValidation(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodPost, "/api/reservations", strings.NewReader(`{}`))
	require.NoError(t, CreateReservationHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, services.CodeValidationError, resp.Code)
}

func TestCancelReservationHandlerStaleVersion(t *testing.T) {
	database := setupTestDB(t)
	f := seedReservationFixture(t, database)

	body := fmt.Sprintf(`{"barber_id":%q,"customer_id":%q,"service_id":%q,"start_timestamp":%d}`,
		f.barber.ID, f.customer.ID, f.service.ID, f.slot.UnixMilli())
	_, c, rec := setupEcho(http.MethodPost, "/api/reservations", strings.NewReader(body))
	require.NoError(t, CreateReservationHandler(c))
	var created models.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Correct version cancels
	_, c, rec = setupEcho(http.MethodPost, "/", strings.NewReader(`{"version":1,"cancelled_by":"customer"}`))
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, CancelReservationHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Replaying the same version now conflicts
	_, c, rec = setupEcho(http.MethodPost, "/", strings.NewReader(`{"version":1,"cancelled_by":"customer"}`))
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, CancelReservationHandler(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, services.CodeConcurrencyConflict, resp.Code)
}

func TestGetDayAvailabilityHandler(t *testing.T) {
	database := setupTestDB(t)
	f := seedReservationFixture(t, database)
	loc := services.Location("America/Bogota")
	dateKey := services.DateKey(f.slot, loc)

	_, c, rec := setupEcho(http.MethodGet, "/?date="+dateKey, nil)
	c.SetParamNames("barberID")
	c.SetParamValues(f.barber.ID)
	require.NoError(t, GetDayAvailabilityHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		BarberID string          `json:"barber_id"`
		Date     string          `json:"date"`
		Slots    []services.Slot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dateKey, resp.Date)
	assert.Len(t, resp.Slots, 20)

	// Missing date is rejected up front
	_, c, rec = setupEcho(http.MethodGet, "/", nil)
	c.SetParamNames("barberID")
	c.SetParamValues(f.barber.ID)
	require.NoError(t, GetDayAvailabilityHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBreakoutHandlerConflictPayload(t *testing.T) {
	database := setupTestDB(t)
	f := seedReservationFixture(t, database)
	loc := services.Location("America/Bogota")

	body := fmt.Sprintf(`{"barber_id":%q,"customer_id":%q,"service_id":%q,"start_timestamp":%d}`,
		f.barber.ID, f.customer.ID, f.service.ID, f.slot.UnixMilli())
	_, c, rec := setupEcho(http.MethodPost, "/api/reservations", strings.NewReader(body))
	require.NoError(t, CreateReservationHandler(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	breakoutBody := fmt.Sprintf(`{"breakout_type":"single","date":%q,"start_time":"09:00","end_time":"12:00"}`,
		services.DateKey(f.slot, loc))
	_, c, rec = setupEcho(http.MethodPost, "/", strings.NewReader(breakoutBody))
	c.SetParamNames("barberID")
	c.SetParamValues(f.barber.ID)
	require.NoError(t, CreateBreakoutHandler(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Code string                     `json:"code"`
		Data []services.BookingConflict `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, services.CodeConflictsExist, resp.Code)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Ana", resp.Data[0].CustomerName)
}
