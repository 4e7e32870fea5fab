package handlers

import (
	"net/http"

	"barber_flow_app_go/db"
	"barber_flow_app_go/models"
	"barber_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// RecurringAppointmentRequest reserves a weekly slot for a customer
type RecurringAppointmentRequest struct {
	CustomerID string  `json:"customer_id"`
	ServiceID  string  `json:"service_id"`
	DayOfWeek  string  `json:"day_of_week"`
	TimeSlot   string  `json:"time_slot"` // HH:MM
	Notes      *string `json:"notes"`
}

// CreateRecurringAppointmentHandler creates a weekly standing appointment.
// POST /api/barbers/:barberID/recurring
func CreateRecurringAppointmentHandler(c echo.Context) error {
	cfg := getConfig(c)
	loc := services.Location(cfg.Timezone)

	var req RecurringAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	settings, err := services.GetSettings(db.DB)
	if err != nil {
		return jsonError(c, err)
	}

	recurring := &models.RecurringAppointment{
		BarberID:   c.Param("barberID"),
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		DayOfWeek:  req.DayOfWeek,
		TimeSlot:   req.TimeSlot,
		Notes:      req.Notes,
	}

	created, err := services.CreateRecurringAppointment(db.DB, loc, settings, recurring)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// CheckRecurringConflictsHandler previews collisions between a proposed
// weekly slot and existing one-off reservations over the next occurrences.
// GET /api/barbers/:barberID/recurring/conflicts?day_of_week=monday&time_slot=HH:MM
func CheckRecurringConflictsHandler(c echo.Context) error {
	cfg := getConfig(c)
	loc := services.Location(cfg.Timezone)

	dayOfWeek := c.QueryParam("day_of_week")
	timeSlot := c.QueryParam("time_slot")
	if !models.IsValidWeekday(dayOfWeek) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid day_of_week"})
	}
	if _, _, err := services.ParseHHMM(timeSlot); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "time_slot must be HH:MM"})
	}

	taken, err := services.CheckRecurringConflict(db.DB, c.Param("barberID"), dayOfWeek, timeSlot)
	if err != nil {
		return jsonError(c, err)
	}

	conflicts, err := services.CheckRecurringReservationConflicts(db.DB, loc, c.Param("barberID"), dayOfWeek, timeSlot)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"slot_taken":            taken,
		"reservation_conflicts": conflicts,
	})
}

// DeactivateRecurringAppointmentHandler ends a standing appointment; future
// projections stop, past reservations are untouched.
// DELETE /api/recurring/:id
func DeactivateRecurringAppointmentHandler(c echo.Context) error {
	if err := services.DeactivateRecurringAppointment(db.DB, c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetBarberRecurringAppointmentsHandler lists a barber's active standing
// appointments.
// GET /api/barbers/:barberID/recurring
func GetBarberRecurringAppointmentsHandler(c echo.Context) error {
	recurring, err := services.GetBarberRecurringAppointments(db.DB, c.Param("barberID"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, recurring)
}
