package handlers

import (
	"net/http"
	"strings"

	"barber_flow_app_go/db"
	"barber_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetSettingsHandler returns the shop settings, creating defaults on first
// access.
// GET /api/settings
func GetSettingsHandler(c echo.Context) error {
	settings, err := services.GetSettings(db.DB)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettingsRequest carries the editable shop-wide knobs
type UpdateSettingsRequest struct {
	OpenDays            []string `json:"open_days"`
	StartTime           string   `json:"start_time"`
	EndTime             string   `json:"end_time"`
	SlotMinutes         int      `json:"slot_minutes"`
	MaxBookingDaysAhead int      `json:"max_booking_days_ahead"`
	ReminderHours       int      `json:"reminder_hours"`
}

// UpdateSettingsHandler replaces the shop settings.
// PUT /api/settings
func UpdateSettingsHandler(c echo.Context) error {
	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	settings, err := services.GetSettings(db.DB)
	if err != nil {
		return jsonError(c, err)
	}

	settings.OpenDays = strings.Join(req.OpenDays, ",")
	settings.StartTime = req.StartTime
	settings.EndTime = req.EndTime
	settings.SlotMinutes = req.SlotMinutes
	settings.MaxBookingDaysAhead = req.MaxBookingDaysAhead
	settings.ReminderHours = req.ReminderHours

	if err := services.UpdateSettings(db.DB, settings); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// GetWeekScheduleHandler returns all seven workday rows for a barber, lazily
// derived from the shop defaults.
// GET /api/barbers/:barberID/workdays
func GetWeekScheduleHandler(c echo.Context) error {
	settings, err := services.GetSettings(db.DB)
	if err != nil {
		return jsonError(c, err)
	}

	schedule, err := services.GetWeekSchedule(db.DB, settings, c.Param("barberID"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, schedule)
}

// UpdateWorkDayRequest adjusts one weekday of a barber's schedule
type UpdateWorkDayRequest struct {
	IsWorking bool    `json:"is_working"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// UpdateWorkDayHandler updates a barber's hours for one weekday.
// PUT /api/barbers/:barberID/workdays/:weekday
func UpdateWorkDayHandler(c echo.Context) error {
	var req UpdateWorkDayRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	settings, err := services.GetSettings(db.DB)
	if err != nil {
		return jsonError(c, err)
	}

	workDay, err := services.UpdateWorkDay(db.DB, settings, c.Param("barberID"), c.Param("weekday"),
		req.IsWorking, req.StartTime, req.EndTime)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, workDay)
}
