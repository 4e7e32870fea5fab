package handlers

import (
	"net/http"

	"barber_flow_app_go/db"
	"barber_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetDayAvailabilityHandler returns the slot grid for one barber on one day.
// GET /api/barbers/:barberID/availability?date=YYYY-MM-DD
func GetDayAvailabilityHandler(c echo.Context) error {
	cfg := getConfig(c)
	loc := services.Location(cfg.Timezone)

	barberID := c.Param("barberID")
	dateKey := c.QueryParam("date")
	if dateKey == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    services.CodeValidationError,
			Message: "date query parameter is required",
		})
	}

	date, err := services.ParseDateKey(dateKey, loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    services.CodeValidationError,
			Message: "date must be YYYY-MM-DD",
		})
	}

	settings, err := services.GetSettings(db.DB)
	if err != nil {
		return jsonError(c, err)
	}

	slots, err := services.GetDayAvailability(db.DB, loc, settings, barberID, date)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"barber_id": barberID,
		"date":      dateKey,
		"slots":     slots,
	})
}
