package handlers

import (
	"net/http"

	"barber_flow_app_go/db"
	"barber_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// ClosureRequest is a date range during which bookings are blocked,
// inclusive on both ends
type ClosureRequest struct {
	StartDate string  `json:"start_date"` // YYYY-MM-DD
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD
	Reason    *string `json:"reason"`
}

// CreateBarberClosureHandler blocks a barber's calendar for a date range.
// POST /api/barbers/:barberID/closures
func CreateBarberClosureHandler(c echo.Context) error {
	cfg := getConfig(c)
	loc := services.Location(cfg.Timezone)

	var req ClosureRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	closure, err := services.CreateBarberClosure(db.DB, loc, c.Param("barberID"), req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, closure)
}

// DeleteBarberClosureHandler removes a barber closure.
// DELETE /api/barber-closures/:id
func DeleteBarberClosureHandler(c echo.Context) error {
	if err := services.DeleteBarberClosure(db.DB, c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateBarbershopClosureHandler blocks the whole shop for a date range.
// POST /api/closures
func CreateBarbershopClosureHandler(c echo.Context) error {
	cfg := getConfig(c)
	loc := services.Location(cfg.Timezone)

	var req ClosureRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	closure, err := services.CreateBarbershopClosure(db.DB, loc, req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, closure)
}

// DeleteBarbershopClosureHandler removes a shop-wide closure.
// DELETE /api/closures/:id
func DeleteBarbershopClosureHandler(c echo.Context) error {
	if err := services.DeleteBarbershopClosure(db.DB, c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
