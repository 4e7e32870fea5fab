package handlers

import (
	"net/http"

	"barber_flow_app_go/db"
	"barber_flow_app_go/models"
	"barber_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// CreateReservationRequest books one slot. StartTimestamp is epoch
// milliseconds, the only instant format accepted at the boundary.
type CreateReservationRequest struct {
	BarberID       string  `json:"barber_id"`
	CustomerID     *string `json:"customer_id"` // nil for walk-ins
	ServiceID      string  `json:"service_id"`
	StartTimestamp int64   `json:"start_timestamp"`
	Notes          *string `json:"notes"`
}

// CreateReservationHandler creates a reservation.
// POST /api/reservations
func CreateReservationHandler(c echo.Context) error {
	cfg := getConfig(c)
	loc := services.Location(cfg.Timezone)

	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}
	if req.BarberID == "" || req.ServiceID == "" || req.StartTimestamp <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    services.CodeValidationError,
			Message: "barber_id, service_id and start_timestamp are required",
		})
	}

	settings, err := services.GetSettings(db.DB)
	if err != nil {
		return jsonError(c, err)
	}

	reservation, err := services.CreateReservation(db.DB, loc, settings,
		req.BarberID, req.CustomerID, req.ServiceID, services.FromMillis(req.StartTimestamp), req.Notes)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, reservation)
}

// CancelReservationRequest carries the optimistic version observed by the
// caller; a stale version gets a 409 rather than a silent overwrite
type CancelReservationRequest struct {
	Version     int     `json:"version"`
	CancelledBy string  `json:"cancelled_by"`
	Reason      *string `json:"reason"`
}

// CancelReservationHandler cancels a confirmed reservation.
// POST /api/reservations/:id/cancel
func CancelReservationHandler(c echo.Context) error {
	cfg := getConfig(c)

	var req CancelReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	cancelledBy := req.CancelledBy
	switch cancelledBy {
	case models.CancelledByCustomer, models.CancelledByBarber, models.CancelledByAdmin:
	case "":
		cancelledBy = models.CancelledByCustomer
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    services.CodeValidationError,
			Message: "cancelled_by must be customer, barber or admin",
		})
	}

	reservation, err := services.CancelReservation(db.DB, cfg, c.Param("id"), cancelledBy, req.Reason, req.Version)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// VersionedRequest is the body for mutations that only need the version check
type VersionedRequest struct {
	Version int `json:"version"`
}

// CompleteReservationHandler marks a reservation completed.
// POST /api/reservations/:id/complete
func CompleteReservationHandler(c echo.Context) error {
	var req VersionedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	reservation, err := services.CompleteReservation(db.DB, c.Param("id"), req.Version)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// UpdateNotesRequest replaces the barber's private notes on a reservation
type UpdateNotesRequest struct {
	Version int     `json:"version"`
	Notes   *string `json:"notes"`
}

// UpdateReservationNotesHandler updates barber notes.
// PATCH /api/reservations/:id/notes
func UpdateReservationNotesHandler(c echo.Context) error {
	var req UpdateNotesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	reservation, err := services.UpdateReservationNotes(db.DB, c.Param("id"), req.Notes, req.Version)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// GetReservationHandler returns one reservation with its relations.
// GET /api/reservations/:id
func GetReservationHandler(c echo.Context) error {
	reservation, err := services.GetReservationByID(db.DB, c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// GetBarberReservationsHandler lists a barber's reservations in a date range.
// GET /api/barbers/:barberID/reservations?from=YYYY-MM-DD&to=YYYY-MM-DD
func GetBarberReservationsHandler(c echo.Context) error {
	cfg := getConfig(c)
	loc := services.Location(cfg.Timezone)

	from, err := services.ParseDateKey(c.QueryParam("from"), loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "from must be YYYY-MM-DD"})
	}
	to, err := services.ParseDateKey(c.QueryParam("to"), loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "to must be YYYY-MM-DD"})
	}

	reservations, err := services.GetBarberReservations(db.DB, c.Param("barberID"),
		services.DayStart(from, loc), services.DayEnd(to, loc))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}
