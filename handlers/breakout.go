package handlers

import (
	"net/http"

	"barber_flow_app_go/db"
	"barber_flow_app_go/models"
	"barber_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// BreakoutRequest covers all three breakout variants; which fields are
// required depends on breakout_type
type BreakoutRequest struct {
	BreakoutType string  `json:"breakout_type"`
	StartTime    string  `json:"start_time"`
	EndTime      *string `json:"end_time"`
	Date         string  `json:"date"`       // single
	StartDate    string  `json:"start_date"` // date_range
	EndDate      string  `json:"end_date"`   // date_range
	DayOfWeek    string  `json:"day_of_week"` // recurring
	Reason       *string `json:"reason"`

	// CancelConflicts authorizes cancelling the reservations the breakout
	// would collide with; without it a collision aborts the creation
	CancelConflicts bool `json:"cancel_conflicts"`
}

func (r *BreakoutRequest) toModel(barberID string) (*models.BarberBreakout, error) {
	switch r.BreakoutType {
	case models.BreakoutTypeSingle:
		return models.NewSingleBreakout(barberID, r.Date, r.StartTime, r.EndTime, r.Reason), nil
	case models.BreakoutTypeDateRange:
		return models.NewRangeBreakout(barberID, r.StartDate, r.EndDate, r.StartTime, r.EndTime, r.Reason), nil
	case models.BreakoutTypeRecurring:
		return models.NewRecurringBreakout(barberID, r.DayOfWeek, r.StartTime, r.EndTime, r.Reason), nil
	default:
		return nil, services.NewCodedError(services.CodeValidationError,
			"breakout_type must be single, date_range or recurring")
	}
}

// CreateBreakoutHandler creates a breakout, reporting or cancelling any
// reservations it collides with.
// POST /api/barbers/:barberID/breakouts
func CreateBreakoutHandler(c echo.Context) error {
	cfg := getConfig(c)
	loc := services.Location(cfg.Timezone)

	var req BreakoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	breakout, err := req.toModel(c.Param("barberID"))
	if err != nil {
		return jsonError(c, err)
	}

	settings, err := services.GetSettings(db.DB)
	if err != nil {
		return jsonError(c, err)
	}

	result, err := services.CreateBreakout(db.DB, loc, settings, breakout, req.CancelConflicts)
	if err != nil {
		if services.IsCode(err, services.CodeConflictsExist) && result != nil {
			return jsonErrorData(c, err, result.Conflicts)
		}
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// CheckBreakoutConflictsHandler previews which reservations a breakout would
// collide with, without creating anything.
// POST /api/barbers/:barberID/breakouts/conflicts
func CheckBreakoutConflictsHandler(c echo.Context) error {
	cfg := getConfig(c)
	loc := services.Location(cfg.Timezone)

	var req BreakoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	breakout, err := req.toModel(c.Param("barberID"))
	if err != nil {
		return jsonError(c, err)
	}

	settings, err := services.GetSettings(db.DB)
	if err != nil {
		return jsonError(c, err)
	}

	conflicts, err := services.CheckBreakoutConflicts(db.DB, loc, settings, breakout)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"has_conflicts": len(conflicts) > 0,
		"conflicts":     conflicts,
	})
}

// DeactivateBreakoutHandler retires a breakout; already-cancelled
// reservations stay cancelled.
// DELETE /api/breakouts/:id
func DeactivateBreakoutHandler(c echo.Context) error {
	if err := services.DeactivateBreakout(db.DB, c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetBarberBreakoutsHandler lists a barber's active breakouts.
// GET /api/barbers/:barberID/breakouts
func GetBarberBreakoutsHandler(c echo.Context) error {
	breakouts, err := services.GetBarberBreakouts(db.DB, c.Param("barberID"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, breakouts)
}
