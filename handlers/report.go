package handlers

import (
	"fmt"
	"net/http"

	"barber_flow_app_go/db"
	"barber_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// DownloadReservationsReportHandler streams an Excel report of all
// reservations in the range.
// GET /api/reports/reservations?from=YYYY-MM-DD&to=YYYY-MM-DD
func DownloadReservationsReportHandler(c echo.Context) error {
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

	buf, err := services.BuildReservationsReport(db.DB, loc, from, to)
	if err != nil {
		return jsonError(c, err)
	}

	filename := fmt.Sprintf("reservations_%s_%s.xlsx",
		services.DateKey(from, loc), services.DateKey(to, loc))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
