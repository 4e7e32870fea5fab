package handlers

import (
	"net/http"

	"barber_flow_app_go/db"
	"barber_flow_app_go/services/jobs"

	"github.com/labstack/echo/v4"
)

// TriggerRemindersHandler runs one reminder pass immediately and reports the
// breakdown. Idempotent; already-delivered occurrences are skipped.
// POST /api/jobs/reminders
func TriggerRemindersHandler(c echo.Context) error {
	cfg := getConfig(c)

	results, err := jobs.ProcessReminders(db.DB, cfg, getPushSender(c))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}
