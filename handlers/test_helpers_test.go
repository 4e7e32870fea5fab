package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"barber_flow_app_go/config"
	"barber_flow_app_go/db"
	"barber_flow_app_go/models"
	"barber_flow_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests while keeping the database
	// visible to the whole connection pool
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.BarbershopSettings{},
		&models.Barber{},
		&models.BarberService{},
		&models.Customer{},
		&models.CustomerNotificationSettings{},
		&models.PushSubscription{},
		&models.WorkDay{},
		&models.BarberClosure{},
		&models.BarbershopClosure{},
		&models.BarberBreakout{},
		&models.RecurringAppointment{},
		&models.Reservation{},
		&models.NotificationLog{},
	)
	assert.NoError(t, err)
	assert.NoError(t, db.EnsureSlotIndex(testDB))

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Timezone:             "America/Bogota",
		ReminderHours:        3,
		ReminderCronSpec:     "@every 45m",
		NotificationTestMode: true,
		EmailTestMode:        true,
	})
	c.Set("pushSender", services.LogPushSender{})

	return e, c, rec
}
