package services

import (
	"fmt"
	"testing"
	"time"

	"barber_flow_app_go/config"
	"barber_flow_app_go/db"
	"barber_flow_app_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupSchedulingTestDB creates a fresh shared-cache in-memory database with
// the full schema and the partial slot index. Shared cache keeps the same
// database visible across the connection pool, which the concurrency tests
// need.
func setupSchedulingTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:mem_%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.New().String())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection serializes statements; racing writers still
	// interleave between their availability check and their insert, which
	// is exactly the race the unique index has to win
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = database.AutoMigrate(
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
	require.NoError(t, err)
	require.NoError(t, db.EnsureSlotIndex(database))

	return database
}

func testConfig() *config.Config {
	return &config.Config{
		Timezone:             "America/Bogota",
		EmailTestMode:        true,
		NotificationTestMode: true,
		ReminderCronSpec:     "@every 45m",
		ReminderHours:        3,
	}
}

func testLocation(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	return loc
}

func seedBarber(t *testing.T, database *gorm.DB) *models.Barber {
	barber := &models.Barber{Name: "Nico", IsActive: true}
	require.NoError(t, database.Create(barber).Error)
	return barber
}

func seedCustomer(t *testing.T, database *gorm.DB, name string) *models.Customer {
	customer := &models.Customer{Name: name}
	require.NoError(t, database.Create(customer).Error)
	return customer
}

func seedService(t *testing.T, database *gorm.DB, barberID string) *models.BarberService {
	service := &models.BarberService{
		BarberID:        barberID,
		Name:            "Classic cut",
		DurationMinutes: 30,
		Price:           15,
		IsActive:        true,
	}
	require.NoError(t, database.Create(service).Error)
	return service
}

func seedSettings(t *testing.T, database *gorm.DB) *models.BarbershopSettings {
	settings, err := GetSettings(database)
	require.NoError(t, err)
	return settings
}

// upcoming returns the next zone-local date with the given weekday, at least
// one day ahead so bookings on it are never "in the past"
func upcoming(t *testing.T, loc *time.Location, weekday string) time.Time {
	d := NextWeekday(time.Now().In(loc).AddDate(0, 0, 1), weekday, loc)
	assert.Equal(t, weekday, WeekdayKey(d, loc))
	return d
}

func at(t *testing.T, date time.Time, hhmm string, loc *time.Location) time.Time {
	instant, err := OnDate(date, hhmm, loc)
	require.NoError(t, err)
	return instant
}
