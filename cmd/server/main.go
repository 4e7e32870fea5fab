package main

import (
	"log"

	"barber_flow_app_go/config"
	"barber_flow_app_go/db"
	"barber_flow_app_go/handlers"
	"barber_flow_app_go/models"
	"barber_flow_app_go/services"
	"barber_flow_app_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The partial unique index on active reservation slots cannot be
	// expressed through struct tags
	if err := db.EnsureSlotIndex(db.DB); err != nil {
		log.Fatalf("Failed to create slot index: %v", err)
	}

	// Seed the settings singleton with the env-configured scheduling defaults
	if _, err := services.EnsureSettings(db.DB, cfg); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Push transport; swap for a real sender in deployment
	var sender services.PushSender = services.LogPushSender{}

	// Make config and the push transport available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			c.Set("pushSender", sender)
			return next(c)
		}
	})

	api := e.Group("/api")

	// Shop settings
	api.GET("/settings", handlers.GetSettingsHandler)
	api.PUT("/settings", handlers.UpdateSettingsHandler)

	// Catalog
	api.POST("/barbers", handlers.CreateBarberHandler)
	api.GET("/barbers", handlers.ListBarbersHandler)
	api.POST("/barbers/:barberID/services", handlers.CreateBarberServiceHandler)
	api.GET("/barbers/:barberID/services", handlers.ListBarberServicesHandler)
	api.POST("/customers", handlers.CreateCustomerHandler)
	api.POST("/customers/:customerID/subscriptions", handlers.RegisterPushSubscriptionHandler)
	api.PUT("/customers/:customerID/notification-preferences", handlers.UpdateNotificationPreferencesHandler)

	// Schedules
	api.GET("/barbers/:barberID/workdays", handlers.GetWeekScheduleHandler)
	api.PUT("/barbers/:barberID/workdays/:weekday", handlers.UpdateWorkDayHandler)
	api.POST("/barbers/:barberID/closures", handlers.CreateBarberClosureHandler)
	api.DELETE("/barber-closures/:id", handlers.DeleteBarberClosureHandler)
	api.POST("/closures", handlers.CreateBarbershopClosureHandler)
	api.DELETE("/closures/:id", handlers.DeleteBarbershopClosureHandler)

	// Breakouts
	api.POST("/barbers/:barberID/breakouts", handlers.CreateBreakoutHandler)
	api.POST("/barbers/:barberID/breakouts/conflicts", handlers.CheckBreakoutConflictsHandler)
	api.GET("/barbers/:barberID/breakouts", handlers.GetBarberBreakoutsHandler)
	api.DELETE("/breakouts/:id", handlers.DeactivateBreakoutHandler)

	// Recurring appointments
	api.POST("/barbers/:barberID/recurring", handlers.CreateRecurringAppointmentHandler)
	api.GET("/barbers/:barberID/recurring", handlers.GetBarberRecurringAppointmentsHandler)
	api.GET("/barbers/:barberID/recurring/conflicts", handlers.CheckRecurringConflictsHandler)
	api.DELETE("/recurring/:id", handlers.DeactivateRecurringAppointmentHandler)

	// Availability and reservations
	api.GET("/barbers/:barberID/availability", handlers.GetDayAvailabilityHandler)
	api.GET("/barbers/:barberID/reservations", handlers.GetBarberReservationsHandler)
	api.POST("/reservations", handlers.CreateReservationHandler)
	api.GET("/reservations/:id", handlers.GetReservationHandler)
	api.POST("/reservations/:id/cancel", handlers.CancelReservationHandler)
	api.POST("/reservations/:id/complete", handlers.CompleteReservationHandler)
	api.PATCH("/reservations/:id/notes", handlers.UpdateReservationNotesHandler)

	// Jobs and reports
	api.POST("/jobs/reminders", handlers.TriggerRemindersHandler)
	api.GET("/reports/reservations", handlers.DownloadReservationsReportHandler)

	// Background reminder scheduler
	scheduler := jobs.StartReminderScheduler(db.DB, cfg, sender)
	defer scheduler.Stop()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
