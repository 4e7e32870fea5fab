package handlers

import (
	"net/http"

	"barber_flow_app_go/db"
	"barber_flow_app_go/models"
	"barber_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// Catalog handlers: the minimal admin surface for the entities the
// scheduling engine works against (barbers, services, customers, devices).

type barberRequest struct {
	Name          string  `json:"name"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	ReminderHours *int    `json:"reminder_hours"`
}

// CreateBarberHandler registers a barber.
// POST /api/barbers
func CreateBarberHandler(c echo.Context) error {
	var req barberRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "name is required"})
	}
	if req.ReminderHours != nil && *req.ReminderHours <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "reminder_hours must be positive"})
	}

	barber := &models.Barber{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		IsActive:      true,
		ReminderHours: req.ReminderHours,
	}
	if err := db.DB.Create(barber).Error; err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, barber)
}

// ListBarbersHandler lists active barbers.
// GET /api/barbers
func ListBarbersHandler(c echo.Context) error {
	var barbers []models.Barber
	if err := db.DB.Where("is_active = ?", true).Order("name asc").Find(&barbers).Error; err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, barbers)
}

type serviceRequest struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

// CreateBarberServiceHandler adds a service to a barber's catalog.
// POST /api/barbers/:barberID/services
func CreateBarberServiceHandler(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}
	if req.Name == "" || req.DurationMinutes <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    services.CodeValidationError,
			Message: "name and a positive duration_minutes are required",
		})
	}

	service := &models.BarberService{
		BarberID:        c.Param("barberID"),
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if err := db.DB.Create(service).Error; err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, service)
}

// ListBarberServicesHandler lists a barber's active services.
// GET /api/barbers/:barberID/services
func ListBarberServicesHandler(c echo.Context) error {
	var list []models.BarberService
	err := db.DB.Where("barber_id = ? AND is_active = ?", c.Param("barberID"), true).
		Order("name asc").Find(&list).Error
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

type customerRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// CreateCustomerHandler registers a customer.
// POST /api/customers
func CreateCustomerHandler(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "name is required"})
	}

	customer := &models.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	if err := db.DB.Create(customer).Error; err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

type subscriptionRequest struct {
	Endpoint string `json:"endpoint"`
}

// RegisterPushSubscriptionHandler stores a device push endpoint for a
// customer. Re-registering a known endpoint reactivates it.
// POST /api/customers/:customerID/subscriptions
func RegisterPushSubscriptionHandler(c echo.Context) error {
	var req subscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}
	if req.Endpoint == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "endpoint is required"})
	}

	customerID := c.Param("customerID")
	var existing models.PushSubscription
	err := db.DB.Where("endpoint = ?", req.Endpoint).First(&existing).Error
	if err == nil {
		if updErr := db.DB.Model(&existing).
			Updates(map[string]interface{}{"customer_id": customerID, "is_active": true}).Error; updErr != nil {
			return jsonError(c, updErr)
		}
		return c.JSON(http.StatusOK, existing)
	}

	sub := &models.PushSubscription{
		CustomerID: customerID,
		Endpoint:   req.Endpoint,
		IsActive:   true,
	}
	if err := db.DB.Create(sub).Error; err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, sub)
}

type preferencesRequest struct {
	RemindersEnabled bool `json:"reminders_enabled"`
}

// UpdateNotificationPreferencesHandler toggles a customer's reminders.
// PUT /api/customers/:customerID/notification-preferences
func UpdateNotificationPreferencesHandler(c echo.Context) error {
	var req preferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: services.CodeValidationError, Message: "invalid request body"})
	}

	customerID := c.Param("customerID")
	var settings models.CustomerNotificationSettings
	err := db.DB.Where("customer_id = ?", customerID).First(&settings).Error
	if err != nil {
		settings = models.CustomerNotificationSettings{
			CustomerID:       customerID,
			RemindersEnabled: req.RemindersEnabled,
		}
		if createErr := db.DB.Create(&settings).Error; createErr != nil {
			return jsonError(c, createErr)
		}
		return c.JSON(http.StatusCreated, settings)
	}

	if err := db.DB.Model(&settings).Update("reminders_enabled", req.RemindersEnabled).Error; err != nil {
		return jsonError(c, err)
	}
	settings.RemindersEnabled = req.RemindersEnabled
	return c.JSON(http.StatusOK, settings)
}
