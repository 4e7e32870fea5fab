package services

import (
	"errors"

	"barber_flow_app_go/config"
	"barber_flow_app_go/models"

	"gorm.io/gorm"
)

// Default shop configuration used when no settings row exists yet
const (
	defaultOpenDays    = "monday,tuesday,wednesday,thursday,friday,saturday"
	defaultShopStart   = "09:00"
	defaultShopEnd     = "19:00"
	defaultSlotMinutes = 30
	defaultBookingDays = 30
	defaultLeadHours   = 3
)

// GetSettings loads the shop settings singleton, creating it with defaults on
// first read. Every availability computation takes the returned value as an
// explicit parameter; there is no process-wide mutable settings global.
func GetSettings(database *gorm.DB) (*models.BarbershopSettings, error) {
	return getOrCreateSettings(database, defaultSlotMinutes, defaultBookingDays, defaultLeadHours)
}

// EnsureSettings seeds the settings singleton at boot with the env-configured
// scheduling defaults. A row that already exists wins over the environment.
func EnsureSettings(database *gorm.DB, cfg *config.Config) (*models.BarbershopSettings, error) {
	return getOrCreateSettings(database, cfg.SlotMinutes, cfg.MaxBookingDaysAhead, cfg.ReminderHours)
}

func getOrCreateSettings(database *gorm.DB, slotMinutes, maxBookingDaysAhead, reminderHours int) (*models.BarbershopSettings, error) {
	var settings models.BarbershopSettings
	err := database.First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.BarbershopSettings{
		OpenDays:            defaultOpenDays,
		StartTime:           defaultShopStart,
		EndTime:             defaultShopEnd,
		SlotMinutes:         slotMinutes,
		MaxBookingDaysAhead: maxBookingDaysAhead,
		ReminderHours:       reminderHours,
	}
	if err := database.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings validates and persists admin changes to the shop settings
func UpdateSettings(database *gorm.DB, settings *models.BarbershopSettings) error {
	for _, day := range settings.OpenDaysList() {
		if !models.IsValidWeekday(day) {
			return NewCodedError(CodeValidationError, "invalid open day %q", day)
		}
	}
	if _, _, err := ParseHHMM(settings.StartTime); err != nil {
		return NewCodedError(CodeValidationError, "invalid start time: %v", err)
	}
	if _, _, err := ParseHHMM(settings.EndTime); err != nil {
		return NewCodedError(CodeValidationError, "invalid end time: %v", err)
	}
	if settings.StartTime >= settings.EndTime {
		return NewCodedError(CodeInvalidTimeRange, "shop start time must precede end time")
	}
	if settings.SlotMinutes <= 0 {
		return NewCodedError(CodeValidationError, "slot minutes must be positive")
	}

	return database.Save(settings).Error
}
