package services

import (
	"errors"
	"time"

	"barber_flow_app_go/models"

	"gorm.io/gorm"
)

// CreateBarberClosure blocks a barber for an inclusive date range
func CreateBarberClosure(database *gorm.DB, loc *time.Location, barberID, startDate, endDate string, reason *string) (*models.BarberClosure, error) {
	if err := validateDateRange(startDate, endDate, loc); err != nil {
		return nil, err
	}

	closure := &models.BarberClosure{
		BarberID:  barberID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    sanitizeTextPtr(reason),
	}
	if err := database.Create(closure).Error; err != nil {
		return nil, err
	}
	return closure, nil
}

// DeleteBarberClosure removes a barber closure
func DeleteBarberClosure(database *gorm.DB, id string) error {
	result := database.Delete(&models.BarberClosure{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewCodedError(CodeNotFound, "closure %s not found", id)
	}
	return nil
}

// CreateBarbershopClosure blocks every barber for an inclusive date range
func CreateBarbershopClosure(database *gorm.DB, loc *time.Location, startDate, endDate string, reason *string) (*models.BarbershopClosure, error) {
	if err := validateDateRange(startDate, endDate, loc); err != nil {
		return nil, err
	}

	closure := &models.BarbershopClosure{
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    sanitizeTextPtr(reason),
	}
	if err := database.Create(closure).Error; err != nil {
		return nil, err
	}
	return closure, nil
}

// DeleteBarbershopClosure removes a shop closure
func DeleteBarbershopClosure(database *gorm.DB, id string) error {
	result := database.Delete(&models.BarbershopClosure{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewCodedError(CodeNotFound, "closure %s not found", id)
	}
	return nil
}

// findShopClosure returns the shop closure covering the date key, if any
func findShopClosure(database *gorm.DB, dateKey string) (*models.BarbershopClosure, error) {
	var closure models.BarbershopClosure
	err := database.Where("start_date <= ? AND end_date >= ?", dateKey, dateKey).First(&closure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &closure, nil
}

// findBarberClosure returns the barber closure covering the date key, if any
func findBarberClosure(database *gorm.DB, barberID, dateKey string) (*models.BarberClosure, error) {
	var closure models.BarberClosure
	err := database.Where("barber_id = ? AND start_date <= ? AND end_date >= ?", barberID, dateKey, dateKey).
		First(&closure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &closure, nil
}

// BarberClosedOn reports whether a shop or barber closure covers the date
func BarberClosedOn(database *gorm.DB, barberID, dateKey string) (bool, error) {
	shopClosure, err := findShopClosure(database, dateKey)
	if err != nil {
		return false, err
	}
	if shopClosure != nil {
		return true, nil
	}
	barberClosure, err := findBarberClosure(database, barberID, dateKey)
	if err != nil {
		return false, err
	}
	return barberClosure != nil, nil
}

// validateDateRange checks both dates parse and the range is not inverted
func validateDateRange(startDate, endDate string, loc *time.Location) error {
	if _, err := ParseDateKey(startDate, loc); err != nil {
		return NewCodedError(CodeValidationError, "invalid start date: %v", err)
	}
	if _, err := ParseDateKey(endDate, loc); err != nil {
		return NewCodedError(CodeValidationError, "invalid end date: %v", err)
	}
	if endDate < startDate {
		return NewCodedError(CodeInvalidDateRange, "end date precedes start date")
	}
	return nil
}
