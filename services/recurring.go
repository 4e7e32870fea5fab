package services

import (
	"time"

	"barber_flow_app_go/models"

	"gorm.io/gorm"
)

// CreateRecurringAppointment inserts a weekly template booking. Validation
// runs in order and fails fast before any mutation: referenced entities,
// shop/barber schedule for the weekday, working window, then slot ownership.
func CreateRecurringAppointment(database *gorm.DB, loc *time.Location, settings *models.BarbershopSettings, recurring *models.RecurringAppointment) (*models.RecurringAppointment, error) {
	if !models.IsValidWeekday(recurring.DayOfWeek) {
		return nil, NewCodedError(CodeValidationError, "invalid day of week %q", recurring.DayOfWeek)
	}
	if _, _, err := ParseHHMM(recurring.TimeSlot); err != nil {
		return nil, NewCodedError(CodeValidationError, "invalid time slot: %v", err)
	}

	var barber models.Barber
	if err := database.First(&barber, "id = ? AND is_active = ?", recurring.BarberID, true).Error; err != nil {
		return nil, NewCodedError(CodeNotFound, "barber %s not found", recurring.BarberID)
	}

	var customer models.Customer
	if err := database.First(&customer, "id = ?", recurring.CustomerID).Error; err != nil {
		return nil, NewCodedError(CodeNotFound, "customer %s not found", recurring.CustomerID)
	}
	if customer.IsBlocked {
		return nil, NewCodedError(CodeUnauthorized, "customer %s is blocked", recurring.CustomerID)
	}

	var service models.BarberService
	if err := database.First(&service, "id = ? AND barber_id = ?", recurring.ServiceID, recurring.BarberID).Error; err != nil {
		return nil, NewCodedError(CodeNotFound, "service %s not found for barber %s", recurring.ServiceID, recurring.BarberID)
	}

	if !settings.IsOpenOn(recurring.DayOfWeek) {
		return nil, NewCodedError(CodeValidationError, "shop is closed on %s", recurring.DayOfWeek)
	}
	workDay, err := GetWorkDay(database, settings, recurring.BarberID, recurring.DayOfWeek)
	if err != nil {
		return nil, err
	}
	if !workDay.IsWorking || workDay.StartTime == nil || workDay.EndTime == nil {
		return nil, NewCodedError(CodeValidationError, "barber does not work on %s", recurring.DayOfWeek)
	}
	if recurring.TimeSlot < *workDay.StartTime || recurring.TimeSlot >= *workDay.EndTime {
		return nil, NewCodedError(CodeInvalidTimeRange,
			"time slot %s is outside working hours %s-%s", recurring.TimeSlot, *workDay.StartTime, *workDay.EndTime)
	}

	taken, err := CheckRecurringConflict(database, recurring.BarberID, recurring.DayOfWeek, recurring.TimeSlot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, NewCodedError(CodeSlotConflict,
			"an active recurring appointment already owns %s %s", recurring.DayOfWeek, recurring.TimeSlot)
	}

	recurring.Notes = sanitizeTextPtr(recurring.Notes)
	recurring.IsActive = true
	if err := database.Create(recurring).Error; err != nil {
		return nil, err
	}
	return recurring, nil
}

// CheckRecurringConflict reports whether another active recurring appointment
// already owns the exact (barber, day, slot)
func CheckRecurringConflict(database *gorm.DB, barberID, dayOfWeek, timeSlot string) (bool, error) {
	var count int64
	err := database.Model(&models.RecurringAppointment{}).
		Where("barber_id = ? AND day_of_week = ? AND time_slot = ? AND is_active = ?",
			barberID, dayOfWeek, timeSlot, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CheckRecurringReservationConflicts enumerates the next concrete dates
// matching the weekday and returns colliding non-cancelled reservations in
// the same shape the breakout pre-check uses
func CheckRecurringReservationConflicts(database *gorm.DB, loc *time.Location, barberID, dayOfWeek, timeSlot string) ([]BookingConflict, error) {
	if !models.IsValidWeekday(dayOfWeek) {
		return nil, NewCodedError(CodeValidationError, "invalid day of week %q", dayOfWeek)
	}
	if _, _, err := ParseHHMM(timeSlot); err != nil {
		return nil, NewCodedError(CodeValidationError, "invalid time slot: %v", err)
	}

	today := DayStart(time.Now(), loc)
	var conflicts []BookingConflict
	for _, date := range NextOccurrences(today, dayOfWeek, recurringConflictWeeks, loc) {
		slotStart, err := OnDate(date, timeSlot, loc)
		if err != nil {
			return nil, err
		}

		var reservations []models.Reservation
		err = database.Preload("Customer").Preload("Service").
			Where("barber_id = ? AND status != ? AND start_time = ?",
				barberID, models.ReservationStatusCancelled, slotStart.UTC()).
			Find(&reservations).Error
		if err != nil {
			return nil, err
		}

		for _, r := range reservations {
			customerName := "walk-in"
			if r.Customer != nil {
				customerName = r.Customer.Name
			}
			conflicts = append(conflicts, BookingConflict{
				ReservationID: r.ID,
				CustomerName:  customerName,
				Date:          DateKey(r.StartTime, loc),
				Time:          HHMM(r.StartTime, loc),
				ServiceName:   r.Service.Name,
			})
		}
	}
	return conflicts, nil
}

// DeactivateRecurringAppointment soft-deletes a recurring template. Rows are
// never hard-deleted while the audit trail might reference them.
func DeactivateRecurringAppointment(database *gorm.DB, id string) error {
	now := time.Now()
	result := database.Model(&models.RecurringAppointment{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":      false,
			"deactivated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewCodedError(CodeNotFound, "active recurring appointment %s not found", id)
	}
	return nil
}

// GetBarberRecurringAppointments lists a barber's active recurring templates
func GetBarberRecurringAppointments(database *gorm.DB, barberID string) ([]models.RecurringAppointment, error) {
	var rows []models.RecurringAppointment
	err := database.Preload("Customer").Preload("Service").
		Where("barber_id = ? AND is_active = ?", barberID, true).
		Order("day_of_week, time_slot").
		Find(&rows).Error
	return rows, err
}
