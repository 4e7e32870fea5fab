package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"barber_flow_app_go/config"
	"barber_flow_app_go/models"

	"gorm.io/gorm"
)

// CreateReservation books one slot for one barber. The availability check is
// re-run at write time against the store, then the insert races on the
// partial unique index: losing that race is a benign outcome surfaced as
// SLOT_CONFLICT, never a crash.
func CreateReservation(database *gorm.DB, loc *time.Location, settings *models.BarbershopSettings, barberID string, customerID *string, serviceID string, startTime time.Time, notes *string) (*models.Reservation, error) {
	var barber models.Barber
	if err := database.First(&barber, "id = ? AND is_active = ?", barberID, true).Error; err != nil {
		return nil, NewCodedError(CodeNotFound, "barber %s not found", barberID)
	}

	if customerID != nil {
		var customer models.Customer
		if err := database.First(&customer, "id = ?", *customerID).Error; err != nil {
			return nil, NewCodedError(CodeNotFound, "customer %s not found", *customerID)
		}
		if customer.IsBlocked {
			return nil, NewCodedError(CodeUnauthorized, "customer %s is blocked", *customerID)
		}
	}

	var service models.BarberService
	if err := database.First(&service, "id = ? AND barber_id = ?", serviceID, barberID).Error; err != nil {
		return nil, NewCodedError(CodeNotFound, "service %s not found for barber %s", serviceID, barberID)
	}

	maxAhead := DayStart(time.Now(), loc).AddDate(0, 0, settings.MaxBookingDaysAhead+1)
	if startTime.Before(time.Now()) {
		return nil, NewCodedError(CodeValidationError, "cannot book a slot in the past")
	}
	if !startTime.Before(maxAhead) {
		return nil, NewCodedError(CodeValidationError,
			"cannot book more than %d days ahead", settings.MaxBookingDaysAhead)
	}

	bookable, reason, err := IsSlotBookable(database, loc, settings, barberID, startTime)
	if err != nil {
		return nil, err
	}
	if !bookable {
		return nil, NewCodedError(CodeSlotConflict, "slot is not available (%s)", reason)
	}

	reservation := &models.Reservation{
		BarberID:    barberID,
		CustomerID:  customerID,
		ServiceID:   serviceID,
		StartTime:   startTime.UTC(),
		Status:      models.ReservationStatusConfirmed,
		BarberNotes: sanitizeTextPtr(notes),
	}

	if err := database.Create(reservation).Error; err != nil {
		if isUniqueViolation(err) {
			// Someone else booked it between the check and the insert
			return nil, NewCodedError(CodeSlotConflict, "slot was just booked by another customer")
		}
		return nil, err
	}

	return reservation, nil
}

// CancelReservation cancels under optimistic concurrency: the update is
// conditioned on the caller's expected version. Zero rows affected on an
// existing row means another writer got there first; the caller refetches and
// retries instead of clobbering the concurrent change.
func CancelReservation(database *gorm.DB, cfg *config.Config, id, cancelledBy string, reason *string, expectedVersion int) (*models.Reservation, error) {
	now := time.Now()
	result := database.Model(&models.Reservation{}).
		Where("id = ? AND version = ? AND status = ?", id, expectedVersion, models.ReservationStatusConfirmed).
		Updates(map[string]interface{}{
			"status":              models.ReservationStatusCancelled,
			"cancelled_by":        cancelledBy,
			"cancellation_reason": sanitizeTextPtr(reason),
			"cancelled_at":        now,
			"version":             expectedVersion + 1,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, staleUpdateError(database, id)
	}

	reservation, err := GetReservationByID(database, id)
	if err != nil {
		return nil, err
	}

	// Best-effort: the other party hears about the cancellation, but a
	// notification failure must never fail the cancellation itself
	go notifyCancellation(database, cfg, reservation, cancelledBy)

	return reservation, nil
}

// CompleteReservation marks a confirmed reservation completed, under the same
// optimistic version check as cancellation
func CompleteReservation(database *gorm.DB, id string, expectedVersion int) (*models.Reservation, error) {
	result := database.Model(&models.Reservation{}).
		Where("id = ? AND version = ? AND status = ?", id, expectedVersion, models.ReservationStatusConfirmed).
		Updates(map[string]interface{}{
			"status":  models.ReservationStatusCompleted,
			"version": expectedVersion + 1,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, staleUpdateError(database, id)
	}
	return GetReservationByID(database, id)
}

// UpdateReservationNotes edits the barber's notes, version-checked like every
// other reservation mutation
func UpdateReservationNotes(database *gorm.DB, id string, notes *string, expectedVersion int) (*models.Reservation, error) {
	result := database.Model(&models.Reservation{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"barber_notes": sanitizeTextPtr(notes),
			"version":      expectedVersion + 1,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, staleUpdateError(database, id)
	}
	return GetReservationByID(database, id)
}

// GetReservationByID fetches a reservation with its relationships
func GetReservationByID(database *gorm.DB, id string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := database.Preload("Barber").Preload("Customer").Preload("Service").
		First(&reservation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewCodedError(CodeNotFound, "reservation %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetBarberReservations lists a barber's non-cancelled reservations in a window
func GetBarberReservations(database *gorm.DB, barberID string, from, to time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := database.Preload("Customer").Preload("Service").
		Where("barber_id = ? AND status != ? AND start_time >= ? AND start_time < ?",
			barberID, models.ReservationStatusCancelled, from.UTC(), to.UTC()).
		Order("start_time asc").
		Find(&reservations).Error
	return reservations, err
}

// cancelReservationBySystem cancels on behalf of the system (breakout
// creation), re-reading the current version and retrying once if a concurrent
// writer touched the row between read and update
func cancelReservationBySystem(database *gorm.DB, id, cancelledBy, reason string) error {
	for attempt := 0; attempt < 2; attempt++ {
		reservation, err := GetReservationByID(database, id)
		if err != nil {
			return err
		}
		if !reservation.IsCancellable() {
			return nil // already cancelled or completed, nothing to do
		}

		now := time.Now()
		result := database.Model(&models.Reservation{}).
			Where("id = ? AND version = ? AND status = ?", id, reservation.Version, models.ReservationStatusConfirmed).
			Updates(map[string]interface{}{
				"status":              models.ReservationStatusCancelled,
				"cancelled_by":        cancelledBy,
				"cancellation_reason": reason,
				"cancelled_at":        now,
				"version":             reservation.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
	}
	return NewCodedError(CodeConcurrencyConflict, "reservation %s kept changing during cancellation", id)
}

// staleUpdateError distinguishes a stale version from a missing row
func staleUpdateError(database *gorm.DB, id string) error {
	var count int64
	if err := database.Model(&models.Reservation{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NewCodedError(CodeNotFound, "reservation %s not found", id)
	}
	return NewCodedError(CodeConcurrencyConflict,
		"reservation %s was modified concurrently, refetch and retry", id)
}

// isUniqueViolation detects the partial unique index firing on insert
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// notifyCancellation tells the counterpart about a cancellation over every
// channel we have an address for. Failures are logged and swallowed.
func notifyCancellation(database *gorm.DB, cfg *config.Config, reservation *models.Reservation, cancelledBy string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[NOTIFY] panic while notifying cancellation for %s: %v", reservation.ID, r)
		}
	}()

	if err := SendCancellationNotice(database, cfg, reservation, cancelledBy); err != nil {
		log.Printf("[NOTIFY] cancellation notice for %s failed: %v", reservation.ID, err)
	}
}
