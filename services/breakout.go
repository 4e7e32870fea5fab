package services

import (
	"time"

	"barber_flow_app_go/models"

	"gorm.io/gorm"
)

// Conflict-enumeration horizons. Breakout creation must surface every
// reservation it would swallow, but unbounded ranges would make the pre-check
// arbitrarily expensive, so range breakouts are capped and recurring ones
// look at the next few occurrences only.
const (
	rangeConflictHorizonDays = 30
	recurringConflictWeeks   = 4
)

// BookingConflict describes a reservation colliding with a proposed block,
// in the shape the caller needs to present a cancel-or-abort choice
type BookingConflict struct {
	ReservationID string `json:"reservation_id"`
	CustomerName  string `json:"customer_name"`
	Date          string `json:"date"` // "YYYY-MM-DD"
	Time          string `json:"time"` // "HH:MM"
	ServiceName   string `json:"service_name"`
}

// BreakoutResult is the outcome of a create attempt: either the persisted
// breakout, or the conflicts the caller must decide about
type BreakoutResult struct {
	Breakout  *models.BarberBreakout `json:"breakout,omitempty"`
	Conflicts []BookingConflict      `json:"conflicts,omitempty"`
	Cancelled int                    `json:"cancelled_reservations,omitempty"`
}

// CheckBreakoutConflicts enumerates the concrete dates the proposed breakout
// will affect and returns the non-cancelled reservations falling inside its
// window on those dates. Conflicts are reported, never thrown: the caller
// chooses between aborting and auto-cancelling.
func CheckBreakoutConflicts(database *gorm.DB, loc *time.Location, settings *models.BarbershopSettings, breakout *models.BarberBreakout) ([]BookingConflict, error) {
	if err := breakout.Validate(); err != nil {
		return nil, breakoutValidationError(err)
	}

	dates, err := breakoutDates(breakout, loc)
	if err != nil {
		return nil, err
	}

	var conflicts []BookingConflict
	for _, date := range dates {
		dayConflicts, err := conflictsInWindow(database, loc, settings, breakout.BarberID, date, breakout.StartTime, breakout.EndTime)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, dayConflicts...)
	}
	return conflicts, nil
}

// CreateBreakout validates, checks conflicts and persists a breakout. With
// cancelConflicts the colliding reservations are cancelled (reason: breakout)
// before the breakout row is written, so a crash mid-operation never leaves a
// breakout referencing un-cancelled conflicts.
func CreateBreakout(database *gorm.DB, loc *time.Location, settings *models.BarbershopSettings, breakout *models.BarberBreakout, cancelConflicts bool) (*BreakoutResult, error) {
	if err := breakout.Validate(); err != nil {
		return nil, breakoutValidationError(err)
	}
	breakout.Reason = sanitizeTextPtr(breakout.Reason)

	var barber models.Barber
	if err := database.First(&barber, "id = ? AND is_active = ?", breakout.BarberID, true).Error; err != nil {
		return nil, NewCodedError(CodeNotFound, "barber %s not found", breakout.BarberID)
	}

	conflicts, err := CheckBreakoutConflicts(database, loc, settings, breakout)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 && !cancelConflicts {
		return &BreakoutResult{Conflicts: conflicts},
			NewCodedError(CodeConflictsExist, "%d reservations collide with this breakout", len(conflicts))
	}

	cancelled := 0
	for _, conflict := range conflicts {
		if err := cancelReservationBySystem(database, conflict.ReservationID, models.CancelledByBreakout, "cancelled by barber time block"); err != nil {
			return nil, err
		}
		cancelled++
	}

	if err := database.Create(breakout).Error; err != nil {
		return nil, err
	}

	return &BreakoutResult{Breakout: breakout, Cancelled: cancelled}, nil
}

// DeactivateBreakout soft-deletes a breakout; rows stay for the audit trail
func DeactivateBreakout(database *gorm.DB, id string) error {
	now := time.Now()
	result := database.Model(&models.BarberBreakout{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":      false,
			"deactivated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewCodedError(CodeNotFound, "active breakout %s not found", id)
	}
	return nil
}

// GetBarberBreakouts lists a barber's active breakouts
func GetBarberBreakouts(database *gorm.DB, barberID string) ([]models.BarberBreakout, error) {
	return activeBreakouts(database, barberID)
}

// breakoutDates resolves the concrete zone-local dates a breakout affects:
// the single date (when not in the past), the capped range, or the next
// occurrences of the recurring weekday
func breakoutDates(breakout *models.BarberBreakout, loc *time.Location) ([]time.Time, error) {
	today := DayStart(time.Now(), loc)

	switch breakout.BreakoutType {
	case models.BreakoutTypeSingle:
		date, err := ParseDateKey(*breakout.StartDate, loc)
		if err != nil {
			return nil, NewCodedError(CodeValidationError, "invalid breakout date: %v", err)
		}
		if date.Before(today) {
			return nil, nil
		}
		return []time.Time{date}, nil

	case models.BreakoutTypeDateRange:
		start, err := ParseDateKey(*breakout.StartDate, loc)
		if err != nil {
			return nil, NewCodedError(CodeValidationError, "invalid breakout start date: %v", err)
		}
		end, err := ParseDateKey(*breakout.EndDate, loc)
		if err != nil {
			return nil, NewCodedError(CodeValidationError, "invalid breakout end date: %v", err)
		}
		if start.Before(today) {
			start = today
		}
		var dates []time.Time
		for d := start; !d.After(end) && len(dates) < rangeConflictHorizonDays; d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
		return dates, nil

	case models.BreakoutTypeRecurring:
		return NextOccurrences(today, *breakout.DayOfWeek, recurringConflictWeeks, loc), nil
	}

	return nil, NewCodedError(CodeValidationError, "invalid breakout type %q", breakout.BreakoutType)
}

// conflictsInWindow finds non-cancelled reservations on one date whose time
// falls inside [startTime, endTime or end-of-working-day)
func conflictsInWindow(database *gorm.DB, loc *time.Location, settings *models.BarbershopSettings, barberID string, date time.Time, startTime string, endTime *string) ([]BookingConflict, error) {
	weekday := WeekdayKey(date, loc)
	workDay, err := GetWorkDay(database, settings, barberID, weekday)
	if err != nil {
		return nil, err
	}
	if !workDay.IsWorking || workDay.EndTime == nil {
		return nil, nil
	}

	// A nil end time blocks through the barber's working-day end
	endHHMM := *workDay.EndTime
	if endTime != nil {
		endHHMM = *endTime
	}

	windowStart, err := OnDate(date, startTime, loc)
	if err != nil {
		return nil, err
	}
	windowEnd, err := OnDate(date, endHHMM, loc)
	if err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	err = database.Preload("Customer").Preload("Service").
		Where("barber_id = ? AND status != ? AND start_time >= ? AND start_time < ?",
			barberID, models.ReservationStatusCancelled, windowStart.UTC(), windowEnd.UTC()).
		Order("start_time asc").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}

	conflicts := make([]BookingConflict, 0, len(reservations))
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
	return conflicts, nil
}

// breakoutValidationError maps model validation sentinels to coded errors
func breakoutValidationError(err error) error {
	switch err {
	case models.ErrBreakoutInvalidTime:
		return NewCodedError(CodeInvalidTimeRange, "%v", err)
	case models.ErrBreakoutInvalidDates:
		return NewCodedError(CodeInvalidDateRange, "%v", err)
	default:
		return NewCodedError(CodeValidationError, "%v", err)
	}
}
