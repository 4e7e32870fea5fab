package services

import (
	"time"

	"barber_flow_app_go/models"

	"gorm.io/gorm"
)

// Slot blocked reasons (informational; availability is the boolean that
// matters). When several breakouts overlap a slot the first match supplies
// the reason — blocking is idempotent either way.
const (
	ReasonShopClosed    = "shop_closed"
	ReasonShopClosure   = "shop_closure"
	ReasonBarberClosure = "barber_closure"
	ReasonNotWorking    = "not_working"
	ReasonBreakout      = "breakout"
	ReasonReserved      = "reserved"
	ReasonRecurring     = "recurring_appointment"
)

// Slot is one fixed-granularity bookable time point in a barber's day
type Slot struct {
	StartTime     time.Time `json:"start_time"`
	StartMillis   int64     `json:"time_timestamp"`
	Available     bool      `json:"available"`
	BlockedReason string    `json:"blocked_reason,omitempty"`
}

// GetDayAvailability merges shop open days, shop/barber closures, the
// barber's weekly hours, breakout blocks, reservations and recurring
// appointments into the ordered slot list for one zone-local date.
func GetDayAvailability(database *gorm.DB, loc *time.Location, settings *models.BarbershopSettings, barberID string, date time.Time) ([]Slot, error) {
	dateKey := DateKey(date, loc)
	weekday := WeekdayKey(date, loc)

	// Shop-level short circuits: closed weekday or a closure covering the
	// date block every slot with that reason
	if !settings.IsOpenOn(weekday) {
		return blockedWindow(settings, loc, date, ReasonShopClosed)
	}
	shopClosure, err := findShopClosure(database, dateKey)
	if err != nil {
		return nil, err
	}
	if shopClosure != nil {
		return blockedWindow(settings, loc, date, ReasonShopClosure)
	}
	barberClosure, err := findBarberClosure(database, barberID, dateKey)
	if err != nil {
		return nil, err
	}
	if barberClosure != nil {
		return blockedWindow(settings, loc, date, ReasonBarberClosure)
	}

	workDay, err := GetWorkDay(database, settings, barberID, weekday)
	if err != nil {
		return nil, err
	}
	if !workDay.IsWorking || workDay.StartTime == nil || workDay.EndTime == nil {
		return blockedWindow(settings, loc, date, ReasonNotWorking)
	}

	// Barber hours are clamped inside the shop window; a stored override
	// never widens the shop's working day
	startHHMM := clampHHMM(*workDay.StartTime, settings.StartTime, settings.EndTime)
	endHHMM := clampHHMM(*workDay.EndTime, settings.StartTime, settings.EndTime)

	windowStart, err := OnDate(date, startHHMM, loc)
	if err != nil {
		return nil, err
	}
	windowEnd, err := OnDate(date, endHHMM, loc)
	if err != nil {
		return nil, err
	}

	breakouts, err := activeBreakouts(database, barberID)
	if err != nil {
		return nil, err
	}
	reserved, err := reservedTimes(database, barberID, DayStart(date, loc), DayEnd(date, loc))
	if err != nil {
		return nil, err
	}
	recurring, err := activeRecurringSlots(database, barberID, weekday)
	if err != nil {
		return nil, err
	}

	granularity := time.Duration(settings.SlotMinutes) * time.Minute
	var slots []Slot

	for cursor := windowStart; cursor.Before(windowEnd); cursor = cursor.Add(granularity) {
		hhmm := HHMM(cursor, loc)
		slot := Slot{
			StartTime:   cursor,
			StartMillis: ToMillis(cursor),
			Available:   true,
		}

		for _, b := range breakouts {
			if b.AppliesTo(dateKey, weekday) && b.BlocksTime(hhmm, endHHMM) {
				slot.Available = false
				slot.BlockedReason = ReasonBreakout
				break
			}
		}

		if slot.Available && reserved[cursor.Unix()] {
			slot.Available = false
			slot.BlockedReason = ReasonReserved
		}

		if slot.Available && recurring[hhmm] {
			slot.Available = false
			slot.BlockedReason = ReasonRecurring
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// IsSlotBookable re-derives one slot's availability at write time. Callers
// must not trust a potentially-stale read: the booking flow re-checks here
// and still relies on the unique index for the final race.
func IsSlotBookable(database *gorm.DB, loc *time.Location, settings *models.BarbershopSettings, barberID string, startTime time.Time) (bool, string, error) {
	slots, err := GetDayAvailability(database, loc, settings, barberID, startTime)
	if err != nil {
		return false, "", err
	}
	target := startTime.Unix()
	for _, slot := range slots {
		if slot.StartTime.Unix() == target {
			return slot.Available, slot.BlockedReason, nil
		}
	}
	return false, ReasonNotWorking, nil
}

// blockedWindow enumerates the day's slots over the shop window with every
// slot blocked for the same reason, so callers always see the day's shape
func blockedWindow(settings *models.BarbershopSettings, loc *time.Location, date time.Time, reason string) ([]Slot, error) {
	windowStart, err := OnDate(date, settings.StartTime, loc)
	if err != nil {
		return nil, err
	}
	windowEnd, err := OnDate(date, settings.EndTime, loc)
	if err != nil {
		return nil, err
	}

	granularity := time.Duration(settings.SlotMinutes) * time.Minute
	var slots []Slot
	for cursor := windowStart; cursor.Before(windowEnd); cursor = cursor.Add(granularity) {
		slots = append(slots, Slot{
			StartTime:     cursor,
			StartMillis:   ToMillis(cursor),
			Available:     false,
			BlockedReason: reason,
		})
	}
	return slots, nil
}

// activeBreakouts loads the barber's active breakouts; date applicability is
// evaluated per slot (range/recurring breakouts are never materialized)
func activeBreakouts(database *gorm.DB, barberID string) ([]models.BarberBreakout, error) {
	var breakouts []models.BarberBreakout
	err := database.Where("barber_id = ? AND is_active = ?", barberID, true).Find(&breakouts).Error
	return breakouts, err
}

// reservedTimes returns the non-cancelled reservation instants in the window
// keyed by unix second
func reservedTimes(database *gorm.DB, barberID string, from, to time.Time) (map[int64]bool, error) {
	var reservations []models.Reservation
	err := database.Where("barber_id = ? AND status != ? AND start_time >= ? AND start_time < ?",
		barberID, models.ReservationStatusCancelled, from.UTC(), to.UTC()).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	occupied := make(map[int64]bool, len(reservations))
	for _, r := range reservations {
		occupied[r.StartTime.Unix()] = true
	}
	return occupied, nil
}

// activeRecurringSlots returns the "HH:MM" slots owned by active recurring
// appointments on the given weekday
func activeRecurringSlots(database *gorm.DB, barberID, weekday string) (map[string]bool, error) {
	var rows []models.RecurringAppointment
	err := database.Where("barber_id = ? AND day_of_week = ? AND is_active = ?", barberID, weekday, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	slots := make(map[string]bool, len(rows))
	for _, r := range rows {
		slots[r.TimeSlot] = true
	}
	return slots, nil
}

// clampHHMM keeps an "HH:MM" value inside [floor, ceiling]
func clampHHMM(value, floor, ceiling string) string {
	if value < floor {
		return floor
	}
	if value > ceiling {
		return ceiling
	}
	return value
}
