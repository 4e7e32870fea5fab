package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Breakout types
const (
	BreakoutTypeSingle    = "single"
	BreakoutTypeDateRange = "date_range"
	BreakoutTypeRecurring = "recurring"
)

var (
	ErrBreakoutInvalidType    = errors.New("invalid breakout type")
	ErrBreakoutInvalidTime    = errors.New("breakout start time must precede end time")
	ErrBreakoutInvalidDates   = errors.New("breakout end date precedes start date")
	ErrBreakoutInvalidWeekday = errors.New("invalid breakout day of week")
	ErrBreakoutFieldsMismatch = errors.New("breakout fields do not match its type")
)

// BarberBreakout is an ad-hoc block (lunch, early leave, vacation day) that
// removes slots from a barber's availability without being a reservation.
// The three shapes share one row; the type tag decides which date fields are
// populated and the constructors below keep that invariant out of handler
// code. Soft-deleted via IsActive + DeactivatedAt.
type BarberBreakout struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BarberID     string `gorm:"type:uuid;index;not null" json:"barber_id"`
	BreakoutType string `gorm:"size:20;not null;index" json:"breakout_type"`

	// Blocked window ("HH:MM"); nil EndTime blocks through the end of the
	// barber's working day, not midnight
	StartTime string  `gorm:"size:5;not null" json:"start_time"`
	EndTime   *string `gorm:"size:5" json:"end_time,omitempty"`

	// single: StartDate only. date_range: StartDate and EndDate.
	// recurring: DayOfWeek only. Dates are zone-local "YYYY-MM-DD".
	StartDate *string `gorm:"size:10;index" json:"start_date,omitempty"`
	EndDate   *string `gorm:"size:10" json:"end_date,omitempty"`
	DayOfWeek *string `gorm:"size:10" json:"day_of_week,omitempty"`

	Reason *string `gorm:"size:255" json:"reason,omitempty"`

	IsActive      bool       `gorm:"default:true;index" json:"is_active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`

	Barber Barber `gorm:"foreignKey:BarberID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (b *BarberBreakout) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for BarberBreakout model
func (BarberBreakout) TableName() string {
	return "barber_breakouts"
}

// NewSingleBreakout builds a breakout blocking one concrete date
func NewSingleBreakout(barberID, date, startTime string, endTime, reason *string) *BarberBreakout {
	return &BarberBreakout{
		BarberID:     barberID,
		BreakoutType: BreakoutTypeSingle,
		StartDate:    &date,
		StartTime:    startTime,
		EndTime:      endTime,
		Reason:       reason,
		IsActive:     true,
	}
}

// NewRangeBreakout builds a breakout blocking an inclusive date range
func NewRangeBreakout(barberID, startDate, endDate, startTime string, endTime, reason *string) *BarberBreakout {
	return &BarberBreakout{
		BarberID:     barberID,
		BreakoutType: BreakoutTypeDateRange,
		StartDate:    &startDate,
		EndDate:      &endDate,
		StartTime:    startTime,
		EndTime:      endTime,
		Reason:       reason,
		IsActive:     true,
	}
}

// NewRecurringBreakout builds a breakout blocking one weekday every week
func NewRecurringBreakout(barberID, dayOfWeek, startTime string, endTime, reason *string) *BarberBreakout {
	return &BarberBreakout{
		BarberID:     barberID,
		BreakoutType: BreakoutTypeRecurring,
		DayOfWeek:    &dayOfWeek,
		StartTime:    startTime,
		EndTime:      endTime,
		Reason:       reason,
		IsActive:     true,
	}
}

// Validate checks the type tag and that exactly the fields relevant to the
// type are populated
func (b *BarberBreakout) Validate() error {
	if b.EndTime != nil && *b.EndTime <= b.StartTime {
		return ErrBreakoutInvalidTime
	}

	switch b.BreakoutType {
	case BreakoutTypeSingle:
		if b.StartDate == nil || b.EndDate != nil || b.DayOfWeek != nil {
			return ErrBreakoutFieldsMismatch
		}
	case BreakoutTypeDateRange:
		if b.StartDate == nil || b.EndDate == nil || b.DayOfWeek != nil {
			return ErrBreakoutFieldsMismatch
		}
		if *b.EndDate < *b.StartDate {
			return ErrBreakoutInvalidDates
		}
	case BreakoutTypeRecurring:
		if b.DayOfWeek == nil || b.StartDate != nil || b.EndDate != nil {
			return ErrBreakoutFieldsMismatch
		}
		if !IsValidWeekday(*b.DayOfWeek) {
			return ErrBreakoutInvalidWeekday
		}
	default:
		return ErrBreakoutInvalidType
	}

	return nil
}

// AppliesTo checks whether the breakout blocks the given zone-local date
// (dateKey "YYYY-MM-DD", weekday key of that date). Range and recurring
// breakouts are evaluated against every matching date, never materialized
// per date.
func (b *BarberBreakout) AppliesTo(dateKey, weekday string) bool {
	if !b.IsActive {
		return false
	}
	switch b.BreakoutType {
	case BreakoutTypeSingle:
		return b.StartDate != nil && *b.StartDate == dateKey
	case BreakoutTypeDateRange:
		return b.StartDate != nil && b.EndDate != nil &&
			*b.StartDate <= dateKey && dateKey <= *b.EndDate
	case BreakoutTypeRecurring:
		return b.DayOfWeek != nil && *b.DayOfWeek == weekday
	}
	return false
}

// BlocksTime checks whether a slot at hhmm falls inside the blocked window.
// A nil EndTime blocks through workdayEnd (the barber's end of working day).
func (b *BarberBreakout) BlocksTime(hhmm, workdayEnd string) bool {
	end := workdayEnd
	if b.EndTime != nil {
		end = *b.EndTime
	}
	return b.StartTime <= hhmm && hhmm < end
}
