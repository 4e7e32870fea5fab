package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Weekday keys used across settings, work days, breakouts and recurring
// appointments. Stored lowercase, matching time.Weekday names.
const (
	DayMonday    = "monday"
	DayTuesday   = "tuesday"
	DayWednesday = "wednesday"
	DayThursday  = "thursday"
	DayFriday    = "friday"
	DaySaturday  = "saturday"
	DaySunday    = "sunday"
)

// ValidWeekdays lists the seven valid weekday keys in calendar order.
var ValidWeekdays = []string{
	DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday, DaySunday,
}

// IsValidWeekday checks if the key is one of the seven valid weekday keys
func IsValidWeekday(day string) bool {
	for _, d := range ValidWeekdays {
		if d == day {
			return true
		}
	}
	return false
}

// BarbershopSettings is the shop-wide configuration singleton. It is mutated
// only by admin configuration and read by every availability computation.
type BarbershopSettings struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// OpenDays holds the weekday keys the shop opens, comma-joined
	// (e.g. "monday,tuesday,wednesday,thursday,friday,saturday")
	OpenDays string `gorm:"not null" json:"open_days"`

	// Global working window ("HH:MM"). Barber hours must stay inside it.
	StartTime string `gorm:"not null" json:"start_time"`
	EndTime   string `gorm:"not null" json:"end_time"`

	SlotMinutes         int `gorm:"not null;default:30" json:"slot_minutes"`
	MaxBookingDaysAhead int `gorm:"not null;default:30" json:"max_booking_days_ahead"`

	// ReminderHours is the default reminder lead time; barbers may override
	ReminderHours int `gorm:"not null;default:3" json:"reminder_hours"`
}

// BeforeCreate hook to generate UUID
func (s *BarbershopSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for BarbershopSettings model
func (BarbershopSettings) TableName() string {
	return "barbershop_settings"
}

// OpenDaysList returns the open day keys in stored order
func (s *BarbershopSettings) OpenDaysList() []string {
	var days []string
	for _, d := range strings.Split(s.OpenDays, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			days = append(days, d)
		}
	}
	return days
}

// OpenDaySet returns the open days as a lookup set
func (s *BarbershopSettings) OpenDaySet() map[string]bool {
	set := make(map[string]bool)
	for _, d := range strings.Split(s.OpenDays, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			set[d] = true
		}
	}
	return set
}

// IsOpenOn checks whether the shop opens on the given weekday key
func (s *BarbershopSettings) IsOpenOn(day string) bool {
	return s.OpenDaySet()[day]
}
