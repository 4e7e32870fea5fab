package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecurringAppointment is a weekly template booking. Each week's concrete
// instance is derived on demand (availability blocking, reminder expansion)
// and never stored as a row — materializing an indefinitely-repeating booking
// would require unbounded future rows.
// Invariant: at most one active row per (barber, day_of_week, time_slot).
type RecurringAppointment struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BarberID   string `gorm:"type:uuid;index;not null" json:"barber_id"`
	CustomerID string `gorm:"type:uuid;index;not null" json:"customer_id"`
	ServiceID  string `gorm:"type:uuid;not null" json:"service_id"`

	DayOfWeek string  `gorm:"size:10;not null;index" json:"day_of_week"`
	TimeSlot  string  `gorm:"size:5;not null" json:"time_slot"` // "HH:MM"
	Notes     *string `gorm:"type:text" json:"notes,omitempty"`

	// LastReminderDate ("YYYY-MM-DD") marks the last day a reminder went out
	// for this template. The marker is "sent today", not "ever sent": it
	// blocks a second same-day reminder without blocking next week's.
	LastReminderDate *string `gorm:"size:10" json:"last_reminder_date,omitempty"`

	IsActive      bool       `gorm:"default:true;index" json:"is_active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`

	Barber   Barber        `gorm:"foreignKey:BarberID" json:"barber,omitempty"`
	Customer Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Service  BarberService `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// BeforeCreate hook to generate UUID
func (r *RecurringAppointment) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for RecurringAppointment model
func (RecurringAppointment) TableName() string {
	return "recurring_appointments"
}

// ReminderSentOn checks whether a reminder already went out on the given date
func (r *RecurringAppointment) ReminderSentOn(dateKey string) bool {
	return r.LastReminderDate != nil && *r.LastReminderDate == dateKey
}
