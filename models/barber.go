package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Barber represents a barber working at the shop
type Barber struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string  `gorm:"size:200;not null" json:"name"`
	Phone    *string `gorm:"size:20" json:"phone,omitempty"`
	Email    *string `gorm:"size:255" json:"email,omitempty"`
	IsActive bool    `gorm:"default:true;index" json:"is_active"`

	// ReminderHours overrides the shop-wide reminder lead time when set
	ReminderHours *int `json:"reminder_hours,omitempty"`
}

// BeforeCreate hook to generate UUID
func (b *Barber) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Barber model
func (Barber) TableName() string {
	return "barbers"
}

// EffectiveReminderHours returns the barber's lead time, falling back to the
// shop default when no override is configured
func (b *Barber) EffectiveReminderHours(shopDefault int) int {
	if b.ReminderHours != nil && *b.ReminderHours > 0 {
		return *b.ReminderHours
	}
	return shopDefault
}
