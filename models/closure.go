package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BarberClosure blocks all of one barber's slots across an inclusive date
// range (vacation, sick leave). Dates are zone-local "YYYY-MM-DD" strings.
type BarberClosure struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BarberID  string  `gorm:"type:uuid;index;not null" json:"barber_id"`
	StartDate string  `gorm:"size:10;not null;index" json:"start_date"`
	EndDate   string  `gorm:"size:10;not null;index" json:"end_date"`
	Reason    *string `gorm:"size:255" json:"reason,omitempty"`

	Barber Barber `gorm:"foreignKey:BarberID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (c *BarberClosure) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for BarberClosure model
func (BarberClosure) TableName() string {
	return "barber_closures"
}

// Covers checks whether the closure covers the given date key (inclusive)
func (c *BarberClosure) Covers(dateKey string) bool {
	return c.StartDate <= dateKey && dateKey <= c.EndDate
}

// BarbershopClosure blocks all barbers' slots across an inclusive date range
// (holidays, renovations)
type BarbershopClosure struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	StartDate string  `gorm:"size:10;not null;index" json:"start_date"`
	EndDate   string  `gorm:"size:10;not null;index" json:"end_date"`
	Reason    *string `gorm:"size:255" json:"reason,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *BarbershopClosure) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for BarbershopClosure model
func (BarbershopClosure) TableName() string {
	return "barbershop_closures"
}

// Covers checks whether the closure covers the given date key (inclusive)
func (c *BarbershopClosure) Covers(dateKey string) bool {
	return c.StartDate <= dateKey && dateKey <= c.EndDate
}
