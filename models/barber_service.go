package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BarberService is a bookable service offered by one barber (cut, shave, ...)
type BarberService struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BarberID        string  `gorm:"type:uuid;index;not null" json:"barber_id"`
	Name            string  `gorm:"size:200;not null" json:"name"`
	DurationMinutes int     `gorm:"not null;default:30" json:"duration_minutes"`
	Price           float64 `gorm:"not null;default:0" json:"price"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	Barber Barber `gorm:"foreignKey:BarberID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (s *BarberService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for BarberService model
func (BarberService) TableName() string {
	return "services"
}
