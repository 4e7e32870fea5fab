package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkDay is a barber's weekly working window for one weekday, overriding the
// shop-wide hours for that day. Rows are created lazily from shop settings
// the first time a barber's schedule is read.
type WorkDay struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BarberID  string `gorm:"type:uuid;index:idx_work_days_barber_day,unique;not null" json:"barber_id"`
	Weekday   string `gorm:"size:10;index:idx_work_days_barber_day,unique;not null" json:"weekday"`
	IsWorking bool   `gorm:"default:true" json:"is_working"`

	// Working window ("HH:MM"); nil when the barber does not work that day
	StartTime *string `gorm:"size:5" json:"start_time,omitempty"`
	EndTime   *string `gorm:"size:5" json:"end_time,omitempty"`

	Barber Barber `gorm:"foreignKey:BarberID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (w *WorkDay) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for WorkDay model
func (WorkDay) TableName() string {
	return "work_days"
}
