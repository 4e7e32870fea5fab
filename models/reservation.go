package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation status constants
const (
	ReservationStatusConfirmed = "CONFIRMED"
	ReservationStatusCancelled = "CANCELLED"
	ReservationStatusCompleted = "COMPLETED"
)

// Cancellation actors
const (
	CancelledByCustomer = "customer"
	CancelledByBarber   = "barber"
	CancelledByBreakout = "breakout"
	CancelledByAdmin    = "admin"
)

// Reservation is a concrete booking of one slot for one barber.
// Invariant: no two non-cancelled reservations share (barber_id, start_time);
// enforced by a partial unique index, not application locking. Version is the
// optimistic-concurrency counter guarding cancel/complete/edit.
type Reservation struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BarberID   string  `gorm:"type:uuid;index;not null" json:"barber_id"`
	CustomerID *string `gorm:"type:uuid;index" json:"customer_id,omitempty"` // nil for walk-ins
	ServiceID  string  `gorm:"type:uuid;not null" json:"service_id"`

	// StartTime is the exact appointment instant (stored UTC; epoch ms at
	// the API boundary)
	StartTime time.Time `gorm:"not null;index" json:"start_time"`

	Status             string     `gorm:"size:20;default:'CONFIRMED';index" json:"status"`
	CancelledBy        *string    `gorm:"size:20" json:"cancelled_by,omitempty"`
	CancellationReason *string    `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	// Version increments on every mutation; updates are conditioned on the
	// caller's expected value
	Version int `gorm:"not null;default:1" json:"version"`

	BarberNotes *string `gorm:"type:text" json:"barber_notes,omitempty"`

	Barber   Barber        `gorm:"foreignKey:BarberID" json:"barber,omitempty"`
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Service  BarberService `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// BeforeCreate hook to generate UUID
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Version == 0 {
		r.Version = 1
	}
	return nil
}

// TableName specifies the table name for Reservation model
func (Reservation) TableName() string {
	return "reservations"
}

// IsValidReservationStatus checks if the status is valid
func IsValidReservationStatus(status string) bool {
	switch status {
	case ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted:
		return true
	}
	return false
}

// IsCancellable checks if the reservation can be cancelled
func (r *Reservation) IsCancellable() bool {
	return r.Status == ReservationStatusConfirmed
}

// IsActive reports whether the reservation still occupies its slot
func (r *Reservation) IsActive() bool {
	return r.Status != ReservationStatusCancelled
}
