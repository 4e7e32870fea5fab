package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a shop customer, referenced by reservations and
// recurring appointments
type Customer struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name      string  `gorm:"size:200;not null" json:"name"`
	Phone     *string `gorm:"size:20;index" json:"phone,omitempty"`
	Email     *string `gorm:"size:255;index" json:"email,omitempty"`
	IsBlocked bool    `gorm:"default:false" json:"is_blocked"`
}

// BeforeCreate hook to generate UUID
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Customer model
func (Customer) TableName() string {
	return "customers"
}

// CustomerNotificationSettings holds per-customer notification preferences.
// Created lazily; a missing row means reminders are enabled.
type CustomerNotificationSettings struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CustomerID       string `gorm:"type:uuid;uniqueIndex;not null" json:"customer_id"`
	RemindersEnabled bool   `gorm:"default:true" json:"reminders_enabled"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (s *CustomerNotificationSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CustomerNotificationSettings model
func (CustomerNotificationSettings) TableName() string {
	return "customer_notification_settings"
}

// PushSubscription is an opaque handle to a customer device push endpoint.
// Payload delivery is delegated to the push transport; an expired endpoint
// gets marked inactive rather than deleted.
type PushSubscription struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CustomerID string `gorm:"type:uuid;index;not null" json:"customer_id"`
	Endpoint   string `gorm:"size:500;uniqueIndex;not null" json:"endpoint"`
	IsActive   bool   `gorm:"default:true;index" json:"is_active"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (p *PushSubscription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for PushSubscription model
func (PushSubscription) TableName() string {
	return "push_subscriptions"
}
