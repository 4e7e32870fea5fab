package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationTypeReminder     = "REMINDER"
	NotificationTypeCancellation = "CANCELLATION"
	NotificationTypeBroadcast    = "BROADCAST"
)

// Notification statuses. Per occurrence the row moves PENDING -> terminal and
// never back; a crashed run may strand a PENDING row, which the dedup check
// deliberately ignores so the occurrence is retried next run.
const (
	NotificationStatusPending = "PENDING"
	NotificationStatusSent    = "SENT"
	NotificationStatusPartial = "PARTIAL"
	NotificationStatusFailed  = "FAILED"
)

// NotificationLog records one attempted send. It doubles as the delivery
// audit trail and as the deduplication source of truth for reminders.
type NotificationLog struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	NotificationType string `gorm:"size:20;not null;index" json:"notification_type"`

	// ReservationID is nil for recurring-derived occurrences
	ReservationID *string `gorm:"type:uuid;index" json:"reservation_id,omitempty"`

	// OccurrenceID is the reservation id, or the synthetic
	// "recurring-{id}-{YYYYMMDD}" id for recurring-derived occurrences
	OccurrenceID string `gorm:"size:100;index;not null" json:"occurrence_id"`

	// CustomerID is nil when the notice went to the barber instead
	CustomerID *string `gorm:"type:uuid;index" json:"customer_id,omitempty"`

	Status string  `gorm:"size:20;default:'PENDING';index" json:"status"`
	Detail *string `gorm:"type:text" json:"detail,omitempty"` // per-subscription failures
	IsRead bool    `gorm:"default:false" json:"is_read"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (n *NotificationLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for NotificationLog model
func (NotificationLog) TableName() string {
	return "notification_logs"
}

// Delivered reports whether at least one device received the notification
func (n *NotificationLog) Delivered() bool {
	return n.Status == NotificationStatusSent || n.Status == NotificationStatusPartial
}
