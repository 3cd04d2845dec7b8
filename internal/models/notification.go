package models

import "time"

type NotificationType string

const (
	NotificationPaymentDue        NotificationType = "PAYMENT_DUE"
	NotificationPaymentReceived   NotificationType = "PAYMENT_RECEIVED"
	NotificationMaintenanceUpdate NotificationType = "MAINTENANCE_UPDATE"
	NotificationLeaseUpdate       NotificationType = "LEASE_UPDATE"
	NotificationGeneral           NotificationType = "GENERAL"
)

// Notification rows are created by the fan-out service only. ContentType and
// ObjectID are a loose back-reference to the triggering entity; no foreign key
// is enforced on them.
type Notification struct {
	ID          uint64           `gorm:"primarykey" json:"id"`
	UserID      uint64           `gorm:"not null;index" json:"user_id"`
	Type        NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Title       string           `gorm:"type:varchar(255);not null" json:"title"`
	Message     string           `gorm:"type:text" json:"message"`
	IsRead      bool             `gorm:"default:false" json:"is_read"`
	ContentType string           `gorm:"type:varchar(50)" json:"content_type"`
	ObjectID    uint64           `json:"object_id"`
	CreatedAt   time.Time        `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
