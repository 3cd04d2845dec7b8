package models

import "time"

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "PENDING"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

var invoiceStatusLabels = map[InvoiceStatus]string{
	InvoicePending:   "Pending",
	InvoicePaid:      "Paid",
	InvoiceOverdue:   "Overdue",
	InvoiceCancelled: "Cancelled",
}

func (s InvoiceStatus) Label() string {
	if label, ok := invoiceStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

type Invoice struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	TenantID    uint64        `gorm:"not null;index" json:"tenant_id"`
	PropertyID  uint64        `gorm:"not null;index" json:"property_id"`
	LeaseID     uint64        `gorm:"not null;index" json:"lease_id"`
	Amount      float64       `gorm:"not null" json:"amount"`
	Description string        `gorm:"type:text" json:"description"`
	DueDate     time.Time     `gorm:"type:date;not null" json:"due_date"`
	Status      InvoiceStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Tenant   User     `gorm:"foreignKey:TenantID" json:"-"`
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
	Lease    Lease    `gorm:"foreignKey:LeaseID" json:"-"`
	Payments []Payment `gorm:"foreignKey:InvoiceID" json:"-"`
}
