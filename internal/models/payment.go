package models

import "time"

type PaymentMethod string

const (
	MethodStripe       PaymentMethod = "STRIPE"
	MethodPayPal       PaymentMethod = "PAYPAL"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCash         PaymentMethod = "CASH"
	MethodCheck        PaymentMethod = "CHECK"
)

type Payment struct {
	ID            uint64        `gorm:"primarykey" json:"id"`
	InvoiceID     uint64        `gorm:"not null;index" json:"invoice_id"`
	Amount        float64       `gorm:"not null" json:"amount"`
	PaymentDate   time.Time     `gorm:"not null" json:"payment_date"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	TransactionID string        `gorm:"type:varchar(255)" json:"transaction_id"`
	Notes         string        `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`

	// Relations
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}
