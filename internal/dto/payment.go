package dto

import (
	"time"

	"github.com/rentalhub/rentalhub-api/internal/models"
)

// PaymentCreateRequest is the payload for recording a payment.
type PaymentCreateRequest struct {
	InvoiceID     uint64  `json:"invoice_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	TransactionID string  `json:"transaction_id"`
	Notes         string  `json:"notes"`
}

type PaymentResponse struct {
	ID            uint64    `json:"id"`
	InvoiceID     uint64    `json:"invoice_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	InvoiceAmount float64   `json:"invoice_amount"`
	TenantID      uint64    `json:"tenant_id"`
	TenantName    string    `json:"tenant_name"`
	PropertyID    uint64    `json:"property_id"`
	PropertyName  string    `json:"property_name"`
}

// ToPaymentResponse expects Invoice with its Tenant and Property preloaded.
func ToPaymentResponse(payment models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID,
		InvoiceID:     payment.InvoiceID,
		Amount:        payment.Amount,
		PaymentDate:   payment.PaymentDate,
		PaymentMethod: string(payment.PaymentMethod),
		TransactionID: payment.TransactionID,
		Notes:         payment.Notes,
		CreatedAt:     payment.CreatedAt,
		InvoiceAmount: payment.Invoice.Amount,
		TenantID:      payment.Invoice.TenantID,
		TenantName:    payment.Invoice.Tenant.FullName(),
		PropertyID:    payment.Invoice.PropertyID,
		PropertyName:  payment.Invoice.Property.Name,
	}
}
