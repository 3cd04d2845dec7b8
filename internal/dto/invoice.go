package dto

import (
	"time"

	"github.com/rentalhub/rentalhub-api/internal/models"
)

// InvoiceCreateRequest is the payload for issuing an invoice.
type InvoiceCreateRequest struct {
	TenantID    uint64  `json:"tenant_id" binding:"required"`
	PropertyID  uint64  `json:"property_id" binding:"required"`
	LeaseID     uint64  `json:"lease_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"required"`
	DueDate     string  `json:"due_date" binding:"required"`
}

type InvoiceResponse struct {
	ID           uint64    `json:"id"`
	TenantID     uint64    `json:"tenant_id"`
	PropertyID   uint64    `json:"property_id"`
	LeaseID      uint64    `json:"lease_id"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	DueDate      string    `json:"due_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	TenantName   string    `json:"tenant_name"`
	PropertyName string    `json:"property_name"`
}

// ToInvoiceResponse expects Tenant and Property to be preloaded.
func ToInvoiceResponse(invoice models.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:           invoice.ID,
		TenantID:     invoice.TenantID,
		PropertyID:   invoice.PropertyID,
		LeaseID:      invoice.LeaseID,
		Amount:       invoice.Amount,
		Description:  invoice.Description,
		DueDate:      invoice.DueDate.Format(DateLayout),
		Status:       string(invoice.Status),
		CreatedAt:    invoice.CreatedAt,
		UpdatedAt:    invoice.UpdatedAt,
		TenantName:   invoice.Tenant.FullName(),
		PropertyName: invoice.Property.Name,
	}
}
