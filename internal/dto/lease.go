package dto

import (
	"time"

	"github.com/rentalhub/rentalhub-api/internal/models"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// LeaseCreateRequest is the payload for creating a lease. Dates travel as
// YYYY-MM-DD strings.
type LeaseCreateRequest struct {
	PropertyID    uint64  `json:"property_id" binding:"required"`
	TenantID      uint64  `json:"tenant_id" binding:"required"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	RentAmount    float64 `json:"rent_amount" binding:"required"`
	DepositAmount float64 `json:"deposit_amount" binding:"required"`
	IsActive      *bool   `json:"is_active"`
}

type LeaseResponse struct {
	ID            uint64    `json:"id"`
	PropertyID    uint64    `json:"property_id"`
	TenantID      uint64    `json:"tenant_id"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	RentAmount    float64   `json:"rent_amount"`
	DepositAmount float64   `json:"deposit_amount"`
	IsActive      bool      `json:"is_active"`
	DocumentURL   string    `json:"document_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PropertyName  string    `json:"property_name"`
	TenantName    string    `json:"tenant_name"`
}

// ToLeaseResponse expects Property and Tenant to be preloaded.
func ToLeaseResponse(lease models.Lease) LeaseResponse {
	return LeaseResponse{
		ID:            lease.ID,
		PropertyID:    lease.PropertyID,
		TenantID:      lease.TenantID,
		StartDate:     lease.StartDate.Format(DateLayout),
		EndDate:       lease.EndDate.Format(DateLayout),
		RentAmount:    lease.RentAmount,
		DepositAmount: lease.DepositAmount,
		IsActive:      lease.IsActive,
		DocumentURL:   lease.DocumentURL,
		CreatedAt:     lease.CreatedAt,
		UpdatedAt:     lease.UpdatedAt,
		PropertyName:  lease.Property.Name,
		TenantName:    lease.Tenant.FullName(),
	}
}
