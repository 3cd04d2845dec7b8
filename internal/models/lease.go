package models

import "time"

type Lease struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	PropertyID    uint64    `gorm:"not null;index" json:"property_id"`
	TenantID      uint64    `gorm:"not null;index" json:"tenant_id"`
	StartDate     time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate       time.Time `gorm:"type:date;not null" json:"end_date"`
	RentAmount    float64   `gorm:"not null" json:"rent_amount"`
	DepositAmount float64   `gorm:"not null" json:"deposit_amount"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	DocumentURL   string    `gorm:"type:varchar(500)" json:"document_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
	Tenant   User     `gorm:"foreignKey:TenantID" json:"-"`
}
