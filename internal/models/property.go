package models

import "time"

type PropertyCategory string

const (
	CategoryResidential PropertyCategory = "RESIDENTIAL"
	CategoryCommercial  PropertyCategory = "COMMERCIAL"
	CategoryIndustrial  PropertyCategory = "INDUSTRIAL"
)

type PropertyStatus string

const (
	PropertyAvailable   PropertyStatus = "AVAILABLE"
	PropertyRented      PropertyStatus = "RENTED"
	PropertyMaintenance PropertyStatus = "MAINTENANCE"
)

type Property struct {
	ID            uint64           `gorm:"primarykey" json:"id"`
	Name          string           `gorm:"type:varchar(255);not null" json:"name"`
	Address       string           `gorm:"type:text;not null" json:"address"`
	City          string           `gorm:"type:varchar(100)" json:"city"`
	State         string           `gorm:"type:varchar(100)" json:"state"`
	ZipCode       string           `gorm:"type:varchar(20)" json:"zip_code"`
	Country       string           `gorm:"type:varchar(100);default:'United States'" json:"country"`
	Category      PropertyCategory `gorm:"type:varchar(20);not null;default:'RESIDENTIAL'" json:"category"`
	Status        PropertyStatus   `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	Bedrooms      int              `gorm:"default:0" json:"bedrooms"`
	Bathrooms     int              `gorm:"default:0" json:"bathrooms"`
	SquareFeet    int              `gorm:"default:0" json:"square_feet"`
	MonthlyRent   float64          `gorm:"not null" json:"monthly_rent"`
	DepositAmount float64          `gorm:"not null" json:"deposit_amount"`
	Description   string           `gorm:"type:text" json:"description"`
	Amenities     string           `gorm:"type:text" json:"amenities"`

	OwnerID           uint64  `gorm:"not null;index" json:"owner_id"`
	PropertyManagerID *uint64 `gorm:"index" json:"property_manager_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner           User               `gorm:"foreignKey:OwnerID" json:"-"`
	PropertyManager *User              `gorm:"foreignKey:PropertyManagerID" json:"-"`
	Images          []PropertyImage    `gorm:"foreignKey:PropertyID" json:"images,omitempty"`
	Documents       []PropertyDocument `gorm:"foreignKey:PropertyID" json:"-"`
	Leases          []Lease            `gorm:"foreignKey:PropertyID" json:"-"`
}

type PropertyImage struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	PropertyID uint64    `gorm:"not null;index" json:"property_id"`
	URL        string    `gorm:"type:varchar(500);not null" json:"url"`
	Caption    string    `gorm:"type:varchar(255)" json:"caption"`
	IsPrimary  bool      `gorm:"default:false" json:"is_primary"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

type PropertyDocument struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	PropertyID  uint64    `gorm:"not null;index" json:"property_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	URL         string    `gorm:"type:varchar(500);not null" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
