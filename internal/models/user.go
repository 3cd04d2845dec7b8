package models

import "time"

type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleLandlord        Role = "LANDLORD"
	RolePropertyManager Role = "PROPERTY_MANAGER"
	RoleTenant          Role = "TENANT"
)

type User struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	Username        string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName       string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName        string    `gorm:"type:varchar(150)" json:"last_name"`
	Role            Role      `gorm:"type:varchar(20);not null;default:'TENANT'" json:"role"`
	PhoneNumber     string    `gorm:"type:varchar(15)" json:"phone_number"`
	ProfileImageURL string    `gorm:"type:varchar(500)" json:"profile_image"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	OwnedProperties   []Property `gorm:"foreignKey:OwnerID" json:"-"`
	ManagedProperties []Property `gorm:"foreignKey:PropertyManagerID" json:"-"`
	Leases            []Lease    `gorm:"foreignKey:TenantID" json:"-"`
}

// FullName is the display name used in notification messages and responses.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
