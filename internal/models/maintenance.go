package models

import "time"

type MaintenancePriority string

const (
	PriorityLow       MaintenancePriority = "LOW"
	PriorityMedium    MaintenancePriority = "MEDIUM"
	PriorityHigh      MaintenancePriority = "HIGH"
	PriorityEmergency MaintenancePriority = "EMERGENCY"
)

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "PENDING"
	MaintenanceInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceResolved   MaintenanceStatus = "RESOLVED"
	MaintenanceCancelled  MaintenanceStatus = "CANCELLED"
)

// maintenanceStatusLabels are the human-readable labels used in notification
// messages when a request's status changes.
var maintenanceStatusLabels = map[MaintenanceStatus]string{
	MaintenancePending:    "Pending",
	MaintenanceInProgress: "In Progress",
	MaintenanceResolved:   "Resolved",
	MaintenanceCancelled:  "Cancelled",
}

func (s MaintenanceStatus) Label() string {
	if label, ok := maintenanceStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

type MaintenanceRequest struct {
	ID          uint64              `gorm:"primarykey" json:"id"`
	PropertyID  uint64              `gorm:"not null;index" json:"property_id"`
	TenantID    *uint64             `gorm:"index" json:"tenant_id"`
	Title       string              `gorm:"type:varchar(255);not null" json:"title"`
	Description string              `gorm:"type:text" json:"description"`
	Priority    MaintenancePriority `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Status      MaintenanceStatus   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	AssignedToID  *uint64  `gorm:"index" json:"assigned_to_id"`
	EstimatedCost *float64 `json:"estimated_cost"`
	ActualCost    *float64 `json:"actual_cost"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ResolvedAt *time.Time `json:"resolved_at"`

	// Relations
	Property   Property             `gorm:"foreignKey:PropertyID" json:"-"`
	Tenant     *User                `gorm:"foreignKey:TenantID" json:"-"`
	AssignedTo *User                `gorm:"foreignKey:AssignedToID" json:"-"`
	Comments   []MaintenanceComment `gorm:"foreignKey:MaintenanceRequestID" json:"-"`
}

type MaintenanceComment struct {
	ID                   uint64    `gorm:"primarykey" json:"id"`
	MaintenanceRequestID uint64    `gorm:"not null;index" json:"maintenance_request_id"`
	UserID               uint64    `gorm:"not null" json:"user_id"`
	Comment              string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt            time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

type MaintenanceImage struct {
	ID                   uint64    `gorm:"primarykey" json:"id"`
	MaintenanceRequestID uint64    `gorm:"not null;index" json:"maintenance_request_id"`
	URL                  string    `gorm:"type:varchar(500);not null" json:"url"`
	Caption              string    `gorm:"type:varchar(255)" json:"caption"`
	UploadedAt           time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
