package dto

import (
	"time"

	"github.com/rentalhub/rentalhub-api/internal/models"
)

// MaintenanceCreateRequest is the payload for opening a maintenance request.
type MaintenanceCreateRequest struct {
	PropertyID  uint64 `json:"property_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
}

// CommentCreateRequest is the payload for commenting on a request.
type CommentCreateRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type MaintenanceResponse struct {
	ID             uint64     `json:"id"`
	PropertyID     uint64     `json:"property_id"`
	TenantID       *uint64    `json:"tenant_id"`
	TenantName     string     `json:"tenant_name"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	AssignedToID   *uint64    `json:"assigned_to_id"`
	AssignedToName *string    `json:"assigned_to_name"`
	EstimatedCost  *float64   `json:"estimated_cost"`
	ActualCost     *float64   `json:"actual_cost"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ResolvedAt     *time.Time `json:"resolved_at"`
}

// ToMaintenanceResponse expects Tenant and AssignedTo to be preloaded. Staff
// can open requests on behalf of nobody in particular, so the tenant may be
// absent.
func ToMaintenanceResponse(request models.MaintenanceRequest) MaintenanceResponse {
	tenantName := "N/A"
	if request.Tenant != nil {
		tenantName = request.Tenant.FullName()
	}

	var assignedToName *string
	if request.AssignedTo != nil {
		name := request.AssignedTo.FullName()
		assignedToName = &name
	}

	return MaintenanceResponse{
		ID:             request.ID,
		PropertyID:     request.PropertyID,
		TenantID:       request.TenantID,
		TenantName:     tenantName,
		Title:          request.Title,
		Description:    request.Description,
		Priority:       string(request.Priority),
		Status:         string(request.Status),
		AssignedToID:   request.AssignedToID,
		AssignedToName: assignedToName,
		EstimatedCost:  request.EstimatedCost,
		ActualCost:     request.ActualCost,
		CreatedAt:      request.CreatedAt,
		UpdatedAt:      request.UpdatedAt,
		ResolvedAt:     request.ResolvedAt,
	}
}

type CommentResponse struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCommentResponse expects User to be preloaded.
func ToCommentResponse(comment models.MaintenanceComment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		UserName:  comment.User.FullName(),
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
	}
}
