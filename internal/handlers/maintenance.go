package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentalhub/rentalhub-api/internal/apierrors"
	"github.com/rentalhub/rentalhub-api/internal/database"
	"github.com/rentalhub/rentalhub-api/internal/dto"
	"github.com/rentalhub/rentalhub-api/internal/middleware"
	"github.com/rentalhub/rentalhub-api/internal/models"
	"github.com/rentalhub/rentalhub-api/internal/policy"
	"github.com/rentalhub/rentalhub-api/internal/services"
	"github.com/rentalhub/rentalhub-api/internal/storage"
)

type MaintenanceHandler struct {
	store    storage.BlobStore
	notifier *services.Notifier
}

func NewMaintenanceHandler(store storage.BlobStore, notifier *services.Notifier) *MaintenanceHandler {
	return &MaintenanceHandler{
		store:    store,
		notifier: notifier,
	}
}

func (h *MaintenanceHandler) loadRequest(c *gin.Context) (models.MaintenanceRequest, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return models.MaintenanceRequest{}, false
	}

	var request models.MaintenanceRequest
	err := database.GetDB().
		Preload("Property").
		Preload("Tenant").
		Preload("AssignedTo").
		First(&request, id).Error
	if err != nil {
		apierrors.NotFound(c, "Maintenance request not found")
		return models.MaintenanceRequest{}, false
	}
	return request, true
}

// ListRequests returns maintenance requests visible to the requester, newest
// first, optionally filtered by status, priority, and property.
func (h *MaintenanceHandler) ListRequests(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	query := database.GetDB().
		Preload("Property").
		Preload("Tenant").
		Preload("AssignedTo").
		Scopes(policy.MaintenanceScope(user))

	if status := c.Query("status"); status != "" {
		query = query.Where("maintenance_requests.status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("maintenance_requests.priority = ?", priority)
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("maintenance_requests.property_id = ?", propertyID)
	}

	var requests []models.MaintenanceRequest
	if err := query.Order("maintenance_requests.created_at DESC").Find(&requests).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch maintenance requests")
		return
	}

	response := make([]dto.MaintenanceResponse, 0, len(requests))
	for _, request := range requests {
		response = append(response, dto.ToMaintenanceResponse(request))
	}
	c.JSON(http.StatusOK, response)
}

// CreateRequest opens a maintenance request. A tenant must hold an active
// lease on the property and becomes the request's tenant; staff-created
// requests carry no tenant. The property's manager and owner are notified.
func (h *MaintenanceHandler) CreateRequest(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.MaintenanceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	var property models.Property
	if err := database.GetDB().First(&property, req.PropertyID).Error; err != nil {
		apierrors.NotFound(c, "Property not found")
		return
	}

	var tenantID *uint64
	if policy.IsTenant(user) {
		var count int64
		database.GetDB().Model(&models.Lease{}).
			Where("property_id = ? AND tenant_id = ? AND is_active = ?", property.ID, user.ID, true).
			Count(&count)
		if count == 0 {
			apierrors.Forbidden(c, "You can only create maintenance requests for properties you're renting")
			return
		}
		tenantID = &user.ID
	}

	request := models.MaintenanceRequest{
		PropertyID:  property.ID,
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.MaintenancePriority(req.Priority),
		Status:      models.MaintenancePending,
	}
	if err := database.GetDB().Create(&request).Error; err != nil {
		apierrors.InternalError(c, "Failed to create maintenance request")
		return
	}

	h.notifier.MaintenanceCreated(request, property)

	request.Property = property
	if tenantID != nil {
		request.Tenant = &user
	}
	c.JSON(http.StatusCreated, dto.ToMaintenanceResponse(request))
}

// GetRequest returns one maintenance request.
func (h *MaintenanceHandler) GetRequest(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	request, ok := h.loadRequest(c)
	if !ok {
		return
	}

	if !policy.CanAccessMaintenance(user, request) {
		apierrors.Forbidden(c, "Not authorized to view this maintenance request")
		return
	}

	c.JSON(http.StatusOK, dto.ToMaintenanceResponse(request))
}

// UpdateRequest applies the per-role allow-list. Staff may also reassign the
// request. resolved_at tracks the status: set when it lands on resolved,
// cleared on anything else. A status key in the payload notifies the tenant.
func (h *MaintenanceHandler) UpdateRequest(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	request, ok := h.loadRequest(c)
	if !ok {
		return
	}

	if !policy.CanAccessMaintenance(user, request) {
		apierrors.Forbidden(c, "Not authorized to update this maintenance request")
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	policy.ApplyMaintenancePatch(&request, payload, user)

	if raw, present := payload["assigned_to_id"]; present && !policy.IsTenant(user) {
		if assignedID, ok := raw.(float64); ok && assignedID != 0 {
			var assignee models.User
			if err := database.GetDB().First(&assignee, uint64(assignedID)).Error; err != nil {
				apierrors.BadRequest(c, "Invalid user ID for assignment")
				return
			}
			request.AssignedToID = &assignee.ID
			request.AssignedTo = &assignee
		} else {
			request.AssignedToID = nil
			request.AssignedTo = nil
		}
	}

	if request.Status == models.MaintenanceResolved {
		if request.ResolvedAt == nil {
			now := time.Now()
			request.ResolvedAt = &now
		}
	} else {
		request.ResolvedAt = nil
	}

	if err := database.GetDB().Save(&request).Error; err != nil {
		apierrors.InternalError(c, "Failed to update maintenance request")
		return
	}

	if _, statusChanged := payload["status"]; statusChanged {
		h.notifier.MaintenanceStatusChanged(request)
	}

	c.JSON(http.StatusOK, dto.ToMaintenanceResponse(request))
}

// AddComment attaches a comment and fans out to everyone else on the request.
func (h *MaintenanceHandler) AddComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	request, ok := h.loadRequest(c)
	if !ok {
		return
	}

	if !policy.CanAccessMaintenance(user, request) {
		apierrors.Forbidden(c, "Not authorized to comment on this maintenance request")
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	comment := models.MaintenanceComment{
		MaintenanceRequestID: request.ID,
		UserID:               user.ID,
		Comment:              req.Comment,
	}
	if err := database.GetDB().Create(&comment).Error; err != nil {
		apierrors.InternalError(c, "Failed to add comment")
		return
	}

	h.notifier.CommentAdded(request, comment, user)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Comment added successfully",
		"comment_id": comment.ID,
		"created_at": comment.CreatedAt,
	})
}

// ListComments returns a request's comments oldest first.
func (h *MaintenanceHandler) ListComments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	request, ok := h.loadRequest(c)
	if !ok {
		return
	}

	if !policy.CanAccessMaintenance(user, request) {
		apierrors.Forbidden(c, "Not authorized to view comments for this maintenance request")
		return
	}

	var comments []models.MaintenanceComment
	err := database.GetDB().
		Preload("User").
		Where("maintenance_request_id = ?", request.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch comments")
		return
	}

	response := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		response = append(response, dto.ToCommentResponse(comment))
	}
	c.JSON(http.StatusOK, response)
}

// UploadImage attaches an image to a maintenance request.
func (h *MaintenanceHandler) UploadImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	request, ok := h.loadRequest(c)
	if !ok {
		return
	}

	if !policy.CanAccessMaintenance(user, request) {
		apierrors.Forbidden(c, "Not authorized to upload images for this maintenance request")
		return
	}

	data, fileName, ok := readUpload(c, "file")
	if !ok {
		return
	}

	url, err := h.store.Save(fileName, data)
	if err != nil {
		apierrors.InternalError(c, "Failed to store file")
		return
	}

	image := models.MaintenanceImage{
		MaintenanceRequestID: request.ID,
		URL:                  url,
		Caption:              c.PostForm("caption"),
	}
	if err := database.GetDB().Create(&image).Error; err != nil {
		apierrors.InternalError(c, "Failed to save image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded successfully", "image_id": image.ID})
}
