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
	"github.com/rentalhub/rentalhub-api/internal/storage"
	"gorm.io/gorm"
)

type LeaseHandler struct {
	store storage.BlobStore
}

func NewLeaseHandler(store storage.BlobStore) *LeaseHandler {
	return &LeaseHandler{store: store}
}

// syncPropertyStatus re-derives a property's status from its active leases.
// An active lease marks it rented; with the last active lease gone it drops
// back to available. The exists check always runs against current storage, so
// repeated transitions converge regardless of order.
func syncPropertyStatus(tx *gorm.DB, lease models.Lease) error {
	if lease.IsActive {
		return tx.Model(&models.Property{}).
			Where("id = ?", lease.PropertyID).
			Update("status", models.PropertyRented).Error
	}

	var otherActive int64
	err := tx.Model(&models.Lease{}).
		Where("property_id = ? AND is_active = ? AND id <> ?", lease.PropertyID, true, lease.ID).
		Count(&otherActive).Error
	if err != nil {
		return err
	}
	if otherActive == 0 {
		return tx.Model(&models.Property{}).
			Where("id = ?", lease.PropertyID).
			Update("status", models.PropertyAvailable).Error
	}
	return nil
}

// ListLeases returns the leases visible to the requester, optionally filtered
// by is_active and property.
func (h *LeaseHandler) ListLeases(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	query := database.GetDB().
		Preload("Property").
		Preload("Tenant").
		Scopes(policy.LeaseScope(user))

	if isActive := c.Query("is_active"); isActive != "" {
		query = query.Where("leases.is_active = ?", isActive == "true")
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("leases.property_id = ?", propertyID)
	}

	var leases []models.Lease
	if err := query.Find(&leases).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch leases")
		return
	}

	response := make([]dto.LeaseResponse, 0, len(leases))
	for _, lease := range leases {
		response = append(response, dto.ToLeaseResponse(lease))
	}
	c.JSON(http.StatusOK, response)
}

// CreateLease creates a lease for a tenant on a property in the requester's
// scope. An active lease immediately marks the property rented.
func (h *LeaseHandler) CreateLease(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if !policy.CanCreateLease(user) {
		apierrors.Forbidden(c, "Not authorized to create leases")
		return
	}

	var req dto.LeaseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	startDate, err := time.Parse(dto.DateLayout, req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid start_date")
		return
	}
	endDate, err := time.Parse(dto.DateLayout, req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid end_date")
		return
	}

	var property models.Property
	if err := database.GetDB().First(&property, req.PropertyID).Error; err != nil {
		apierrors.NotFound(c, "Property not found")
		return
	}

	if !policy.CanManageProperty(user, property) {
		apierrors.Forbidden(c, "Not authorized to create lease for this property")
		return
	}

	var tenant models.User
	err = database.GetDB().
		Where("id = ? AND role = ?", req.TenantID, models.RoleTenant).
		First(&tenant).Error
	if err != nil {
		apierrors.NotFound(c, "Tenant not found")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	lease := models.Lease{
		PropertyID:    property.ID,
		TenantID:      tenant.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
		IsActive:      isActive,
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lease).Error; err != nil {
			return err
		}
		if lease.IsActive {
			return syncPropertyStatus(tx, lease)
		}
		return nil
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create lease")
		return
	}

	lease.Property = property
	lease.Tenant = tenant
	c.JSON(http.StatusCreated, dto.ToLeaseResponse(lease))
}

// GetLease returns one lease.
func (h *LeaseHandler) GetLease(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var lease models.Lease
	if err := database.GetDB().Preload("Property").Preload("Tenant").First(&lease, id).Error; err != nil {
		apierrors.NotFound(c, "Lease not found")
		return
	}

	if !policy.CanViewLease(user, lease) {
		apierrors.Forbidden(c, "Not authorized to view this lease")
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaseResponse(lease))
}

// UpdateLease applies the staff allow-list. Admins and landlords may also
// reassign the tenant. The property's status is re-derived afterwards.
func (h *LeaseHandler) UpdateLease(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var lease models.Lease
	if err := database.GetDB().Preload("Property").Preload("Tenant").First(&lease, id).Error; err != nil {
		apierrors.NotFound(c, "Lease not found")
		return
	}

	if !policy.CanManageLease(user, lease) {
		if policy.IsTenant(user) {
			apierrors.Forbidden(c, "Tenants cannot update leases")
		} else {
			apierrors.Forbidden(c, "Not authorized to update this lease")
		}
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	policy.ApplyLeasePatch(&lease, payload)

	if raw, present := payload["tenant_id"]; present && policy.CanReassignLeaseTenant(user) {
		tenantID, ok := raw.(float64)
		if !ok {
			apierrors.NotFound(c, "Tenant not found")
			return
		}
		var tenant models.User
		err := database.GetDB().
			Where("id = ? AND role = ?", uint64(tenantID), models.RoleTenant).
			First(&tenant).Error
		if err != nil {
			apierrors.NotFound(c, "Tenant not found")
			return
		}
		lease.TenantID = tenant.ID
		lease.Tenant = tenant
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&lease).Error; err != nil {
			return err
		}
		return syncPropertyStatus(tx, lease)
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to update lease")
		return
	}

	database.GetDB().Preload("Property").Preload("Tenant").First(&lease, lease.ID)
	c.JSON(http.StatusOK, dto.ToLeaseResponse(lease))
}

// UploadDocument attaches the signed lease document. Tenants cannot upload.
func (h *LeaseHandler) UploadDocument(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var lease models.Lease
	if err := database.GetDB().Preload("Property").First(&lease, id).Error; err != nil {
		apierrors.NotFound(c, "Lease not found")
		return
	}

	if !policy.CanManageLease(user, lease) {
		if policy.IsTenant(user) {
			apierrors.Forbidden(c, "Tenants cannot upload lease documents")
		} else {
			apierrors.Forbidden(c, "Not authorized to upload documents for this lease")
		}
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

	lease.DocumentURL = url
	if err := database.GetDB().Save(&lease).Error; err != nil {
		apierrors.InternalError(c, "Failed to update lease")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lease document uploaded successfully"})
}
