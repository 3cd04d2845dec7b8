package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentalhub/rentalhub-api/internal/apierrors"
	"github.com/rentalhub/rentalhub-api/internal/database"
	"github.com/rentalhub/rentalhub-api/internal/dto"
	"github.com/rentalhub/rentalhub-api/internal/middleware"
	"github.com/rentalhub/rentalhub-api/internal/models"
	"github.com/rentalhub/rentalhub-api/internal/policy"
	"github.com/rentalhub/rentalhub-api/internal/storage"
)

type PropertyHandler struct {
	store storage.BlobStore
}

func NewPropertyHandler(store storage.BlobStore) *PropertyHandler {
	return &PropertyHandler{store: store}
}

// ListProperties returns the properties visible to the requester, optionally
// filtered by status, category, city, minimum bedrooms, and maximum rent.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	query := database.GetDB().
		Preload("Images").
		Scopes(policy.PropertyScope(user))

	if status := c.Query("status"); status != "" {
		query = query.Where("properties.status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("properties.category = ?", category)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("properties.city LIKE ?", "%"+city+"%")
	}
	if minBedrooms := c.Query("min_bedrooms"); minBedrooms != "" {
		n, err := strconv.Atoi(minBedrooms)
		if err != nil {
			apierrors.BadRequest(c, "Invalid min_bedrooms")
			return
		}
		query = query.Where("properties.bedrooms >= ?", n)
	}
	if maxRent := c.Query("max_rent"); maxRent != "" {
		f, err := strconv.ParseFloat(maxRent, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid max_rent")
			return
		}
		query = query.Where("properties.monthly_rent <= ?", f)
	}

	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch properties")
		return
	}

	response := make([]dto.PropertyResponse, 0, len(properties))
	for _, property := range properties {
		response = append(response, dto.ToPropertyResponse(property))
	}
	c.JSON(http.StatusOK, response)
}

// CreateProperty creates a property owned by the requester. New properties
// always start out available regardless of the payload.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if !policy.CanCreateProperty(user) {
		apierrors.Forbidden(c, "Not authorized to create properties")
		return
	}

	var req dto.PropertyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	country := req.Country
	if country == "" {
		country = "United States"
	}

	property := models.Property{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Country:       country,
		Category:      models.PropertyCategory(req.Category),
		Status:        models.PropertyAvailable,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		SquareFeet:    req.SquareFeet,
		MonthlyRent:   req.MonthlyRent,
		DepositAmount: req.DepositAmount,
		Description:   req.Description,
		Amenities:     req.Amenities,
		OwnerID:       user.ID,
	}
	if err := database.GetDB().Create(&property).Error; err != nil {
		apierrors.InternalError(c, "Failed to create property")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPropertyResponse(property))
}

// GetProperty returns one property. Existence is resolved before scope, so an
// out-of-scope ID reads as forbidden, not missing.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var property models.Property
	if err := database.GetDB().Preload("Images").First(&property, id).Error; err != nil {
		apierrors.NotFound(c, "Property not found")
		return
	}

	rentsProperty := false
	if policy.IsTenant(user) {
		var count int64
		database.GetDB().Model(&models.Lease{}).
			Where("property_id = ? AND tenant_id = ? AND is_active = ?", property.ID, user.ID, true).
			Count(&count)
		rentsProperty = count > 0
	}

	if !policy.CanViewProperty(user, property, rentsProperty) {
		apierrors.Forbidden(c, "Not authorized to view this property")
		return
	}

	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// UpdateProperty applies the staff allow-list. A landlord may additionally
// reassign or clear the property manager; the target must actually hold the
// property-manager role.
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var property models.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		apierrors.NotFound(c, "Property not found")
		return
	}

	if !policy.CanManageProperty(user, property) {
		if policy.IsTenant(user) {
			apierrors.Forbidden(c, "Tenants cannot update properties")
		} else {
			apierrors.Forbidden(c, "Not authorized to update this property")
		}
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	policy.ApplyPropertyPatch(&property, payload)

	if raw, present := payload["property_manager_id"]; present && policy.CanReassignPropertyManager(user) {
		if managerID, ok := raw.(float64); ok && managerID != 0 {
			var manager models.User
			err := database.GetDB().
				Where("id = ? AND role = ?", uint64(managerID), models.RolePropertyManager).
				First(&manager).Error
			if err != nil {
				apierrors.BadRequest(c, "Invalid property manager ID")
				return
			}
			property.PropertyManagerID = &manager.ID
		} else {
			property.PropertyManagerID = nil
		}
	}

	if err := database.GetDB().Save(&property).Error; err != nil {
		apierrors.InternalError(c, "Failed to update property")
		return
	}

	database.GetDB().Preload("Images").First(&property, property.ID)
	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// UploadImage attaches an image to a property. Marking it primary demotes
// every other primary image of that property.
func (h *PropertyHandler) UploadImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var property models.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		apierrors.NotFound(c, "Property not found")
		return
	}

	if !policy.CanManageProperty(user, property) {
		apierrors.Forbidden(c, "Not authorized to upload images for this property")
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

	isPrimary := c.PostForm("is_primary") == "true"
	image := models.PropertyImage{
		PropertyID: property.ID,
		URL:        url,
		Caption:    c.PostForm("caption"),
		IsPrimary:  isPrimary,
	}
	if err := database.GetDB().Create(&image).Error; err != nil {
		apierrors.InternalError(c, "Failed to save image")
		return
	}

	if isPrimary {
		database.GetDB().Model(&models.PropertyImage{}).
			Where("property_id = ? AND is_primary = ? AND id <> ?", property.ID, true, image.ID).
			Update("is_primary", false)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded successfully", "image_id": image.ID})
}

// UploadDocument attaches a titled document to a property.
func (h *PropertyHandler) UploadDocument(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var property models.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		apierrors.NotFound(c, "Property not found")
		return
	}

	if !policy.CanManageProperty(user, property) {
		apierrors.Forbidden(c, "Not authorized to upload documents for this property")
		return
	}

	title := c.PostForm("title")
	if title == "" {
		apierrors.BadRequest(c, "Title is required")
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

	document := models.PropertyDocument{
		PropertyID:  property.ID,
		Title:       title,
		URL:         url,
		Description: c.PostForm("description"),
	}
	if err := database.GetDB().Create(&document).Error; err != nil {
		apierrors.InternalError(c, "Failed to save document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document uploaded successfully", "document_id": document.ID})
}

// Statistics aggregates lease, financial, and maintenance rollups for one
// property. Averages are whole days (integer division); the collection rate
// is a percentage rounded to two decimals.
func (h *PropertyHandler) Statistics(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var property models.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		apierrors.NotFound(c, "Property not found")
		return
	}

	if policy.IsTenant(user) {
		apierrors.Forbidden(c, "Not authorized to view property statistics")
		return
	}
	if !policy.CanManageProperty(user, property) {
		apierrors.Forbidden(c, "Not authorized to view statistics for this property")
		return
	}

	db := database.GetDB()

	var leases []models.Lease
	db.Where("property_id = ?", property.ID).Find(&leases)

	totalLeases := len(leases)
	currentLeases := 0
	totalLeaseDays := 0
	for _, lease := range leases {
		if lease.IsActive {
			currentLeases++
		}
		totalLeaseDays += int(lease.EndDate.Sub(lease.StartDate).Hours() / 24)
	}
	avgLeaseDuration := 0
	if totalLeases > 0 {
		avgLeaseDuration = totalLeaseDays / totalLeases
	}

	var totalInvoiced, totalCollected float64
	db.Model(&models.Invoice{}).
		Where("property_id = ?", property.ID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalInvoiced)
	db.Model(&models.Payment{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.property_id = ?", property.ID).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&totalCollected)

	collectionRate := 0.0
	if totalInvoiced > 0 {
		collectionRate = math.Round(totalCollected/totalInvoiced*100*100) / 100
	}

	countMaintenance := func(column string, value any) int64 {
		var n int64
		db.Model(&models.MaintenanceRequest{}).
			Where("property_id = ?", property.ID).
			Where(column+" = ?", value).
			Count(&n)
		return n
	}

	var totalMaintenance int64
	db.Model(&models.MaintenanceRequest{}).
		Where("property_id = ?", property.ID).
		Count(&totalMaintenance)

	var resolved []models.MaintenanceRequest
	db.Where("property_id = ? AND status = ? AND resolved_at IS NOT NULL", property.ID, models.MaintenanceResolved).
		Find(&resolved)
	// Resolution time counts calendar days, not elapsed 24-hour periods.
	totalResolutionDays := 0
	for _, req := range resolved {
		totalResolutionDays += daysBetween(dateOf(req.CreatedAt), dateOf(*req.ResolvedAt))
	}
	avgResolutionDays := 0
	if len(resolved) > 0 {
		avgResolutionDays = totalResolutionDays / len(resolved)
	}

	var totalMaintenanceCost float64
	db.Model(&models.MaintenanceRequest{}).
		Where("property_id = ?", property.ID).
		Select("COALESCE(SUM(actual_cost), 0)").
		Scan(&totalMaintenanceCost)

	c.JSON(http.StatusOK, gin.H{
		"lease_statistics": gin.H{
			"total_leases":                totalLeases,
			"current_leases":              currentLeases,
			"average_lease_duration_days": avgLeaseDuration,
		},
		"financial_statistics": gin.H{
			"total_invoiced":  totalInvoiced,
			"total_collected": totalCollected,
			"collection_rate": collectionRate,
		},
		"maintenance_statistics": gin.H{
			"total_requests": totalMaintenance,
			"requests_by_priority": gin.H{
				string(models.PriorityLow):       countMaintenance("priority", models.PriorityLow),
				string(models.PriorityMedium):    countMaintenance("priority", models.PriorityMedium),
				string(models.PriorityHigh):      countMaintenance("priority", models.PriorityHigh),
				string(models.PriorityEmergency): countMaintenance("priority", models.PriorityEmergency),
			},
			"requests_by_status": gin.H{
				string(models.MaintenancePending):    countMaintenance("status", models.MaintenancePending),
				string(models.MaintenanceInProgress): countMaintenance("status", models.MaintenanceInProgress),
				string(models.MaintenanceResolved):   countMaintenance("status", models.MaintenanceResolved),
				string(models.MaintenanceCancelled):  countMaintenance("status", models.MaintenanceCancelled),
			},
			"average_resolution_days": avgResolutionDays,
			"total_maintenance_cost":  totalMaintenanceCost,
		},
	})
}
