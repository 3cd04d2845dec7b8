package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentalhub/rentalhub-api/internal/apierrors"
	"github.com/rentalhub/rentalhub-api/internal/database"
	"github.com/rentalhub/rentalhub-api/internal/dto"
	"github.com/rentalhub/rentalhub-api/internal/middleware"
	"github.com/rentalhub/rentalhub-api/internal/models"
	"github.com/rentalhub/rentalhub-api/internal/policy"
	"gorm.io/gorm"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// dateOf strips the time from a timestamp, for whole-day arithmetic.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// today returns the current UTC date. Date-typed columns are stored as UTC
// midnight, so the current date must be derived in the same zone.
func today() time.Time {
	return dateOf(time.Now().UTC())
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// ownedPropertyIDs builds a subquery of property IDs owned by the user, or
// all properties for admins.
func ownedPropertyIDs(user models.User) *gorm.DB {
	sub := database.GetDB().Model(&models.Property{}).Select("id")
	if policy.IsLandlord(user) {
		sub = sub.Where("owner_id = ?", user.ID)
	}
	return sub
}

// managedPropertyIDs builds a subquery of property IDs managed by the user,
// or all properties for admins.
func managedPropertyIDs(user models.User) *gorm.DB {
	sub := database.GetDB().Model(&models.Property{}).Select("id")
	if policy.IsPropertyManager(user) {
		sub = sub.Where("property_manager_id = ?", user.ID)
	}
	return sub
}

// LandlordSummary rolls up portfolio occupancy, outstanding invoices, open
// maintenance, and recent activity for a landlord or admin.
func (h *DashboardHandler) LandlordSummary(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if !policy.IsLandlord(user) && !policy.IsAdmin(user) {
		apierrors.Forbidden(c, "Not authorized to access landlord dashboard")
		return
	}

	db := database.GetDB()
	propertyIDs := ownedPropertyIDs(user)

	countProperties := func(status models.PropertyStatus) int64 {
		var n int64
		query := db.Model(&models.Property{})
		if policy.IsLandlord(user) {
			query = query.Where("owner_id = ?", user.ID)
		}
		if status != "" {
			query = query.Where("status = ?", status)
		}
		query.Count(&n)
		return n
	}

	totalProperties := countProperties("")
	occupiedProperties := countProperties(models.PropertyRented)
	availableProperties := countProperties(models.PropertyAvailable)
	maintenanceProperties := countProperties(models.PropertyMaintenance)

	countInvoices := func(status models.InvoiceStatus) int64 {
		var n int64
		db.Model(&models.Invoice{}).
			Where("property_id IN (?)", ownedPropertyIDs(user)).
			Where("status = ?", status).
			Count(&n)
		return n
	}

	countMaintenance := func(status models.MaintenanceStatus) int64 {
		var n int64
		db.Model(&models.MaintenanceRequest{}).
			Where("property_id IN (?)", ownedPropertyIDs(user)).
			Where("status = ?", status).
			Count(&n)
		return n
	}

	occupancyRate := 0.0
	if totalProperties > 0 {
		occupancyRate = math.Round(float64(occupiedProperties)/float64(totalProperties)*100*100) / 100
	}

	var recentLeases []models.Lease
	db.Preload("Property").Preload("Tenant").
		Where("property_id IN (?)", propertyIDs).
		Order("created_at DESC").
		Limit(5).
		Find(&recentLeases)

	var recentPayments []models.Payment
	db.Preload("Invoice").Preload("Invoice.Tenant").
		Where("invoice_id IN (?)", db.Model(&models.Invoice{}).Select("id").Where("property_id IN (?)", ownedPropertyIDs(user))).
		Order("payment_date DESC").
		Limit(5).
		Find(&recentPayments)

	leaseItems := make([]gin.H, 0, len(recentLeases))
	for _, lease := range recentLeases {
		leaseItems = append(leaseItems, gin.H{
			"id":            lease.ID,
			"property_name": lease.Property.Name,
			"tenant_name":   lease.Tenant.FullName(),
			"start_date":    lease.StartDate.Format(dto.DateLayout),
			"end_date":      lease.EndDate.Format(dto.DateLayout),
			"rent_amount":   lease.RentAmount,
			"created_at":    lease.CreatedAt,
		})
	}

	paymentItems := make([]gin.H, 0, len(recentPayments))
	for _, payment := range recentPayments {
		paymentItems = append(paymentItems, gin.H{
			"id":             payment.ID,
			"invoice_id":     payment.InvoiceID,
			"tenant_name":    payment.Invoice.Tenant.FullName(),
			"amount":         payment.Amount,
			"payment_date":   payment.PaymentDate,
			"payment_method": string(payment.PaymentMethod),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"properties_summary": gin.H{
			"total":             totalProperties,
			"occupied":          occupiedProperties,
			"available":         availableProperties,
			"under_maintenance": maintenanceProperties,
			"occupancy_rate":    occupancyRate,
		},
		"financial_summary": gin.H{
			"pending_invoices": countInvoices(models.InvoicePending),
			"overdue_invoices": countInvoices(models.InvoiceOverdue),
		},
		"maintenance_summary": gin.H{
			"pending_requests":     countMaintenance(models.MaintenancePending),
			"in_progress_requests": countMaintenance(models.MaintenanceInProgress),
		},
		"recent_leases":   leaseItems,
		"recent_payments": paymentItems,
	})
}

// TenantSummary rolls up the requester's active leases, outstanding invoices,
// maintenance requests, and recent activity. Tenants only.
func (h *DashboardHandler) TenantSummary(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if !policy.IsTenant(user) {
		apierrors.Forbidden(c, "Not authorized to access tenant dashboard")
		return
	}

	db := database.GetDB()
	now := today()

	var activeLeases []models.Lease
	db.Preload("Property").
		Where("tenant_id = ? AND is_active = ?", user.ID, true).
		Find(&activeLeases)

	var pendingInvoices []models.Invoice
	db.Preload("Property").
		Where("tenant_id = ? AND status = ?", user.ID, models.InvoicePending).
		Order("due_date ASC").
		Find(&pendingInvoices)

	var requests []models.MaintenanceRequest
	db.Preload("Property").
		Where("tenant_id = ?", user.ID).
		Order("created_at DESC").
		Find(&requests)

	var recentPayments []models.Payment
	db.Preload("Invoice").Preload("Invoice.Property").
		Where("invoice_id IN (?)", db.Model(&models.Invoice{}).Select("id").Where("tenant_id = ?", user.ID)).
		Order("payment_date DESC").
		Limit(5).
		Find(&recentPayments)

	var recentNotifications []models.Notification
	db.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(5).
		Find(&recentNotifications)

	leaseItems := make([]gin.H, 0, len(activeLeases))
	for _, lease := range activeLeases {
		leaseItems = append(leaseItems, gin.H{
			"id":               lease.ID,
			"property_name":    lease.Property.Name,
			"property_address": lease.Property.Address,
			"start_date":       lease.StartDate.Format(dto.DateLayout),
			"end_date":         lease.EndDate.Format(dto.DateLayout),
			"rent_amount":      lease.RentAmount,
			"days_remaining":   daysBetween(now, lease.EndDate),
		})
	}

	invoiceItems := make([]gin.H, 0, len(pendingInvoices))
	for _, invoice := range pendingInvoices {
		invoiceItems = append(invoiceItems, gin.H{
			"id":             invoice.ID,
			"property_name":  invoice.Property.Name,
			"amount":         invoice.Amount,
			"due_date":       invoice.DueDate.Format(dto.DateLayout),
			"status":         string(invoice.Status),
			"days_until_due": daysBetween(now, invoice.DueDate),
		})
	}

	requestItems := make([]gin.H, 0, len(requests))
	for _, request := range requests {
		requestItems = append(requestItems, gin.H{
			"id":            request.ID,
			"property_name": request.Property.Name,
			"title":         request.Title,
			"status":        string(request.Status),
			"priority":      string(request.Priority),
			"created_at":    request.CreatedAt,
		})
	}

	paymentItems := make([]gin.H, 0, len(recentPayments))
	for _, payment := range recentPayments {
		paymentItems = append(paymentItems, gin.H{
			"id":             payment.ID,
			"invoice_id":     payment.InvoiceID,
			"property_name":  payment.Invoice.Property.Name,
			"amount":         payment.Amount,
			"payment_date":   payment.PaymentDate,
			"payment_method": string(payment.PaymentMethod),
		})
	}

	notificationItems := make([]gin.H, 0, len(recentNotifications))
	for _, notification := range recentNotifications {
		notificationItems = append(notificationItems, gin.H{
			"id":         notification.ID,
			"type":       string(notification.Type),
			"title":      notification.Title,
			"is_read":    notification.IsRead,
			"created_at": notification.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"leases":               leaseItems,
		"invoices":             invoiceItems,
		"maintenance_requests": requestItems,
		"recent_payments":      paymentItems,
		"recent_notifications": notificationItems,
	})
}

// PropertyManagerSummary rolls up the managed portfolio: lease counts with a
// 30-day expiry lookahead, maintenance counts by status, and the most recent
// requests. Property managers and admins only.
func (h *DashboardHandler) PropertyManagerSummary(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if !policy.IsPropertyManager(user) && !policy.IsAdmin(user) {
		apierrors.Forbidden(c, "Not authorized to access property manager dashboard")
		return
	}

	db := database.GetDB()

	var managedProperties int64
	propertyCount := db.Model(&models.Property{})
	if policy.IsPropertyManager(user) {
		propertyCount = propertyCount.Where("property_manager_id = ?", user.ID)
	}
	propertyCount.Count(&managedProperties)

	countMaintenance := func(status models.MaintenanceStatus) int64 {
		var n int64
		db.Model(&models.MaintenanceRequest{}).
			Where("property_id IN (?)", managedPropertyIDs(user)).
			Where("status = ?", status).
			Count(&n)
		return n
	}

	var activeLeases int64
	db.Model(&models.Lease{}).
		Where("property_id IN (?)", managedPropertyIDs(user)).
		Where("is_active = ?", true).
		Count(&activeLeases)

	var expiringLeases int64
	db.Model(&models.Lease{}).
		Where("property_id IN (?)", managedPropertyIDs(user)).
		Where("is_active = ? AND end_date <= ?", true, today().AddDate(0, 0, 30)).
		Count(&expiringLeases)

	var recentRequests []models.MaintenanceRequest
	db.Preload("Property").Preload("Tenant").
		Where("property_id IN (?)", managedPropertyIDs(user)).
		Order("created_at DESC").
		Limit(5).
		Find(&recentRequests)

	requestItems := make([]gin.H, 0, len(recentRequests))
	for _, request := range recentRequests {
		tenantName := "N/A"
		if request.Tenant != nil {
			tenantName = request.Tenant.FullName()
		}
		requestItems = append(requestItems, gin.H{
			"id":            request.ID,
			"property_name": request.Property.Name,
			"tenant_name":   tenantName,
			"title":         request.Title,
			"status":        string(request.Status),
			"priority":      string(request.Priority),
			"created_at":    request.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"properties_summary": gin.H{
			"managed_properties": managedProperties,
			"active_leases":      activeLeases,
			"expiring_leases":    expiringLeases,
		},
		"maintenance_summary": gin.H{
			"pending_requests":     countMaintenance(models.MaintenancePending),
			"in_progress_requests": countMaintenance(models.MaintenanceInProgress),
			"resolved_requests":    countMaintenance(models.MaintenanceResolved),
		},
		"recent_maintenance_requests": requestItems,
	})
}
