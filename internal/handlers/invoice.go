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
)

type InvoiceHandler struct {
	notifier *services.Notifier
}

func NewInvoiceHandler(notifier *services.Notifier) *InvoiceHandler {
	return &InvoiceHandler{notifier: notifier}
}

// ListInvoices returns the invoices visible to the requester, most recent due
// date first. The tenant_id filter is ignored for tenants, who only ever see
// their own.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	query := database.GetDB().
		Preload("Tenant").
		Preload("Property").
		Scopes(policy.InvoiceScope(user))

	if status := c.Query("status"); status != "" {
		query = query.Where("invoices.status = ?", status)
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("invoices.property_id = ?", propertyID)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" && !policy.IsTenant(user) {
		query = query.Where("invoices.tenant_id = ?", tenantID)
	}

	var invoices []models.Invoice
	if err := query.Order("invoices.due_date DESC").Find(&invoices).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch invoices")
		return
	}

	response := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		response = append(response, dto.ToInvoiceResponse(invoice))
	}
	c.JSON(http.StatusOK, response)
}

// CreateInvoice issues an invoice against a lease. The lease must belong to
// exactly the named property and tenant. The tenant is notified.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if policy.IsTenant(user) {
		apierrors.Forbidden(c, "Tenants cannot create invoices")
		return
	}

	var req dto.InvoiceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	dueDate, err := time.Parse(dto.DateLayout, req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, "Invalid due_date")
		return
	}

	var property models.Property
	if err := database.GetDB().First(&property, req.PropertyID).Error; err != nil {
		apierrors.NotFound(c, "Property not found")
		return
	}

	if !policy.CanManageProperty(user, property) {
		apierrors.Forbidden(c, "Not authorized to create invoice for this property")
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

	var lease models.Lease
	if err := database.GetDB().First(&lease, req.LeaseID).Error; err != nil {
		apierrors.NotFound(c, "Lease not found")
		return
	}
	if lease.PropertyID != property.ID || lease.TenantID != tenant.ID {
		apierrors.BadRequest(c, "Lease does not match property and tenant")
		return
	}

	invoice := models.Invoice{
		TenantID:    tenant.ID,
		PropertyID:  property.ID,
		LeaseID:     lease.ID,
		Amount:      req.Amount,
		Description: req.Description,
		DueDate:     dueDate,
		Status:      models.InvoicePending,
	}
	if err := database.GetDB().Create(&invoice).Error; err != nil {
		apierrors.InternalError(c, "Failed to create invoice")
		return
	}

	h.notifier.InvoiceCreated(invoice)

	invoice.Tenant = tenant
	invoice.Property = property
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// GetInvoice returns one invoice.
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var invoice models.Invoice
	err := database.GetDB().Preload("Tenant").Preload("Property").First(&invoice, id).Error
	if err != nil {
		apierrors.NotFound(c, "Invoice not found")
		return
	}

	if !policy.CanViewInvoice(user, invoice) {
		apierrors.Forbidden(c, "Not authorized to view this invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// UpdateInvoice applies the staff allow-list. A status key in the payload
// notifies the tenant, even when the value did not change.
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var invoice models.Invoice
	err := database.GetDB().Preload("Tenant").Preload("Property").First(&invoice, id).Error
	if err != nil {
		apierrors.NotFound(c, "Invoice not found")
		return
	}

	if !policy.CanManageInvoice(user, invoice) {
		if policy.IsTenant(user) {
			apierrors.Forbidden(c, "Tenants cannot update invoices")
		} else {
			apierrors.Forbidden(c, "Not authorized to update this invoice")
		}
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	policy.ApplyInvoicePatch(&invoice, payload)

	if err := database.GetDB().Save(&invoice).Error; err != nil {
		apierrors.InternalError(c, "Failed to update invoice")
		return
	}

	if _, statusChanged := payload["status"]; statusChanged {
		h.notifier.InvoiceStatusChanged(invoice)
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
