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
	"github.com/rentalhub/rentalhub-api/internal/repository"
	"github.com/rentalhub/rentalhub-api/internal/services"
)

type PaymentHandler struct {
	payments repository.PaymentRepository
	notifier *services.Notifier
}

func NewPaymentHandler(payments repository.PaymentRepository, notifier *services.Notifier) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		notifier: notifier,
	}
}

// ListPayments returns the payments visible to the requester, newest first.
// The tenant_id filter is ignored for tenants.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	query := database.GetDB().
		Preload("Invoice").
		Preload("Invoice.Tenant").
		Preload("Invoice.Property").
		Scopes(policy.PaymentScope(user))

	if invoiceID := c.Query("invoice_id"); invoiceID != "" {
		query = query.Where("payments.invoice_id = ?", invoiceID)
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("EXISTS (SELECT 1 FROM invoices WHERE invoices.id = payments.invoice_id AND invoices.property_id = ?)", propertyID)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" && !policy.IsTenant(user) {
		query = query.Where("EXISTS (SELECT 1 FROM invoices WHERE invoices.id = payments.invoice_id AND invoices.tenant_id = ?)", tenantID)
	}

	var payments []models.Payment
	if err := query.Order("payments.payment_date DESC").Find(&payments).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch payments")
		return
	}

	response := make([]dto.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		response = append(response, dto.ToPaymentResponse(payment))
	}
	c.JSON(http.StatusOK, response)
}

// CreatePayment records a payment against an invoice the requester may act
// on, settles the invoice when covered, and fires the one-sided fan-out.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	var invoice models.Invoice
	err := database.GetDB().
		Preload("Tenant").
		Preload("Property").
		First(&invoice, req.InvoiceID).Error
	if err != nil {
		apierrors.NotFound(c, "Invoice not found")
		return
	}

	if !policy.CanPayInvoice(user, invoice) {
		if policy.IsTenant(user) {
			apierrors.Forbidden(c, "Not authorized to make payment for this invoice")
		} else {
			apierrors.Forbidden(c, "Not authorized to record payment for this invoice")
		}
		return
	}

	payment := models.Payment{
		InvoiceID:     invoice.ID,
		Amount:        req.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}
	if _, err := h.payments.RecordPayment(&payment, &invoice); err != nil {
		apierrors.InternalError(c, "Failed to record payment")
		return
	}

	h.notifier.PaymentRecorded(payment, invoice, policy.IsTenant(user))

	payment.Invoice = invoice
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// GetPayment returns one payment.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payment models.Payment
	err := database.GetDB().
		Preload("Invoice").
		Preload("Invoice.Tenant").
		Preload("Invoice.Property").
		First(&payment, id).Error
	if err != nil {
		apierrors.NotFound(c, "Payment not found")
		return
	}

	if !policy.CanViewInvoice(user, payment.Invoice) {
		apierrors.Forbidden(c, "Not authorized to view this payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
