package services

import (
	"fmt"
	"log"

	"github.com/rentalhub/rentalhub-api/internal/database"
	"github.com/rentalhub/rentalhub-api/internal/models"
)

// Notifier derives the recipients of a domain event and writes one
// Notification row per recipient. It runs after the primary mutation has
// committed: a failed insert is logged and swallowed, never surfaced to the
// request that triggered it.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) notify(userID uint64, typ models.NotificationType, title, message, contentType string, objectID uint64) {
	notification := models.Notification{
		UserID:      userID,
		Type:        typ,
		Title:       title,
		Message:     message,
		ContentType: contentType,
		ObjectID:    objectID,
	}

	if err := database.GetDB().Create(&notification).Error; err != nil {
		log.Printf("notifier: failed to create notification for user %d: %v", userID, err)
	}
}

// MaintenanceCreated notifies the property manager (when one is set) and the
// property owner about a new maintenance request.
func (n *Notifier) MaintenanceCreated(request models.MaintenanceRequest, property models.Property) {
	title := "New maintenance request"
	message := fmt.Sprintf("New maintenance request for %s: %s", property.Name, request.Title)

	if property.PropertyManagerID != nil {
		n.notify(*property.PropertyManagerID, models.NotificationMaintenanceUpdate, title, message, "maintenance", request.ID)
	}
	n.notify(property.OwnerID, models.NotificationMaintenanceUpdate, title, message, "maintenance", request.ID)
}

// MaintenanceStatusChanged notifies the request's tenant, if any, with the
// human-readable status label.
func (n *Notifier) MaintenanceStatusChanged(request models.MaintenanceRequest) {
	if request.TenantID == nil {
		return
	}

	n.notify(
		*request.TenantID,
		models.NotificationMaintenanceUpdate,
		fmt.Sprintf("Maintenance request update: %s", request.Title),
		fmt.Sprintf("Status changed to: %s", request.Status.Label()),
		"maintenance",
		request.ID,
	)
}

// CommentAdded notifies everyone attached to the request (tenant, property
// manager, property owner, assignee) except the comment's author, with each
// recipient notified once.
func (n *Notifier) CommentAdded(request models.MaintenanceRequest, comment models.MaintenanceComment, author models.User) {
	recipients := make(map[uint64]struct{})
	if request.TenantID != nil {
		recipients[*request.TenantID] = struct{}{}
	}
	if request.Property.PropertyManagerID != nil {
		recipients[*request.Property.PropertyManagerID] = struct{}{}
	}
	recipients[request.Property.OwnerID] = struct{}{}
	if request.AssignedToID != nil {
		recipients[*request.AssignedToID] = struct{}{}
	}
	delete(recipients, author.ID)

	preview := comment.Comment
	if runes := []rune(preview); len(runes) > 50 {
		preview = string(runes[:50]) + "..."
	}

	title := fmt.Sprintf("New comment on: %s", request.Title)
	message := fmt.Sprintf("%s: %s", author.FullName(), preview)

	for userID := range recipients {
		n.notify(userID, models.NotificationMaintenanceUpdate, title, message, "maintenance_comment", comment.ID)
	}
}

// InvoiceCreated notifies the invoice's tenant.
func (n *Notifier) InvoiceCreated(invoice models.Invoice) {
	n.notify(
		invoice.TenantID,
		models.NotificationPaymentDue,
		"New invoice",
		fmt.Sprintf("You have a new invoice of $%.2f due on %s", invoice.Amount, invoice.DueDate.Format("2006-01-02")),
		"invoice",
		invoice.ID,
	)
}

// InvoiceStatusChanged notifies the invoice's tenant of the new status.
func (n *Notifier) InvoiceStatusChanged(invoice models.Invoice) {
	n.notify(
		invoice.TenantID,
		models.NotificationPaymentDue,
		"Invoice status updated",
		fmt.Sprintf("Your invoice #%d status is now: %s", invoice.ID, invoice.Status.Label()),
		"invoice",
		invoice.ID,
	)
}

// PaymentRecorded fires exactly one side of the payment fan-out: a payment
// made by the tenant notifies the property's manager and owner, a payment
// recorded by staff notifies the tenant. Never both.
func (n *Notifier) PaymentRecorded(payment models.Payment, invoice models.Invoice, actorIsTenant bool) {
	if actorIsTenant {
		message := fmt.Sprintf("Payment of $%.2f received for invoice #%d", payment.Amount, invoice.ID)
		if invoice.Property.PropertyManagerID != nil {
			n.notify(*invoice.Property.PropertyManagerID, models.NotificationPaymentReceived, "Payment received", message, "payment", payment.ID)
		}
		n.notify(invoice.Property.OwnerID, models.NotificationPaymentReceived, "Payment received", message, "payment", payment.ID)
		return
	}

	n.notify(
		invoice.TenantID,
		models.NotificationPaymentReceived,
		"Payment recorded",
		fmt.Sprintf("Payment of $%.2f has been recorded for invoice #%d", payment.Amount, invoice.ID),
		"payment",
		payment.ID,
	)
}
