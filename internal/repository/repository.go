package repository

import "github.com/rentalhub/rentalhub-api/internal/models"

// PaymentRepository isolates the invoice settlement read-modify-write so it
// can run in one transaction and be tested at the SQL level.
type PaymentRepository interface {
	// RecordPayment inserts a payment, recomputes the invoice's paid total,
	// and marks the invoice paid when the total covers its amount. It reports
	// whether the invoice was settled by this payment.
	RecordPayment(payment *models.Payment, invoice *models.Invoice) (bool, error)

	// TotalPaid sums all payments recorded against an invoice.
	TotalPaid(invoiceID uint64) (float64, error)
}
