package repository

import (
	"github.com/rentalhub/rentalhub-api/internal/models"
	"gorm.io/gorm"
)

// GormPaymentRepository is a GORM implementation of PaymentRepository
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

// RecordPayment runs the settlement check atomically with the insert: the
// paid total is recomputed from storage inside the transaction, and the
// status flip is one-way: an invoice already marked paid stays paid.
func (r *GormPaymentRepository) RecordPayment(payment *models.Payment, invoice *models.Invoice) (bool, error) {
	settled := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		var totalPaid float64
		err := tx.Model(&models.Payment{}).
			Where("invoice_id = ?", invoice.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&totalPaid).Error
		if err != nil {
			return err
		}

		if totalPaid >= invoice.Amount && invoice.Status != models.InvoicePaid {
			if err := tx.Model(&models.Invoice{}).
				Where("id = ?", invoice.ID).
				Update("status", models.InvoicePaid).Error; err != nil {
				return err
			}
			invoice.Status = models.InvoicePaid
			settled = true
		}

		return nil
	})

	return settled, err
}

// TotalPaid sums all payments recorded against an invoice.
func (r *GormPaymentRepository) TotalPaid(invoiceID uint64) (float64, error) {
	var totalPaid float64
	err := r.db.Model(&models.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalPaid).Error
	return totalPaid, err
}
