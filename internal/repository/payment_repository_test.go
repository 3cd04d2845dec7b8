package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rentalhub/rentalhub-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestRecordPayment_SettlesWhenCovered(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPaymentRepository(db)

	invoice := &models.Invoice{ID: 7, Amount: 1000, Status: models.InvoicePending}
	payment := &models.Payment{InvoiceID: 7, Amount: 600, PaymentMethod: models.MethodCash}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1000.0))
	mock.ExpectExec("UPDATE `invoices` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	settled, err := repo.RecordPayment(payment, invoice)
	require.NoError(t, err)
	require.True(t, settled)
	require.Equal(t, models.InvoicePaid, invoice.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPayment_PartialLeavesStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPaymentRepository(db)

	invoice := &models.Invoice{ID: 7, Amount: 1000, Status: models.InvoicePending}
	payment := &models.Payment{InvoiceID: 7, Amount: 400, PaymentMethod: models.MethodCash}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(400.0))
	mock.ExpectCommit()

	settled, err := repo.RecordPayment(payment, invoice)
	require.NoError(t, err)
	require.False(t, settled)
	require.Equal(t, models.InvoicePending, invoice.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPayment_NeverRevertsPaid(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPaymentRepository(db)

	// An already-settled invoice accepts further payments without another
	// status write.
	invoice := &models.Invoice{ID: 7, Amount: 1000, Status: models.InvoicePaid}
	payment := &models.Payment{InvoiceID: 7, Amount: 100, PaymentMethod: models.MethodCash}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1100.0))
	mock.ExpectCommit()

	settled, err := repo.RecordPayment(payment, invoice)
	require.NoError(t, err)
	require.False(t, settled)
	require.Equal(t, models.InvoicePaid, invoice.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPayment_InsertFailureRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPaymentRepository(db)

	invoice := &models.Invoice{ID: 7, Amount: 1000, Status: models.InvoicePending}
	payment := &models.Payment{InvoiceID: 7, Amount: 400, PaymentMethod: models.MethodCash}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnError(gorm.ErrInvalidData)
	mock.ExpectRollback()

	_, err := repo.RecordPayment(payment, invoice)
	require.Error(t, err)
	require.Equal(t, models.InvoicePending, invoice.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
