package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentalhub/rentalhub-api/internal/database"
	"github.com/rentalhub/rentalhub-api/internal/middleware"
	"github.com/rentalhub/rentalhub-api/internal/models"
	"github.com/rentalhub/rentalhub-api/internal/repository"
	"github.com/rentalhub/rentalhub-api/internal/services"
	"github.com/rentalhub/rentalhub-api/internal/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db    *gorm.DB
	store storage.BlobStore
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyDocument{},
		&models.Lease{},
		&models.MaintenanceRequest{},
		&models.MaintenanceComment{},
		&models.MaintenanceImage{},
		&models.Invoice{},
		&models.Payment{},
		&models.Notification{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	store, err := storage.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{db: db, store: store}
}

func (e testEnv) createUser(t *testing.T, username string, role models.Role) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     username,
		Role:         role,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e testEnv) createProperty(t *testing.T, owner models.User, manager *models.User) models.Property {
	t.Helper()

	property := models.Property{
		Name:          "Maple Court",
		Address:       "12 Maple St",
		City:          "Springfield",
		State:         "IL",
		ZipCode:       "62704",
		Country:       "United States",
		Category:      models.CategoryResidential,
		Status:        models.PropertyAvailable,
		Bedrooms:      2,
		Bathrooms:     1,
		SquareFeet:    900,
		MonthlyRent:   1200,
		DepositAmount: 1200,
		OwnerID:       owner.ID,
	}
	if manager != nil {
		property.PropertyManagerID = &manager.ID
	}
	require.NoError(t, e.db.Create(&property).Error)
	return property
}

func (e testEnv) createLease(t *testing.T, property models.Property, tenant models.User, active bool) models.Lease {
	t.Helper()

	lease := models.Lease{
		PropertyID:    property.ID,
		TenantID:      tenant.ID,
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		RentAmount:    1200,
		DepositAmount: 1200,
		IsActive:      active,
	}
	require.NoError(t, e.db.Create(&lease).Error)
	return lease
}

func (e testEnv) createInvoice(t *testing.T, lease models.Lease, amount float64) models.Invoice {
	t.Helper()

	invoice := models.Invoice{
		TenantID:    lease.TenantID,
		PropertyID:  lease.PropertyID,
		LeaseID:     lease.ID,
		Amount:      amount,
		Description: "Monthly rent",
		DueDate:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:      models.InvoicePending,
	}
	require.NoError(t, e.db.Create(&invoice).Error)
	return invoice
}

func (e testEnv) notificationsFor(t *testing.T, userID uint64) []models.Notification {
	t.Helper()

	var notifications []models.Notification
	require.NoError(t, e.db.Where("user_id = ?", userID).Find(&notifications).Error)
	return notifications
}

func (e testEnv) notifier() *services.Notifier {
	return services.NewNotifier()
}

func (e testEnv) paymentRepo() repository.PaymentRepository {
	return repository.NewPaymentRepository(e.db)
}

// asUser wraps a handler so requests run with the given user already
// authenticated.
func asUser(user models.User, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCurrentUser(c, user)
		handler(c)
	}
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
