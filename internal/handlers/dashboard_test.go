package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentalhub/rentalhub-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestTodayIsUTCDateRegardlessOfServerZone(t *testing.T) {
	origLocal := time.Local
	t.Cleanup(func() { time.Local = origLocal })

	// Pin the process zone to one whose local calendar date differs from
	// UTC's right now. Stored dates are UTC midnight, so day arithmetic
	// must not pick up the server's zone.
	utcNow := time.Now().UTC()
	offset := 13 * 60 * 60
	if utcNow.Hour() < 12 {
		offset = -offset
	}
	time.Local = time.FixedZone("FAR", offset)

	want := time.Date(utcNow.Year(), utcNow.Month(), utcNow.Day(), 0, 0, 0, 0, time.UTC)
	require.Equal(t, want, today())
}

func TestDashboardHandler_LandlordSummary(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewDashboardHandler()
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	other := env.createUser(t, "other", models.RoleLandlord)
	tenant := env.createUser(t, "tenant", models.RoleTenant)

	rented := env.createProperty(t, landlord, nil)
	rented.Status = models.PropertyRented
	require.NoError(t, env.db.Save(&rented).Error)
	env.createProperty(t, landlord, nil)
	env.createProperty(t, landlord, nil)

	// Another landlord's portfolio never leaks in.
	env.createProperty(t, other, nil)

	lease := env.createLease(t, rented, tenant, true)
	env.createInvoice(t, lease, 1200)

	r := gin.New()
	r.GET("/dashboard/landlord-summary/", asUser(landlord, handler.LandlordSummary))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/landlord-summary/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Properties struct {
			Total         int64   `json:"total"`
			Occupied      int64   `json:"occupied"`
			Available     int64   `json:"available"`
			OccupancyRate float64 `json:"occupancy_rate"`
		} `json:"properties_summary"`
		Financial struct {
			PendingInvoices int64 `json:"pending_invoices"`
			OverdueInvoices int64 `json:"overdue_invoices"`
		} `json:"financial_summary"`
		RecentLeases []map[string]any `json:"recent_leases"`
	}
	decodeBody(t, w, &response)

	require.Equal(t, int64(3), response.Properties.Total)
	require.Equal(t, int64(1), response.Properties.Occupied)
	require.Equal(t, int64(2), response.Properties.Available)
	require.Equal(t, 33.33, response.Properties.OccupancyRate)
	require.Equal(t, int64(1), response.Financial.PendingInvoices)
	require.Equal(t, int64(0), response.Financial.OverdueInvoices)
	require.Len(t, response.RecentLeases, 1)
}

func TestDashboardHandler_LandlordSummary_TenantForbidden(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewDashboardHandler()
	tenant := env.createUser(t, "tenant", models.RoleTenant)

	r := gin.New()
	r.GET("/dashboard/landlord-summary/", asUser(tenant, handler.LandlordSummary))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/landlord-summary/", nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestDashboardHandler_TenantSummary(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewDashboardHandler()
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	tenant := env.createUser(t, "tenant", models.RoleTenant)
	property := env.createProperty(t, landlord, nil)

	lease := models.Lease{
		PropertyID:    property.ID,
		TenantID:      tenant.ID,
		StartDate:     time.Now().UTC().AddDate(0, -1, 0),
		EndDate:       time.Now().UTC().AddDate(0, 0, 10),
		RentAmount:    1200,
		DepositAmount: 1200,
		IsActive:      true,
	}
	require.NoError(t, env.db.Create(&lease).Error)
	env.createInvoice(t, lease, 1200)

	r := gin.New()
	r.GET("/dashboard/tenant-summary/", asUser(tenant, handler.TenantSummary))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/tenant-summary/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Leases []struct {
			PropertyName  string `json:"property_name"`
			DaysRemaining int    `json:"days_remaining"`
		} `json:"leases"`
		Invoices []struct {
			Status       string `json:"status"`
			DaysUntilDue int    `json:"days_until_due"`
		} `json:"invoices"`
	}
	decodeBody(t, w, &response)

	require.Len(t, response.Leases, 1)
	require.Equal(t, "Maple Court", response.Leases[0].PropertyName)
	require.InDelta(t, 10, response.Leases[0].DaysRemaining, 1)
	require.Len(t, response.Invoices, 1)
	require.Equal(t, "PENDING", response.Invoices[0].Status)
}

func TestDashboardHandler_TenantSummary_StaffForbidden(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewDashboardHandler()
	landlord := env.createUser(t, "landlord", models.RoleLandlord)

	r := gin.New()
	r.GET("/dashboard/tenant-summary/", asUser(landlord, handler.TenantSummary))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/tenant-summary/", nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestDashboardHandler_PropertyManagerSummary(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewDashboardHandler()
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	manager := env.createUser(t, "manager", models.RolePropertyManager)
	tenant := env.createUser(t, "tenant", models.RoleTenant)

	managed := env.createProperty(t, landlord, &manager)
	env.createProperty(t, landlord, nil) // unmanaged, invisible

	// One lease expiring within 30 days, one well beyond.
	expiring := models.Lease{
		PropertyID:    managed.ID,
		TenantID:      tenant.ID,
		StartDate:     time.Now().UTC().AddDate(0, -6, 0),
		EndDate:       time.Now().UTC().AddDate(0, 0, 14),
		RentAmount:    1200,
		DepositAmount: 1200,
		IsActive:      true,
	}
	require.NoError(t, env.db.Create(&expiring).Error)
	farOut := models.Lease{
		PropertyID:    managed.ID,
		TenantID:      tenant.ID,
		StartDate:     time.Now().UTC(),
		EndDate:       time.Now().UTC().AddDate(1, 0, 0),
		RentAmount:    1200,
		DepositAmount: 1200,
		IsActive:      true,
	}
	require.NoError(t, env.db.Create(&farOut).Error)

	request := models.MaintenanceRequest{
		PropertyID:  managed.ID,
		Title:       "Fix door",
		Description: "hinge",
		Priority:    models.PriorityLow,
		Status:      models.MaintenancePending,
	}
	require.NoError(t, env.db.Create(&request).Error)

	r := gin.New()
	r.GET("/dashboard/property-manager-summary/", asUser(manager, handler.PropertyManagerSummary))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/property-manager-summary/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Properties struct {
			ManagedProperties int64 `json:"managed_properties"`
			ActiveLeases      int64 `json:"active_leases"`
			ExpiringLeases    int64 `json:"expiring_leases"`
		} `json:"properties_summary"`
		Maintenance struct {
			PendingRequests int64 `json:"pending_requests"`
		} `json:"maintenance_summary"`
		Recent []struct {
			TenantName string `json:"tenant_name"`
		} `json:"recent_maintenance_requests"`
	}
	decodeBody(t, w, &response)

	require.Equal(t, int64(1), response.Properties.ManagedProperties)
	require.Equal(t, int64(2), response.Properties.ActiveLeases)
	require.Equal(t, int64(1), response.Properties.ExpiringLeases)
	require.Equal(t, int64(1), response.Maintenance.PendingRequests)
	require.Len(t, response.Recent, 1)
	require.Equal(t, "N/A", response.Recent[0].TenantName)
}
