package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentalhub/rentalhub-api/internal/dto"
	"github.com/rentalhub/rentalhub-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestLeaseHandler_Create_MarksPropertyRented(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewLeaseHandler(env.store)
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	tenant := env.createUser(t, "tenant", models.RoleTenant)
	property := env.createProperty(t, landlord, nil)

	r := gin.New()
	r.POST("/leases/", asUser(landlord, handler.CreateLease))

	payload := map[string]any{
		"property_id":    property.ID,
		"tenant_id":      tenant.ID,
		"start_date":     "2026-01-01",
		"end_date":       "2026-12-31",
		"rent_amount":    1200,
		"deposit_amount": 1200,
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/leases/", payload))

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.LeaseResponse
	decodeBody(t, w, &response)
	require.True(t, response.IsActive)
	require.Equal(t, "Maple Court", response.PropertyName)
	require.Equal(t, "Test tenant", response.TenantName)

	var stored models.Property
	require.NoError(t, env.db.First(&stored, property.ID).Error)
	require.Equal(t, models.PropertyRented, stored.Status)
}

func TestLeaseHandler_Create_InactiveLeavesStatusAlone(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewLeaseHandler(env.store)
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	tenant := env.createUser(t, "tenant", models.RoleTenant)
	property := env.createProperty(t, landlord, nil)

	r := gin.New()
	r.POST("/leases/", asUser(landlord, handler.CreateLease))

	payload := map[string]any{
		"property_id":    property.ID,
		"tenant_id":      tenant.ID,
		"start_date":     "2026-01-01",
		"end_date":       "2026-12-31",
		"rent_amount":    1200,
		"deposit_amount": 1200,
		"is_active":      false,
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/leases/", payload))

	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Property
	require.NoError(t, env.db.First(&stored, property.ID).Error)
	require.Equal(t, models.PropertyAvailable, stored.Status)
}

func TestLeaseHandler_Create_TenantRoleRequired(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewLeaseHandler(env.store)
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	notATenant := env.createUser(t, "manager", models.RolePropertyManager)
	property := env.createProperty(t, landlord, nil)

	r := gin.New()
	r.POST("/leases/", asUser(landlord, handler.CreateLease))

	payload := map[string]any{
		"property_id":    property.ID,
		"tenant_id":      notATenant.ID,
		"start_date":     "2026-01-01",
		"end_date":       "2026-12-31",
		"rent_amount":    1200,
		"deposit_amount": 1200,
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/leases/", payload))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Tenant not found")
}

func TestLeaseHandler_Create_TenantForbidden(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewLeaseHandler(env.store)
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	tenant := env.createUser(t, "tenant", models.RoleTenant)
	property := env.createProperty(t, landlord, nil)

	r := gin.New()
	r.POST("/leases/", asUser(tenant, handler.CreateLease))

	payload := map[string]any{
		"property_id":    property.ID,
		"tenant_id":      tenant.ID,
		"start_date":     "2026-01-01",
		"end_date":       "2026-12-31",
		"rent_amount":    1200,
		"deposit_amount": 1200,
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/leases/", payload))

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestLeaseHandler_Update_DeactivateReleasesProperty(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewLeaseHandler(env.store)
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	tenant := env.createUser(t, "tenant", models.RoleTenant)
	property := env.createProperty(t, landlord, nil)
	lease := env.createLease(t, property, tenant, true)

	require.NoError(t, env.db.Model(&models.Property{}).
		Where("id = ?", property.ID).
		Update("status", models.PropertyRented).Error)

	r := gin.New()
	r.PUT("/leases/:id/", asUser(landlord, handler.UpdateLease))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPut, "/leases/"+itoa(lease.ID)+"/",
		map[string]any{"is_active": false}))

	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Property
	require.NoError(t, env.db.First(&stored, property.ID).Error)
	require.Equal(t, models.PropertyAvailable, stored.Status)
}

func TestLeaseHandler_Update_OtherActiveLeaseKeepsRented(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewLeaseHandler(env.store)
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	tenant := env.createUser(t, "tenant", models.RoleTenant)
	tenant2 := env.createUser(t, "tenant2", models.RoleTenant)
	property := env.createProperty(t, landlord, nil)
	lease := env.createLease(t, property, tenant, true)
	env.createLease(t, property, tenant2, true)

	require.NoError(t, env.db.Model(&models.Property{}).
		Where("id = ?", property.ID).
		Update("status", models.PropertyRented).Error)

	r := gin.New()
	r.PUT("/leases/:id/", asUser(landlord, handler.UpdateLease))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPut, "/leases/"+itoa(lease.ID)+"/",
		map[string]any{"is_active": false}))

	require.Equal(t, http.StatusOK, w.Code)

	// The second active lease still holds the property rented.
	var stored models.Property
	require.NoError(t, env.db.First(&stored, property.ID).Error)
	require.Equal(t, models.PropertyRented, stored.Status)
}

func TestLeaseHandler_Update_TenantReassignAdminOnly(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewLeaseHandler(env.store)
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	manager := env.createUser(t, "manager", models.RolePropertyManager)
	tenant := env.createUser(t, "tenant", models.RoleTenant)
	tenant2 := env.createUser(t, "tenant2", models.RoleTenant)
	property := env.createProperty(t, landlord, &manager)
	lease := env.createLease(t, property, tenant, true)

	// A property manager's tenant_id key is silently ignored.
	r := gin.New()
	r.PUT("/leases/:id/", asUser(manager, handler.UpdateLease))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPut, "/leases/"+itoa(lease.ID)+"/",
		map[string]any{"tenant_id": tenant2.ID}))
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Lease
	require.NoError(t, env.db.First(&stored, lease.ID).Error)
	require.Equal(t, tenant.ID, stored.TenantID)

	// A landlord's reassignment sticks.
	r = gin.New()
	r.PUT("/leases/:id/", asUser(landlord, handler.UpdateLease))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPut, "/leases/"+itoa(lease.ID)+"/",
		map[string]any{"tenant_id": tenant2.ID}))
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, env.db.First(&stored, lease.ID).Error)
	require.Equal(t, tenant2.ID, stored.TenantID)
}

func TestLeaseHandler_List_TenantSeesOnlyOwn(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewLeaseHandler(env.store)
	landlord := env.createUser(t, "landlord", models.RoleLandlord)
	tenant := env.createUser(t, "tenant", models.RoleTenant)
	tenant2 := env.createUser(t, "tenant2", models.RoleTenant)
	property := env.createProperty(t, landlord, nil)
	mine := env.createLease(t, property, tenant, true)
	env.createLease(t, property, tenant2, true)

	r := gin.New()
	r.GET("/leases/", asUser(tenant, handler.ListLeases))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leases/", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var response []dto.LeaseResponse
	decodeBody(t, w, &response)
	require.Len(t, response, 1)
	require.Equal(t, mine.ID, response[0].ID)
}
