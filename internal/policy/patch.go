package policy

import (
	"time"

	"github.com/rentalhub/rentalhub-api/internal/models"
)

// Partial updates are driven by an explicit per-role allow-list: a field
// applies only when its key is present in the payload with a usable value.
// Unknown keys and mistyped values are ignored without error; that is the
// API contract, not an accident, and it is covered by tests.

const dateLayout = "2006-01-02"

func getString(payload map[string]any, key string) (string, bool) {
	value, ok := payload[key]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

func getFloat(payload map[string]any, key string) (float64, bool) {
	value, ok := payload[key]
	if !ok {
		return 0, false
	}
	f, ok := value.(float64)
	return f, ok
}

func getInt(payload map[string]any, key string) (int, bool) {
	f, ok := getFloat(payload, key)
	return int(f), ok
}

func getBool(payload map[string]any, key string) (bool, bool) {
	value, ok := payload[key]
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

func getDate(payload map[string]any, key string) (time.Time, bool) {
	s, ok := getString(payload, key)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ApplyUserPatch applies the self-service profile allow-list. The password is
// handled separately by the caller because it needs hashing.
func ApplyUserPatch(user *models.User, payload map[string]any) {
	if v, ok := getString(payload, "first_name"); ok {
		user.FirstName = v
	}
	if v, ok := getString(payload, "last_name"); ok {
		user.LastName = v
	}
	if v, ok := getString(payload, "phone_number"); ok {
		user.PhoneNumber = v
	}
	if v, ok := getString(payload, "email"); ok {
		user.Email = v
	}
}

// ApplyPropertyPatch applies the staff allow-list for property updates. Owner
// and manager are deliberately absent; manager reassignment is a separate
// branch gated by CanReassignPropertyManager.
func ApplyPropertyPatch(property *models.Property, payload map[string]any) {
	if v, ok := getString(payload, "name"); ok {
		property.Name = v
	}
	if v, ok := getString(payload, "address"); ok {
		property.Address = v
	}
	if v, ok := getString(payload, "city"); ok {
		property.City = v
	}
	if v, ok := getString(payload, "state"); ok {
		property.State = v
	}
	if v, ok := getString(payload, "zip_code"); ok {
		property.ZipCode = v
	}
	if v, ok := getString(payload, "country"); ok {
		property.Country = v
	}
	if v, ok := getString(payload, "category"); ok {
		property.Category = models.PropertyCategory(v)
	}
	if v, ok := getString(payload, "status"); ok {
		property.Status = models.PropertyStatus(v)
	}
	if v, ok := getInt(payload, "bedrooms"); ok {
		property.Bedrooms = v
	}
	if v, ok := getInt(payload, "bathrooms"); ok {
		property.Bathrooms = v
	}
	if v, ok := getInt(payload, "square_feet"); ok {
		property.SquareFeet = v
	}
	if v, ok := getFloat(payload, "monthly_rent"); ok {
		property.MonthlyRent = v
	}
	if v, ok := getFloat(payload, "deposit_amount"); ok {
		property.DepositAmount = v
	}
	if v, ok := getString(payload, "description"); ok {
		property.Description = v
	}
	if v, ok := getString(payload, "amenities"); ok {
		property.Amenities = v
	}
}

// ApplyLeasePatch applies the staff allow-list for lease updates. Property
// and tenant links are excluded; tenant reassignment is a separate branch.
func ApplyLeasePatch(lease *models.Lease, payload map[string]any) {
	if v, ok := getDate(payload, "start_date"); ok {
		lease.StartDate = v
	}
	if v, ok := getDate(payload, "end_date"); ok {
		lease.EndDate = v
	}
	if v, ok := getFloat(payload, "rent_amount"); ok {
		lease.RentAmount = v
	}
	if v, ok := getFloat(payload, "deposit_amount"); ok {
		lease.DepositAmount = v
	}
	if v, ok := getBool(payload, "is_active"); ok {
		lease.IsActive = v
	}
}

// ApplyMaintenancePatch applies the maintenance-request allow-list for the
// requester's role. Tenants may only retitle and redescribe their own
// requests; staff also control priority, status, and costs. Assignment is a
// separate branch handled by the caller.
func ApplyMaintenancePatch(request *models.MaintenanceRequest, payload map[string]any, user models.User) {
	if v, ok := getString(payload, "title"); ok {
		request.Title = v
	}
	if v, ok := getString(payload, "description"); ok {
		request.Description = v
	}

	if IsTenant(user) {
		return
	}

	if v, ok := getString(payload, "priority"); ok {
		request.Priority = models.MaintenancePriority(v)
	}
	if v, ok := getString(payload, "status"); ok {
		request.Status = models.MaintenanceStatus(v)
	}
	if v, ok := getFloat(payload, "estimated_cost"); ok {
		request.EstimatedCost = &v
	}
	if v, ok := getFloat(payload, "actual_cost"); ok {
		request.ActualCost = &v
	}
}

// ApplyInvoicePatch applies the staff allow-list for invoice updates.
func ApplyInvoicePatch(invoice *models.Invoice, payload map[string]any) {
	if v, ok := getFloat(payload, "amount"); ok {
		invoice.Amount = v
	}
	if v, ok := getString(payload, "description"); ok {
		invoice.Description = v
	}
	if v, ok := getDate(payload, "due_date"); ok {
		invoice.DueDate = v
	}
	if v, ok := getString(payload, "status"); ok {
		invoice.Status = models.InvoiceStatus(v)
	}
}
