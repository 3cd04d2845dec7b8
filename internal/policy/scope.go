package policy

import (
	"github.com/rentalhub/rentalhub-api/internal/models"
	"gorm.io/gorm"
)

// List scopes silently narrow queries to the rows the requester may see.
// An out-of-scope filter simply produces an empty result, never an error.

// PropertyScope narrows a property query by role. Tenants see available
// properties plus the ones they actively rent.
func PropertyScope(user models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case IsTenant(user):
			return db.Where(
				"properties.status = ? OR EXISTS (SELECT 1 FROM leases WHERE leases.property_id = properties.id AND leases.tenant_id = ? AND leases.is_active = ?)",
				models.PropertyAvailable, user.ID, true,
			)
		case IsPropertyManager(user):
			return db.Where("properties.property_manager_id = ?", user.ID)
		case IsLandlord(user):
			return db.Where("properties.owner_id = ?", user.ID)
		}
		return db // admin
	}
}

// LeaseScope narrows a lease query by role.
func LeaseScope(user models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case IsTenant(user):
			return db.Where("leases.tenant_id = ?", user.ID)
		case IsPropertyManager(user):
			return db.Where("EXISTS (SELECT 1 FROM properties WHERE properties.id = leases.property_id AND properties.property_manager_id = ?)", user.ID)
		case IsLandlord(user):
			return db.Where("EXISTS (SELECT 1 FROM properties WHERE properties.id = leases.property_id AND properties.owner_id = ?)", user.ID)
		}
		return db
	}
}

// MaintenanceScope narrows a maintenance-request query by role. Property
// managers additionally see requests assigned to them.
func MaintenanceScope(user models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case IsTenant(user):
			return db.Where("maintenance_requests.tenant_id = ?", user.ID)
		case IsPropertyManager(user):
			return db.Where(
				"EXISTS (SELECT 1 FROM properties WHERE properties.id = maintenance_requests.property_id AND properties.property_manager_id = ?) OR maintenance_requests.assigned_to_id = ?",
				user.ID, user.ID,
			)
		case IsLandlord(user):
			return db.Where("EXISTS (SELECT 1 FROM properties WHERE properties.id = maintenance_requests.property_id AND properties.owner_id = ?)", user.ID)
		}
		return db
	}
}

// InvoiceScope narrows an invoice query by role.
func InvoiceScope(user models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case IsTenant(user):
			return db.Where("invoices.tenant_id = ?", user.ID)
		case IsPropertyManager(user):
			return db.Where("EXISTS (SELECT 1 FROM properties WHERE properties.id = invoices.property_id AND properties.property_manager_id = ?)", user.ID)
		case IsLandlord(user):
			return db.Where("EXISTS (SELECT 1 FROM properties WHERE properties.id = invoices.property_id AND properties.owner_id = ?)", user.ID)
		}
		return db
	}
}

// PaymentScope narrows a payment query by role via the owning invoice.
func PaymentScope(user models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case IsTenant(user):
			return db.Where("EXISTS (SELECT 1 FROM invoices WHERE invoices.id = payments.invoice_id AND invoices.tenant_id = ?)", user.ID)
		case IsPropertyManager(user):
			return db.Where("EXISTS (SELECT 1 FROM invoices JOIN properties ON properties.id = invoices.property_id WHERE invoices.id = payments.invoice_id AND properties.property_manager_id = ?)", user.ID)
		case IsLandlord(user):
			return db.Where("EXISTS (SELECT 1 FROM invoices JOIN properties ON properties.id = invoices.property_id WHERE invoices.id = payments.invoice_id AND properties.owner_id = ?)", user.ID)
		}
		return db
	}
}
