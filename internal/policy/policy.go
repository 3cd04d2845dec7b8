// Package policy holds the role predicates and per-entity authorization
// checks. Checks are pure functions over the requester and the already-loaded
// target entity; handlers resolve existence first, so a missing row is always
// reported as not-found before any scope decision is made.
package policy

import "github.com/rentalhub/rentalhub-api/internal/models"

// RoleOf returns the user's role.
func RoleOf(user models.User) models.Role {
	return user.Role
}

func IsAdmin(user models.User) bool {
	return user.Role == models.RoleAdmin
}

func IsLandlord(user models.User) bool {
	return user.Role == models.RoleLandlord
}

func IsPropertyManager(user models.User) bool {
	return user.Role == models.RolePropertyManager
}

func IsTenant(user models.User) bool {
	return user.Role == models.RoleTenant
}

func managesProperty(user models.User, property models.Property) bool {
	return property.PropertyManagerID != nil && *property.PropertyManagerID == user.ID
}

// CanViewProperty reports whether the user may read a single property.
// rentsProperty is whether the user holds an active lease on it.
func CanViewProperty(user models.User, property models.Property, rentsProperty bool) bool {
	switch {
	case IsTenant(user):
		return property.Status == models.PropertyAvailable || rentsProperty
	case IsPropertyManager(user):
		return managesProperty(user, property)
	case IsLandlord(user):
		return property.OwnerID == user.ID
	}
	return true // admin
}

// CanCreateProperty restricts property creation to admins and landlords.
func CanCreateProperty(user models.User) bool {
	return IsAdmin(user) || IsLandlord(user)
}

// CanManageProperty reports whether the user may mutate a property or attach
// files, leases, or invoices to it. Tenants never can.
func CanManageProperty(user models.User, property models.Property) bool {
	switch {
	case IsTenant(user):
		return false
	case IsPropertyManager(user):
		return managesProperty(user, property)
	case IsLandlord(user):
		return property.OwnerID == user.ID
	}
	return true
}

// CanReassignPropertyManager gates the explicit manager-reassignment branch of
// a property update.
func CanReassignPropertyManager(user models.User) bool {
	return IsLandlord(user)
}

// CanCreateLease restricts lease creation to staff roles.
func CanCreateLease(user models.User) bool {
	return IsAdmin(user) || IsLandlord(user) || IsPropertyManager(user)
}

// CanViewLease reports whether the user may read a lease. The lease's
// property must be preloaded.
func CanViewLease(user models.User, lease models.Lease) bool {
	switch {
	case IsTenant(user):
		return lease.TenantID == user.ID
	case IsPropertyManager(user):
		return managesProperty(user, lease.Property)
	case IsLandlord(user):
		return lease.Property.OwnerID == user.ID
	}
	return true
}

// CanManageLease reports whether the user may mutate a lease.
func CanManageLease(user models.User, lease models.Lease) bool {
	if IsTenant(user) {
		return false
	}
	return CanViewLease(user, lease)
}

// CanReassignLeaseTenant gates the tenant-reassignment branch of a lease
// update.
func CanReassignLeaseTenant(user models.User) bool {
	return IsAdmin(user) || IsLandlord(user)
}

// CanAccessMaintenance reports whether the user may read, update, comment on,
// or attach images to a maintenance request. Property managers keep access to
// requests assigned to them even outside their managed-property scope.
func CanAccessMaintenance(user models.User, request models.MaintenanceRequest) bool {
	switch {
	case IsTenant(user):
		return request.TenantID != nil && *request.TenantID == user.ID
	case IsPropertyManager(user):
		if managesProperty(user, request.Property) {
			return true
		}
		return request.AssignedToID != nil && *request.AssignedToID == user.ID
	case IsLandlord(user):
		return request.Property.OwnerID == user.ID
	}
	return true
}

// CanViewInvoice reports whether the user may read an invoice.
func CanViewInvoice(user models.User, invoice models.Invoice) bool {
	switch {
	case IsTenant(user):
		return invoice.TenantID == user.ID
	case IsPropertyManager(user):
		return managesProperty(user, invoice.Property)
	case IsLandlord(user):
		return invoice.Property.OwnerID == user.ID
	}
	return true
}

// CanManageInvoice reports whether the user may mutate an invoice.
func CanManageInvoice(user models.User, invoice models.Invoice) bool {
	if IsTenant(user) {
		return false
	}
	return CanViewInvoice(user, invoice)
}

// CanPayInvoice reports whether the user may record a payment against an
// invoice: the invoice's tenant pays it, staff in property scope record it.
func CanPayInvoice(user models.User, invoice models.Invoice) bool {
	return CanViewInvoice(user, invoice)
}
