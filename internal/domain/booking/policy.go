package booking

import (
	"github.com/wiissal/take-a-chef/internal/domain/identity"
	"github.com/wiissal/take-a-chef/internal/models"
)

// Party is the caller resolved to the profile matching its role.
// ProfileID is zero when the caller has no profile.
type Party struct {
	Identity  identity.Identity
	ProfileID uint
}

// CanCreate: only customers book chefs.
func CanCreate(id identity.Identity) bool {
	return id.IsCustomer()
}

// CanAssignStatus: only chefs drive the status of their bookings.
func CanAssignStatus(id identity.Identity) bool {
	return id.IsChef()
}

// IsOwner reports whether p is the booking's customer or its chef.
func IsOwner(p Party, b *models.Booking) bool {
	if p.ProfileID == 0 {
		return false
	}
	switch p.Identity.Role {
	case identity.RoleCustomer:
		return b.CustomerID == p.ProfileID
	case identity.RoleChef:
		return b.ChefID == p.ProfileID
	default:
		return false
	}
}
