// Package policy decides what a (subject, role) pair may do. Every function
// is pure; callers turn a false result into a Forbidden error.
package policy

import (
	"station-booking/internal/domain/user"

	"github.com/google/uuid"
)

// CanListAll reports whether the role sees every booking rather than only its own.
func CanListAll(role user.Role) bool {
	return role == user.RoleAdmin
}

func CanCreateBooking(role user.Role) bool {
	return role.IsValid()
}

// CanCancel allows the owner of a booking or any admin.
func CanCancel(role user.Role, requesterID, ownerID uuid.UUID) bool {
	return role == user.RoleAdmin || (role.IsValid() && requesterID == ownerID)
}

func CanReadBooking(role user.Role, requesterID, ownerID uuid.UUID) bool {
	return CanCancel(role, requesterID, ownerID)
}

func CanMutateCatalog(role user.Role) bool {
	return role == user.RoleAdmin
}

func CanReadAnalytics(role user.Role) bool {
	return role == user.RoleAdmin
}

// CanManageUsers covers listing and deleting accounts.
func CanManageUsers(role user.Role) bool {
	return role == user.RoleAdmin
}

// CanEditUser allows a user to edit their own profile and an admin to edit any.
func CanEditUser(role user.Role, requesterID, targetID uuid.UUID) bool {
	return CanCancel(role, requesterID, targetID)
}
