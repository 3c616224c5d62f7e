package service

import (
	"github.com/google/uuid"

	"hubtrack/internal/entity"
)

// Identity is the authenticated caller as established by the token
// middleware. It is the only input the access rules look at.
type Identity struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

func (i Identity) IsAdmin() bool {
	return i.Role == entity.UserRoleAdmin
}

// authorizeRecordAccess is the single ownership check applied to every
// read, update and delete of an individual record: admins see everything,
// everyone else only their own records.
func authorizeRecordAccess(caller Identity, ownerID uuid.UUID) error {
	if caller.IsAdmin() || caller.UserID == ownerID {
		return nil
	}
	return ErrForbidden
}

// scopeOwner resolves the owner a list/search/stats request runs against.
// A non-admin asking for another owner's scope is narrowed to their own
// scope rather than rejected. An unset requested owner means "mine".
func scopeOwner(caller Identity, requested uuid.UUID) uuid.UUID {
	if requested == uuid.Nil {
		return caller.UserID
	}
	if !caller.IsAdmin() && requested != caller.UserID {
		return caller.UserID
	}
	return requested
}
