package service

import (
	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/model"
)

// CanAccess is the resource-ownership capability check used identically by
// every resource: admins pass unconditionally, everyone else must own the
// record.
func CanAccess(caller *model.User, ownerID uuid.UUID) bool {
	if caller == nil {
		return false
	}
	return caller.Role == model.RoleAdmin || caller.ID == ownerID
}
