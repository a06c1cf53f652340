package authz

import (
	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
)

// CanListUsers allows ADMIN only.
func CanListUsers(p domain.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return deny("only administrators can list users")
}

// CanReadUser allows ADMIN or the user themselves.
func CanReadUser(p domain.Principal, targetUserID string) error {
	if p.IsAdmin() || isSelf(p, targetUserID) {
		return nil
	}
	return deny("users can only view their own profile")
}

// CanAdministerUsers covers create, delete, role and status changes.
func CanAdministerUsers(p domain.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return deny("only administrators can manage users")
}

// CanUpdateUser allows ADMIN or the user themselves. Callers must also apply
// StripProtectedUserFields before writing.
func CanUpdateUser(p domain.Principal, targetUserID string) error {
	if p.IsAdmin() || isSelf(p, targetUserID) {
		return nil
	}
	return deny("users can only update their own profile")
}

// StripProtectedUserFields removes role and status changes from a patch submitted
// by a non-admin. This is a silent downgrade, never an error.
func StripProtectedUserFields(p domain.Principal, patch domain.UserPatch) domain.UserPatch {
	if p.IsAdmin() {
		return patch
	}
	patch.Role = domain.Field[domain.UserRole]{}
	patch.IsActive = domain.Field[bool]{}
	return patch
}

// CanChangePassword allows ADMIN or self. The returned flag reports whether the
// current password has to be verified first (it does for everybody but ADMIN).
func CanChangePassword(p domain.Principal, targetUserID string) (requireCurrent bool, err error) {
	if p.IsAdmin() {
		return false, nil
	}
	if isSelf(p, targetUserID) {
		return true, nil
	}
	return false, deny("users can only change their own password")
}

func isSelf(p domain.Principal, userID string) bool {
	return p.UserID != "" && p.UserID == userID
}

func deny(msg string) error {
	return apperrors.NewForbiddenError(msg)
}
