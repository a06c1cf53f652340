// Package authz decides whether a principal may act on a resource.
//
// Every function is pure: it takes the principal and the relationship context
// already loaded from the store and returns nil to allow or an error wrapping
// apperrors.ErrForbidden to deny. ADMIN bypasses every ownership and
// involvement rule; no other role overrides one.
package authz
