package domain

import "strings"

// UserRole is the application-wide role of a user.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleManager  UserRole = "MANAGER"
	RoleEmployee UserRole = "EMPLOYEE"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"id" db:"id"`
	Email        string   `json:"email" db:"email"`
	PasswordHash string   `json:"-" db:"password_hash"`
	FirstName    string   `json:"firstName" db:"first_name"`
	LastName     string   `json:"lastName" db:"last_name"`
	Role         UserRole `json:"role" db:"role"`
	IsActive     bool     `json:"isActive" db:"is_active"`
	Timestamps
}

// Summary returns the public projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{UserID: u.UserID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// NormalizeEmail lower-cases and trims an email address before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserFilter narrows a user listing.
type UserFilter struct {
	Role     *UserRole
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}

// UserPatch is a partial update of a user. Password changes go through their own operation.
type UserPatch struct {
	Email     Field[string]
	FirstName Field[string]
	LastName  Field[string]
	Role      Field[UserRole]
	IsActive  Field[bool]
}

// Empty reports whether the patch writes nothing.
func (p UserPatch) Empty() bool {
	return !p.Email.Set && !p.FirstName.Set && !p.LastName.Set && !p.Role.Set && !p.IsActive.Set
}
