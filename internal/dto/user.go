package dto

import (
	"time"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
)

// CreateUserRequest defines the data an administrator supplies to create a user.
type CreateUserRequest struct {
	Email     string          `json:"email" binding:"required,email,max=255"`
	Password  string          `json:"password" binding:"required,min=8,max=72"`
	FirstName string          `json:"firstName" binding:"required,min=1,max=100"`
	LastName  string          `json:"lastName" binding:"required,min=1,max=100"`
	Role      domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate between omitted fields and zero-value fields.
// Role and IsActive are ignored unless the caller is an administrator.
type UpdateUserRequest struct {
	Email     *string          `json:"email" binding:"omitempty,email,max=255"`
	FirstName *string          `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName  *string          `json:"lastName" binding:"omitempty,min=1,max=100"`
	Role      *domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
	IsActive  *bool            `json:"isActive"`
}

// ChangePasswordRequest changes a password. CurrentPassword is required unless an administrator acts.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Role     string `form:"role" binding:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
	IsActive *bool  `form:"isActive"`
	Search   string `form:"search" binding:"max=100"`
	Limit    int    `form:"limit,default=100" binding:"min=1,max=500"`
	Offset   int    `form:"offset,default=0" binding:"min=0"`
}

// UserResponse is the public shape of a user. It never carries the password hash.
type UserResponse struct {
	UserID    string          `json:"id"`
	Email     string          `json:"email"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Role      domain.UserRole `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain.User.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}

// ToUserFilter converts query parameters into a domain filter.
func (p ListUsersParams) ToUserFilter() domain.UserFilter {
	f := domain.UserFilter{IsActive: p.IsActive, Search: p.Search, Limit: p.Limit, Offset: p.Offset}
	if p.Role != "" {
		role := domain.UserRole(p.Role)
		f.Role = &role
	}
	return f
}
