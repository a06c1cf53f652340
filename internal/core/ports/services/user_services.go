package services

import (
	"context"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/SscSPs/teamops_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// ListUsers retrieves users matching the filter. ADMIN only.
	ListUsers(ctx context.Context, actor domain.Principal, filter domain.UserFilter) ([]domain.User, error)

	// GetUserByID retrieves a user. ADMIN or self.
	GetUserByID(ctx context.Context, actor domain.Principal, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user. ADMIN only.
	CreateUser(ctx context.Context, actor domain.Principal, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user. ADMIN or self; role and status are only applied for ADMIN.
	UpdateUser(ctx context.Context, actor domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// ChangePassword replaces a user's password. Self must prove the current password.
	ChangePassword(ctx context.Context, actor domain.Principal, userID string, req dto.ChangePasswordRequest) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes a user and everything cascading from it. ADMIN only.
	DeleteUser(ctx context.Context, actor domain.Principal, userID string) error

	// ToggleUserStatus flips a user's active flag. ADMIN only.
	ToggleUserStatus(ctx context.Context, actor domain.Principal, userID string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
