package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by normalized email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves users matching the filter, newest first.
	FindUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. A duplicate email yields apperrors.ErrConflict.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser applies the set fields of patch and returns the updated user.
	UpdateUser(ctx context.Context, userID string, patch domain.UserPatch, now time.Time) (*domain.User, error)

	// UpdatePasswordHash replaces a user's password hash.
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, now time.Time) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// DeleteUser removes a user. Owned and assigned records are removed by cascade.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
