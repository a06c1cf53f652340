package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/authz"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/SscSPs/teamops_backend/internal/utils"
	"github.com/google/uuid"
)

// userService implements UserSvcFacade.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	hasher   portssvc.PasswordHasher
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, hasher portssvc.PasswordHasher) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, hasher: hasher}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) ListUsers(ctx context.Context, actor domain.Principal, filter domain.UserFilter) ([]domain.User, error) {
	if err := authz.CanListUsers(actor); err != nil {
		s.LogWarn(ctx, err, "User listing denied")
		return nil, err
	}

	users, err := s.userRepo.FindUsers(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userService) GetUserByID(ctx context.Context, actor domain.Principal, userID string) (*domain.User, error) {
	if err := authz.CanReadUser(actor, userID); err != nil {
		s.LogWarn(ctx, err, "User read denied", slog.String("target_user_id", userID))
		return nil, err
	}
	return s.findUser(ctx, userID)
}

func (s *userService) CreateUser(ctx context.Context, actor domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := authz.CanAdministerUsers(actor); err != nil {
		s.LogWarn(ctx, err, "User creation denied")
		return nil, err
	}

	email := domain.NormalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleEmployee
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := authz.CanUpdateUser(actor, userID); err != nil {
		s.LogWarn(ctx, err, "User update denied", slog.String("target_user_id", userID))
		return nil, err
	}

	existing, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch := authz.StripProtectedUserFields(actor, userPatchFrom(req))

	if patch.Email.Set && patch.Email.Value != existing.Email {
		if err := s.ensureEmailFree(ctx, patch.Email.Value, userID); err != nil {
			return nil, err
		}
	}

	if patch.Empty() {
		return existing, nil
	}

	updated, err := s.userRepo.UpdateUser(ctx, userID, patch, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return updated, nil
}

func (s *userService) ChangePassword(ctx context.Context, actor domain.Principal, userID string, req dto.ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}
	requireCurrent, err := authz.CanChangePassword(actor, userID)
	if err != nil {
		s.LogWarn(ctx, err, "Password change denied", slog.String("target_user_id", userID))
		return err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if requireCurrent && !s.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
		return apperrors.NewValidationFailedError("Current password is incorrect",
			apperrors.FieldError{Field: "currentPassword", Message: "is incorrect"})
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash new password")
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, actor domain.Principal, userID string) error {
	if err := authz.CanAdministerUsers(actor); err != nil {
		s.LogWarn(ctx, err, "User deletion denied", slog.String("target_user_id", userID))
		return err
	}

	if _, err := s.findUser(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

func (s *userService) ToggleUserStatus(ctx context.Context, actor domain.Principal, userID string) (*domain.User, error) {
	if err := authz.CanAdministerUsers(actor); err != nil {
		s.LogWarn(ctx, err, "User status toggle denied", slog.String("target_user_id", userID))
		return nil, err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdateUser(ctx, userID, domain.UserPatch{IsActive: domain.SetTo(!user.IsActive)}, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to toggle user status", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User status toggled", slog.String("user_id", userID), slog.Bool("is_active", updated.IsActive))
	return updated, nil
}

func (s *userService) findUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		s.LogError(ctx, err, "Failed to load user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

// ensureEmailFree fails with Conflict when email belongs to a user other than exceptUserID.
func (s *userService) ensureEmailFree(ctx context.Context, email, exceptUserID string) error {
	other, err := s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil && other.UserID != exceptUserID:
		return apperrors.NewConflictError("User with this email already exists")
	case err == nil, errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		s.LogError(ctx, err, "Failed to check email uniqueness")
		return err
	}
}

func userPatchFrom(req dto.UpdateUserRequest) domain.UserPatch {
	var patch domain.UserPatch
	if req.Email != nil {
		patch.Email = domain.SetTo(domain.NormalizeEmail(*req.Email))
	}
	if req.FirstName != nil {
		patch.FirstName = domain.SetTo(*req.FirstName)
	}
	if req.LastName != nil {
		patch.LastName = domain.SetTo(*req.LastName)
	}
	if req.Role != nil {
		patch.Role = domain.SetTo(*req.Role)
	}
	if req.IsActive != nil {
		patch.IsActive = domain.SetTo(*req.IsActive)
	}
	return patch
}
