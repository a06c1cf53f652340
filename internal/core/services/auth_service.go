package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/SscSPs/teamops_backend/internal/utils"
	"github.com/google/uuid"
)

const invalidCredentialsMsg = "Invalid email or password"

// authService implements AuthSvcFacade on top of the user store, the token service and the password hasher.
type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	tokens   portssvc.TokenSvcFacade
	hasher   portssvc.PasswordHasher
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, tokens portssvc.TokenSvcFacade, hasher portssvc.PasswordHasher) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, tokens: tokens, hasher: hasher}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *dto.TokenPair, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, err
	}

	email := domain.NormalizeEmail(req.Email)
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewConflictError("User with this email already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up email for registration")
		return nil, nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password for registration")
		return nil, nil, err
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         domain.RoleEmployee,
		IsActive:     true,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save registered user", slog.String("user_id", user.UserID))
		return nil, nil, err
	}

	pair, err := s.issuePair(ctx, &user)
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, pair, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *dto.TokenPair, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewUnauthorizedError(invalidCredentialsMsg)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, nil, err
	}

	if !user.IsActive {
		s.LogInfo(ctx, "Login attempt on deactivated account", slog.String("user_id", user.UserID))
		return nil, nil, apperrors.NewUnauthorizedError("Account is deactivated")
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, nil, apperrors.NewUnauthorizedError(invalidCredentialsMsg)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	if refreshToken == "" {
		return "", time.Time{}, apperrors.NewUnauthorizedError("Refresh token required")
	}

	claimed, err := s.tokens.Verify(ctx, refreshToken, utils.RefreshToken)
	if err != nil {
		return "", time.Time{}, apperrors.NewAppError(apperrors.ErrInvalidToken, "Invalid refresh token", err)
	}

	user, err := s.liveUser(ctx, claimed.UserID)
	if err != nil {
		return "", time.Time{}, err
	}

	// Role and email come from the store so a role change takes effect on the next refresh.
	return s.tokens.IssueAccessToken(ctx, principalOf(user))
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error) {
	claimed, err := s.tokens.Verify(ctx, accessToken, utils.AccessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.liveUser(ctx, claimed.UserID)
	if err != nil {
		return nil, err
	}

	p := principalOf(user)
	return &p, nil
}

func (s *authService) Profile(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		s.LogError(ctx, err, "Failed to load profile", slog.String("user_id", principal.UserID))
		return nil, err
	}
	return user, nil
}

// liveUser loads the user behind a verified token and rejects missing or deactivated accounts.
func (s *authService) liveUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("User not found or inactive")
		}
		s.LogError(ctx, err, "Failed to load user for token", slog.String("user_id", userID))
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("User not found or inactive")
	}
	return user, nil
}

func (s *authService) issuePair(ctx context.Context, user *domain.User) (*dto.TokenPair, error) {
	p := principalOf(user)
	access, accessExp, err := s.tokens.IssueAccessToken(ctx, p)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokens.IssueRefreshToken(ctx, p)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}

func principalOf(u *domain.User) domain.Principal {
	return domain.Principal{UserID: u.UserID, Email: u.Email, Role: u.Role}
}
