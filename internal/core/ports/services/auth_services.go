package services

import (
	"context"
	"time"

	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/SscSPs/teamops_backend/internal/utils"
)

// PasswordHasher is the credential boundary. Plaintext passwords never leave it hashed any other way.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenSvcFacade issues and verifies signed, stateless identity tokens.
type TokenSvcFacade interface {
	// IssueAccessToken creates a short-lived access token for the principal.
	IssueAccessToken(ctx context.Context, principal domain.Principal) (string, time.Time, error)
	// IssueRefreshToken creates a long-lived refresh token for the principal.
	IssueRefreshToken(ctx context.Context, principal domain.Principal) (string, time.Time, error)
	// Verify checks signature, expiry and kind. Any failure is apperrors.ErrInvalidToken.
	Verify(ctx context.Context, token string, kind utils.TokenKind) (*domain.Principal, error)
}

// AuthSvcFacade covers registration, login and token flows.
type AuthSvcFacade interface {
	// Register creates an EMPLOYEE account and signs it in.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *dto.TokenPair, error)
	// Login verifies credentials of an active user.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *dto.TokenPair, error)
	// Refresh exchanges a refresh token of a still active user for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, time.Time, error)
	// Authenticate resolves an access token into a principal, re-checking that the user is active.
	Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error)
	// Profile returns the caller's own user record.
	Profile(ctx context.Context, principal domain.Principal) (*domain.User, error)
}
