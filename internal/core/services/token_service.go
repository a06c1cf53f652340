package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/platform/config"
	"github.com/SscSPs/teamops_backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// tokenService implements the TokenSvcFacade with HS256 JWTs.
// Access and refresh tokens are signed with different secrets and carry their kind as a claim.
type tokenService struct {
	BaseService
	accessSecret  string
	accessExpiry  time.Duration
	refreshSecret string
	refreshExpiry time.Duration
	issuer        string
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		accessSecret:  cfg.JWTAccessSecret,
		accessExpiry:  cfg.JWTAccessExpiry,
		refreshSecret: cfg.JWTRefreshSecret,
		refreshExpiry: cfg.JWTRefreshExpiry,
		issuer:        cfg.JWTIssuer,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// IssueAccessToken creates a new JWT access token for the given principal.
func (s *tokenService) IssueAccessToken(ctx context.Context, p domain.Principal) (string, time.Time, error) {
	return s.issue(ctx, p, utils.AccessToken)
}

// IssueRefreshToken creates a new JWT refresh token for the given principal.
func (s *tokenService) IssueRefreshToken(ctx context.Context, p domain.Principal) (string, time.Time, error) {
	return s.issue(ctx, p, utils.RefreshToken)
}

func (s *tokenService) issue(ctx context.Context, p domain.Principal, kind utils.TokenKind) (string, time.Time, error) {
	secret, expiry := s.keyFor(kind)
	token, expiresAt, err := utils.GenerateJWT(p.UserID, p.Email, string(p.Role), kind, secret, expiry, s.issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate token", slog.String("user_id", p.UserID), slog.String("kind", string(kind)))
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks the token against the secret of the expected kind.
func (s *tokenService) Verify(ctx context.Context, token string, kind utils.TokenKind) (*domain.Principal, error) {
	secret, _ := s.keyFor(kind)
	claims, err := utils.ParseAndValidateJWT(token, secret, kind)
	if err != nil {
		msg := "Invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "Token has expired"
		}
		s.LogDebug(ctx, "Token verification failed", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(apperrors.ErrInvalidToken, msg, err)
	}

	return &domain.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   domain.UserRole(claims.Role),
	}, nil
}

func (s *tokenService) keyFor(kind utils.TokenKind) (string, time.Duration) {
	if kind == utils.RefreshToken {
		return s.refreshSecret, s.refreshExpiry
	}
	return s.accessSecret, s.accessExpiry
}
