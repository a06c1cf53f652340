package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/SscSPs/teamops_backend/internal/middleware"
	"github.com/SscSPs/teamops_backend/internal/platform/config"
	"github.com/SscSPs/teamops_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration, login and token refresh.
type authHandler struct {
	authService   portssvc.AuthSvcFacade
	cookieName    string
	cookiePath    string
	secureCookie  bool
	posthogClient *utils.PosthogClientWrapper
}

func newAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config, posthogClient *utils.PosthogClientWrapper) *authHandler {
	return &authHandler{
		authService:   as,
		cookieName:    cfg.RefreshTokenCookieName,
		cookiePath:    cfg.RefreshTokenCookiePath,
		secureCookie:  cfg.IsProduction,
		posthogClient: posthogClient,
	}
}

// registerAuthRoutes sets up the routes for authentication. Login is rate limited per client IP.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, authService portssvc.AuthSvcFacade, deps RouteDeps) {
	h := newAuthHandler(authService, cfg, deps.Posthog)

	auth := rg.Group("/auth")
	{
		login := []gin.HandlerFunc{h.login}
		if deps.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{middleware.RateLimit(deps.LoginLimiter)}, login...)
		}
		auth.POST("/login", login...)
		auth.POST("/register", h.register)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
		auth.GET("/me", middleware.AuthMiddleware(authService), h.me)
	}
}

// setRefreshCookie stores the refresh token in an httpOnly cookie scoped to the auth routes.
func (h *authHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieName, token, maxAge, h.cookiePath, "", h.secureCookie, true)
}

func (h *authHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieName, "", -1, h.cookiePath, "", h.secureCookie, true)
}

// register godoc
// @Summary Register a new account
// @Description Creates an EMPLOYEE account and signs it in. The refresh token is set as an httpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.SuccessResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, pair, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshTokenExpiresAt)
	middleware.PosthogEvent(c, h.posthogClient, user.UserID, "user_registered", nil)
	c.JSON(http.StatusCreated, dto.NewSuccessResponse("User registered successfully", dto.AuthResponse{
		User:        dto.ToUserResponse(user),
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessTokenExpiresAt,
	}))
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token. The refresh token is set as an httpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.SuccessResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse "Too many attempts"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("user_id", user.UserID))
	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshTokenExpiresAt)
	middleware.PosthogEvent(c, h.posthogClient, user.UserID, "user_logged_in", map[string]any{"role": string(user.Role)})
	c.JSON(http.StatusOK, dto.NewSuccessResponse("Login successful", dto.AuthResponse{
		User:        dto.ToUserResponse(user),
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessTokenExpiresAt,
	}))
}

// refresh godoc
// @Summary Refresh the access token
// @Description Exchanges a refresh token, taken from the body or the refresh cookie, for a new access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token"
// @Success 200 {object} dto.SuccessResponse{data=dto.RefreshTokenResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(h.cookieName)
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.CodeUnauthorized, "Refresh token required"))
		return
	}

	accessToken, expiresAt, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, "Token refresh failed")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Token refreshed successfully", dto.RefreshTokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}))
}

// logout godoc
// @Summary Logout
// @Description Clears the refresh token cookie. Issued access tokens stay valid until they expire.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, dto.NewSuccessResponse("Logout successful", nil))
}

// me godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=object{user=dto.UserResponse}}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err, "Profile not found")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Profile retrieved successfully", gin.H{"user": dto.ToUserResponse(user)}))
}
