package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/SscSPs/teamops_backend/internal/middleware"
	"github.com/SscSPs/teamops_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// statusOf maps an application error kind onto an HTTP status and error code.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, dto.CodeValidation
	case errors.Is(err, apperrors.ErrInvalidReference):
		return http.StatusBadRequest, dto.CodeInvalidReference
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.CodeUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, dto.CodeForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, dto.CodeNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.CodeConflict
	}
	return http.StatusInternalServerError, dto.CodeInternal
}

// respondError writes the error envelope for err. fallback is the message used when err carries
// no caller-facing message of its own, and always for internal errors.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, code := statusOf(err)

	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, dto.NewErrorResponse(code, fallback))
		return
	}

	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, dto.NewErrorResponse(code, apperrors.MessageOf(err, fallback), apperrors.DetailsOf(err)...))
}

// respondBindError reports a request body or query that could not be bound.
func respondBindError(c *gin.Context, err error) {
	respondError(c, utils.NewValidationError(err), "Invalid request")
}

// principalOf returns the authenticated caller. The auth middleware guarantees it on protected
// routes; a missing principal is answered with 401.
func principalOf(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.GetPrincipalFromContext(c)
	if !ok || p.UserID == "" {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.CodeUnauthorized, "Access token required"))
		return domain.Principal{}, false
	}
	return p, true
}
