package dto

import "github.com/SscSPs/teamops_backend/internal/apperrors"

// Error codes carried by ErrorResponse.Code.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
)

// SuccessResponse is the envelope of every successful response.
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every failed response.
type ErrorResponse struct {
	Success bool                   `json:"success" example:"false"`
	Code    string                 `json:"code" example:"NOT_FOUND"`
	Message string                 `json:"message"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

func NewSuccessResponse(message string, data any) SuccessResponse {
	return SuccessResponse{Success: true, Message: message, Data: data}
}

func NewErrorResponse(code, message string, details ...apperrors.FieldError) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message, Details: details}
}
