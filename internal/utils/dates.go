package utils

import (
	"strings"
	"time"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
)

// ParseTimestamp parses an RFC 3339 timestamp supplied for field. Date-only values (2006-01-02)
// are accepted as midnight UTC.
func ParseTimestamp(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperrors.NewValidationFailedError("Validation failed",
		apperrors.FieldError{Field: field, Message: "must be an RFC 3339 date-time"})
}
