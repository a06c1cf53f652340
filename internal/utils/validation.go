package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the process-wide validator. It reads the same `binding` tags gin uses and
// reports fields by their JSON or form names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName("binding")
		UseJSONFieldNames(validate)
	})
	return validate
}

// UseJSONFieldNames makes v report fields by their JSON or form names. It is applied to gin's
// binding engine so bind errors and service validation name fields the same way.
func UseJSONFieldNames(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
}

// ValidateStruct validates req and returns an apperrors validation error listing every invalid field.
func ValidateStruct(req any) error {
	if err := Validator().Struct(req); err != nil {
		return NewValidationError(err)
	}
	return nil
}

// NewValidationError converts a validator or binding error into an apperrors validation error.
func NewValidationError(err error) error {
	details := FieldErrorsFrom(err)
	if len(details) == 0 {
		return apperrors.NewAppError(apperrors.ErrValidation, "Invalid request body", err)
	}
	appErr := apperrors.NewValidationFailedError("Validation failed", details...)
	appErr.Err = err
	return appErr
}

// FieldErrorsFrom extracts field details from validator.ValidationErrors. Other errors yield nil.
func FieldErrorsFrom(err error) []apperrors.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
