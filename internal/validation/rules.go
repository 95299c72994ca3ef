// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/ClavisPass/ClavisPass-sub001/internal/errors"
)

// MaxSafeInteger is the largest integer a JSON producer on a double-precision
// runtime can represent exactly (2^53 - 1).
const MaxSafeInteger = 1<<53 - 1

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// ISO8601 validates a UTC timestamp in the form produced by Date.prototype.toJSON,
// e.g. "2024-01-01T00:00:00.000Z". Offsets other than Z are rejected.
var ISO8601 = validation.NewStringRuleWithError(
	func(s string) bool {
		if !strings.HasSuffix(s, "Z") {
			return false
		}
		_, err := time.Parse(time.RFC3339Nano, s)
		return err == nil
	},
	validation.NewError("validation_iso8601", "must be an ISO-8601 UTC datetime"),
)

// PositiveSafeInteger validates that an unsigned integer is in [1, MaxSafeInteger].
var PositiveSafeInteger = validation.By(func(value interface{}) error {
	var n uint64
	switch v := value.(type) {
	case uint64:
		n = v
	case uint32:
		n = uint64(v)
	case int:
		if v < 0 {
			return validation.NewError("validation_positive_safe_integer", "must be a positive safe integer")
		}
		n = uint64(v)
	case int64:
		if v < 0 {
			return validation.NewError("validation_positive_safe_integer", "must be a positive safe integer")
		}
		n = uint64(v)
	default:
		return validation.NewError("validation_positive_safe_integer_type", "must be an integer")
	}
	if n == 0 || n > MaxSafeInteger {
		return validation.NewError("validation_positive_safe_integer", "must be a positive safe integer")
	}
	return nil
})
