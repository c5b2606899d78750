// internal/validation/errors.go
//
// Validator function type and the structured failure it reports.
//
// Notes
// -----
// • A ValidatorFunc returning *ValidationError controls the response
//   status.  Any other error becomes a 400 carrying err.Error().
// • StatusCode 0 means http.StatusBadRequest.

package validation

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidatorFunc checks one field value.  Implementations must not keep
// per-request state; the same func runs concurrently for many requests.
type ValidatorFunc func(value string) error

// ValidationError is a user-input failure with an HTTP status and a
// human-readable message.
type ValidationError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Errorf returns a 400 ValidationError with a formatted message.
func Errorf(format string, args ...any) *ValidationError {
	return &ValidationError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// defaultMessage stands in for a nil *ValidationError returned as error.
const defaultMessage = "validation failed"

func (e *ValidationError) Error() string {
	if e == nil {
		return defaultMessage
	}
	return e.Message
}

// Status returns the effective HTTP status.
func (e *ValidationError) Status() int {
	if e == nil || e.StatusCode == 0 {
		return http.StatusBadRequest
	}
	return e.StatusCode
}

// asValidationError normalises any validator error.  A typed-nil
// *ValidationError still counts as a rejection and gets a default 400.
func asValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		if ve == nil {
			return &ValidationError{StatusCode: http.StatusBadRequest, Message: defaultMessage}
		}
		return ve
	}
	return &ValidationError{StatusCode: http.StatusBadRequest, Message: err.Error()}
}
