package hotelapi

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError is a single field-level validation failure returned by the
// booking backend on create/update.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StatusError reports a non-2xx response. Body carries the raw payload so
// callers can log it; Message is the backend's message field when present.
type StatusError struct {
	Status  int
	Message string
	Body    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("hotelapi: remote error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("hotelapi: remote error %d", e.Status)
}

// ValidationError reports a rejected create/update with field-level detail.
type ValidationError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("hotelapi: validation failed (%d): %s", e.Status, e.Reason())
}

// Reason flattens the error into one user-facing string: the backend message
// when set, otherwise the field messages joined with commas.
func (e *ValidationError) Reason() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Message
		}
		return strings.Join(parts, ", ")
	}
	return "validation failed"
}

// AuthError reports rejected credentials on login/register.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return "hotelapi: " + e.Message
	}
	return fmt.Sprintf("hotelapi: authentication rejected (%d)", e.Status)
}

// Reason returns a message suitable for a user-facing notification.
func Reason(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Reason()
	}
	var serr *StatusError
	if errors.As(err, &serr) && serr.Message != "" {
		return serr.Message
	}
	var aerr *AuthError
	if errors.As(err, &aerr) && aerr.Message != "" {
		return aerr.Message
	}
	return ""
}

// StatusOf extracts the HTTP status behind err, or 0 for transport failures.
func StatusOf(err error) int {
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Status
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Status
	}
	var aerr *AuthError
	if errors.As(err, &aerr) {
		return aerr.Status
	}
	return 0
}
