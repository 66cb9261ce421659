// internal/utils/errors.go
package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Code    string
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// AuthError means the session is not (or no longer) allowed to make the call.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return "auth: " + e.Message
	}
	if e.Err != nil {
		return "auth: " + e.Err.Error()
	}
	return fmt.Sprintf("auth: status %d", e.Status)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FieldError is one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError covers both rejected input and backend payloads of the wrong shape.
type ValidationError struct {
	Message string
	Fields  []FieldError
	Err     error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, e.Fields[0].Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError means the request never produced an HTTP answer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewValidationError wraps a validator error with its field breakdown.
func NewValidationError(message string, err error) *ValidationError {
	return &ValidationError{Message: message, Fields: GetValidationErrors(err), Err: err}
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// StatusOf maps a service error to the HTTP status the console answers with.
func StatusOf(err error) int {
	var (
		authErr       *AuthError
		apiErr        *APIError
		validationErr *ValidationError
		transportErr  *TransportError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		if authErr.Status == http.StatusForbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case errors.As(err, &apiErr):
		return apiErr.Status
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
