package port

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors used across ports.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrInvalidSession   = errors.New("session has a user but no token")
	ErrRoleRequired     = errors.New("Please select at least one role.")
	ErrFieldsRequired   = errors.New("Name, email, and password are required.")
	ErrPublishBlocked   = errors.New("listing is not ready to publish")
	ErrNoWizard         = errors.New("no listing wizard is open")
	ErrUnknownStorage   = errors.New("unknown storage driver")
	ErrMissingClientID  = errors.New("missing client id")
	ErrLoginRequired    = errors.New("Please login to book this warehouse")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrUnknownBookingOp = errors.New("unknown booking status")
	ErrMissingDraftID   = errors.New("listing created without an id")
)

// ErrorKind is the closed set of failures a call site branches on.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindHTTP         ErrorKind = "http"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindValidation   ErrorKind = "validation"
)

// APIError is the normalized failure of a marketplace call or a
// client-side validation.
type APIError struct {
	Kind    ErrorKind `json:"kind"`
	Status  int       `json:"status,omitempty"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
	Err     error     `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the auth sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// AuthFailure reports whether the error is a 401 or 403.
func (e *APIError) AuthFailure() bool {
	return e.Kind == KindUnauthorized || e.Kind == KindForbidden
}

// KindForStatus classifies an HTTP error status.
func KindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	}
	return KindHTTP
}

// NetworkError wraps a transport failure talking to baseURL.
func NetworkError(baseURL string, err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("Cannot reach the server. Check that the backend is running on %s.", baseURL),
		Err:     err,
	}
}

// ValidationError is a client-side failure that never reached the network.
func ValidationError(err error, reasons []string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: err.Error(),
		Details: reasons,
		Err:     err,
	}
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// MessageOf returns the user-facing text for err, or fallback.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
