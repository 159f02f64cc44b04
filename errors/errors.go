package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput       = fmt.Errorf("invalid input")
	ErrInvalidMessage     = fmt.Errorf("invalid message")
	ErrInvalidUserKey     = fmt.Errorf("invalid or missing userKey")
	ErrInvalidEmail       = fmt.Errorf("invalid email")
	ErrStoreUnavailable   = fmt.Errorf("message store unavailable")
	ErrNotImplemented     = fmt.Errorf("not implemented")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrSinkFull           = fmt.Errorf("connection buffer full")
	ErrWorkerPanic        = fmt.Errorf("worker panic")
)

// MapToHTTPStatus translates a domain error into the status code returned by the REST layer.
// Validation errors are the caller's fault, everything unknown is treated as a server failure.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case goerrors.Is(err, ErrInvalidInput),
		goerrors.Is(err, ErrInvalidMessage),
		goerrors.Is(err, ErrInvalidUserKey),
		goerrors.Is(err, ErrInvalidEmail):
		return http.StatusBadRequest
	case goerrors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case goerrors.Is(err, ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// IsValidation reports whether err comes from input validation rather than infrastructure.
func IsValidation(err error) bool {
	return MapToHTTPStatus(err) == http.StatusBadRequest
}
