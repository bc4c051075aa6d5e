// Package common defines shared constants and sentinel errors used across
// client and server layers of TaskKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("conflict")

	// Service-level categories.
	ErrValidation      = errors.New("validation error")
	ErrAuthentication  = errors.New("authentication failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// Error is a user-facing error. Message is safe to show to the client and
// Kind is one of the sentinel categories above, so errors.Is(err, ErrValidation)
// works for every validation failure.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrAllFieldsRequired     = NewError(ErrValidation, "All fields are required")
	ErrEmailPasswordRequired = NewError(ErrValidation, "All fields required")
	ErrInvalidEmail          = NewError(ErrValidation, "Please enter a valid email")
	ErrPasswordTooShort      = NewError(ErrValidation, "Password must be at least 6 characters")
	ErrPasswordTooLong       = NewError(ErrValidation, "Password must be at most 72 bytes")
	ErrUserExists            = NewError(ErrConflict, "User already exists")
	ErrInvalidCredentials    = NewError(ErrAuthentication, "Invalid Credentials")
	ErrNotLoggedIn           = NewError(ErrUnauthenticated, "Not authorized, please login")
	ErrSessionInvalid        = NewError(ErrUnauthenticated, "Invalid or expired token")

	ErrTitleRequired = NewError(ErrValidation, "Title is required")
	ErrInvalidStatus = NewError(ErrValidation, "Invalid status")
	ErrTaskNotFound  = NewError(ErrorNotFound, "Task not found")
	ErrTaskForbidden = NewError(ErrForbidden, "Unauthorized")
	ErrDeleteDenied  = NewError(ErrForbidden, "Not authorized to delete this task")
)

// Message returns the client-safe message carried by err, or fallback when
// err is not an *Error.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}
