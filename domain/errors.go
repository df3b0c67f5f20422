package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeStore        ErrorCode = "STORE"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrUserNotFound     = NewError(ErrCodeNotFound, "user not found")
	ErrTaskNotFound     = NewError(ErrCodeNotFound, "task not found")
	ErrActivityNotFound = NewError(ErrCodeNotFound, "activity not found")
	ErrSessionNotFound  = NewError(ErrCodeNotFound, "session not found")
	ErrEmailTaken       = NewError(ErrCodeConflict, "email already registered")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")

	// ErrAuthFailed is deliberately generic: unknown account, wrong
	// password and provider failures all collapse into it so a caller
	// cannot learn which half of the credential pair was wrong.
	ErrAuthFailed = NewError(ErrCodeUnauthorized, "invalid credentials")
)

// StoreError classifies a document-store failure. Store failures are
// never retried; they surface to the caller as-is.
func StoreError(op string, err error) *Error {
	return WrapError(ErrCodeStore, fmt.Sprintf("store %s failed", op), err)
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
