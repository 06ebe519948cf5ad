package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

const (
	// Authentication
	ErrCodeAuthRequired   ErrorCode = "AUTH_REQUIRED"
	ErrCodeInvalidSession ErrorCode = "INVALID_SESSION"

	// Credentials
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeWrongPassword      ErrorCode = "WRONG_CURRENT_PASSWORD"

	// Validation
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeMissingRequired ErrorCode = "MISSING_REQUIRED"
	ErrCodeWeakPassword    ErrorCode = "WEAK_PASSWORD"
	ErrCodeInvalidStatus   ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidAction   ErrorCode = "INVALID_ACTION"

	// State
	ErrCodeAlreadyInitialized ErrorCode = "ALREADY_INITIALIZED"

	// Resource
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Internal
	ErrCodeInternal    ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabase    ErrorCode = "DATABASE_ERROR"
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// AppError is a structured error that can be returned to clients
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause adds a cause to the error
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Messages shown to callers. Authentication and credential failures use a
// single message each so the caller cannot tell the failure modes apart.
const (
	MsgAuthRequired       = "Authentication required"
	MsgInvalidSession     = "Invalid or expired session"
	MsgInvalidCredentials = "Invalid credentials"
	MsgWrongPassword      = "Current password is incorrect"
	MsgInternal           = "Internal server error"
)

func AuthRequired() *AppError {
	return New(ErrCodeAuthRequired, MsgAuthRequired)
}

func InvalidSession() *AppError {
	return New(ErrCodeInvalidSession, MsgInvalidSession)
}

func InvalidCredentials() *AppError {
	return New(ErrCodeInvalidCredentials, MsgInvalidCredentials)
}

func WrongCurrentPassword() *AppError {
	return New(ErrCodeWrongPassword, MsgWrongPassword)
}

func WeakPassword(minLength int) *AppError {
	return New(ErrCodeWeakPassword, fmt.Sprintf("Password must be at least %d characters", minLength))
}

func PasswordTooLong(maxBytes int) *AppError {
	return New(ErrCodeWeakPassword, fmt.Sprintf("Password must be at most %d bytes", maxBytes))
}

func AlreadyInitialized() *AppError {
	return New(ErrCodeAlreadyInitialized, "Password already initialized")
}

func InvalidStatus() *AppError {
	return New(ErrCodeInvalidStatus, "Invalid status")
}

func InvalidAction() *AppError {
	return New(ErrCodeInvalidAction, "Invalid action")
}

func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func ValidationError(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func InvalidInput(field string, reason string) *AppError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("Invalid %s: %s", field, reason))
}

func MissingRequired(field string) *AppError {
	return New(ErrCodeMissingRequired, fmt.Sprintf("%s is required", field))
}

func Unavailable(message string) *AppError {
	return New(ErrCodeUnavailable, message)
}

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

func Database(cause error) *AppError {
	return Wrap(ErrCodeDatabase, "Database error", cause)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetCode returns the error code if the error is an AppError, otherwise returns ErrCodeInternal
func GetCode(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsInternal reports whether err should be hidden from the caller behind a
// generic 500 response.
func IsInternal(err error) bool {
	switch GetCode(err) {
	case ErrCodeInternal, ErrCodeDatabase:
		return true
	}
	return false
}
