package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("Error returns formatted string", func(t *testing.T) {
		err := New(ErrCodeNotFound, "Inquiry not found")
		assert.Equal(t, "NOT_FOUND: Inquiry not found", err.Error())
	})

	t.Run("Error with cause includes cause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := Wrap(ErrCodeDatabase, "Database error", cause)
		assert.Contains(t, err.Error(), "DATABASE_ERROR")
		assert.Contains(t, err.Error(), "Database error")
		assert.Contains(t, err.Error(), "database connection failed")
	})

	t.Run("WithCause adds cause to error", func(t *testing.T) {
		cause := errors.New("original error")
		err := New(ErrCodeInternal, "Something went wrong").WithCause(cause)
		assert.Equal(t, cause, err.Unwrap())
	})

	t.Run("WithDetails adds details to error", func(t *testing.T) {
		details := map[string]string{"field": "status", "reason": "not allowed"}
		err := New(ErrCodeValidation, "Validation failed").WithDetails(details)
		assert.Equal(t, details, err.Details)
	})
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name         string
		constructor  func() *AppError
		expectedCode ErrorCode
	}{
		{"AuthRequired", AuthRequired, ErrCodeAuthRequired},
		{"InvalidSession", InvalidSession, ErrCodeInvalidSession},
		{"InvalidCredentials", InvalidCredentials, ErrCodeInvalidCredentials},
		{"WrongCurrentPassword", WrongCurrentPassword, ErrCodeWrongPassword},
		{"WeakPassword", func() *AppError { return WeakPassword(6) }, ErrCodeWeakPassword},
		{"PasswordTooLong", func() *AppError { return PasswordTooLong(72) }, ErrCodeWeakPassword},
		{"AlreadyInitialized", AlreadyInitialized, ErrCodeAlreadyInitialized},
		{"InvalidStatus", InvalidStatus, ErrCodeInvalidStatus},
		{"InvalidAction", InvalidAction, ErrCodeInvalidAction},
		{"NotFound", func() *AppError { return NotFound("Inquiry") }, ErrCodeNotFound},
		{"ValidationError", func() *AppError { return ValidationError("test") }, ErrCodeValidation},
		{"InvalidInput", func() *AppError { return InvalidInput("id", "invalid") }, ErrCodeInvalidInput},
		{"MissingRequired", func() *AppError { return MissingRequired("id") }, ErrCodeMissingRequired},
		{"Unavailable", func() *AppError { return Unavailable("test") }, ErrCodeUnavailable},
		{"Internal", func() *AppError { return Internal("test") }, ErrCodeInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.constructor()
			assert.Equal(t, tc.expectedCode, err.Code)
			assert.NotEmpty(t, err.Message)
		})
	}
}

func TestUniformMessages(t *testing.T) {
	t.Run("session failures share one message", func(t *testing.T) {
		assert.Equal(t, "Invalid or expired session", InvalidSession().Message)
	})

	t.Run("credential failures share one message", func(t *testing.T) {
		assert.Equal(t, "Invalid credentials", InvalidCredentials().Message)
	})

	t.Run("weak password names the minimum length", func(t *testing.T) {
		assert.Equal(t, "Password must be at least 6 characters", WeakPassword(6).Message)
	})
}

func TestDatabase(t *testing.T) {
	t.Run("wraps database error", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Database(cause)
		assert.Equal(t, ErrCodeDatabase, err.Code)
		assert.Equal(t, cause, err.Unwrap())
	})
}

func TestAsAppError(t *testing.T) {
	t.Run("extracts AppError", func(t *testing.T) {
		original := New(ErrCodeNotFound, "Inquiry not found")
		extracted, ok := AsAppError(original)
		assert.True(t, ok)
		assert.Equal(t, original, extracted)
	})

	t.Run("extracts wrapped AppError", func(t *testing.T) {
		original := InvalidStatus()
		wrapped := fmt.Errorf("update inquiry: %w", original)
		extracted, ok := AsAppError(wrapped)
		assert.True(t, ok)
		assert.Equal(t, original, extracted)
	})

	t.Run("returns false for non-AppError", func(t *testing.T) {
		err := errors.New("standard error")
		extracted, ok := AsAppError(err)
		assert.False(t, ok)
		assert.Nil(t, extracted)
	})
}

func TestGetCode(t *testing.T) {
	t.Run("returns code for AppError", func(t *testing.T) {
		err := New(ErrCodeNotFound, "test")
		assert.Equal(t, ErrCodeNotFound, GetCode(err))
	})

	t.Run("returns ErrCodeInternal for standard error", func(t *testing.T) {
		err := errors.New("standard error")
		assert.Equal(t, ErrCodeInternal, GetCode(err))
	})
}

func TestIsInternal(t *testing.T) {
	assert.True(t, IsInternal(errors.New("boom")))
	assert.True(t, IsInternal(Database(errors.New("boom"))))
	assert.False(t, IsInternal(InvalidSession()))
	assert.False(t, IsInternal(InvalidStatus()))
}
