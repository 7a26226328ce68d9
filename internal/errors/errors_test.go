package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("Error returns formatted string", func(t *testing.T) {
		err := New(ErrCodeNotFound, "User not found")
		assert.Equal(t, "NOT_FOUND: User not found", err.Error())
	})

	t.Run("Error with cause includes cause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := Wrap(ErrCodeDatabase, "Database error", cause)
		assert.Contains(t, err.Error(), "DATABASE_ERROR")
		assert.Contains(t, err.Error(), "Database error")
		assert.Contains(t, err.Error(), "database connection failed")
	})

	t.Run("Unwrap exposes the cause", func(t *testing.T) {
		cause := errors.New("original error")
		err := Wrap(ErrCodeInternal, "Something went wrong", cause)
		assert.Equal(t, cause, err.Unwrap())
	})

	t.Run("WithDetails adds details to error", func(t *testing.T) {
		details := map[string]string{"field": "caption", "reason": "missing"}
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
		{"InvalidDuration", func() *AppError { return InvalidDuration(95) }, ErrCodeInvalidDuration},
		{"NoStagedVideo", func() *AppError { return NoStagedVideo() }, ErrCodeNoStagedVideo},
		{"IncompleteUpload", func() *AppError { return IncompleteUpload() }, ErrCodeIncomplete},
		{"MissingRequired", func() *AppError { return MissingRequired("caption") }, ErrCodeMissingRequired},
		{"InvalidOAuthState", func() *AppError { return InvalidOAuthState() }, ErrCodeInvalidState},
		{"ExchangeFailed", func() *AppError { return ExchangeFailed(errors.New("boom")) }, ErrCodeExchangeFailed},
		{"IdentityFailed", func() *AppError { return IdentityFailed(errors.New("boom")) }, ErrCodeIdentityFailed},
		{"NotFound", func() *AppError { return NotFound("User") }, ErrCodeNotFound},
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

func TestInvalidDuration(t *testing.T) {
	t.Run("includes offending duration", func(t *testing.T) {
		err := InvalidDuration(95)
		assert.Contains(t, err.Message, "95")
		assert.Equal(t, map[string]int{"duration": 95}, err.Details)
	})
}

func TestAsAppError(t *testing.T) {
	t.Run("extracts AppError", func(t *testing.T) {
		original := New(ErrCodeNotFound, "User not found")
		extracted, ok := AsAppError(original)
		assert.True(t, ok)
		assert.Equal(t, original, extracted)
	})

	t.Run("extracts fmt-wrapped AppError", func(t *testing.T) {
		extracted, ok := AsAppError(fmt.Errorf("handling callback: %w", InvalidOAuthState()))
		assert.True(t, ok)
		assert.Equal(t, ErrCodeInvalidState, extracted.Code)
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
