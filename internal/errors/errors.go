package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

const (
	// Validation
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidDuration ErrorCode = "INVALID_DURATION"
	ErrCodeNoStagedVideo   ErrorCode = "NO_STAGED_VIDEO"
	ErrCodeIncomplete      ErrorCode = "INCOMPLETE_UPLOAD"
	ErrCodeMissingRequired ErrorCode = "MISSING_REQUIRED"

	// Authorization
	ErrCodeNotConnected   ErrorCode = "NOT_CONNECTED"
	ErrCodeInvalidState   ErrorCode = "INVALID_OAUTH_STATE"
	ErrCodeExchangeFailed ErrorCode = "CODE_EXCHANGE_FAILED"
	ErrCodeIdentityFailed ErrorCode = "IDENTITY_FETCH_FAILED"

	// Publish protocol
	ErrCodeContainerFailed ErrorCode = "CONTAINER_FAILED"
	ErrCodePublishTimeout  ErrorCode = "PUBLISH_TIMEOUT"
	ErrCodePublishFailed   ErrorCode = "PUBLISH_FAILED"

	// Resource
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Internal
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabase ErrorCode = "DATABASE_ERROR"
	ErrCodeExternal ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// AppError is a structured error carrying a stable code alongside the message
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

// Common error constructors

func InvalidDuration(seconds int) *AppError {
	return New(ErrCodeInvalidDuration,
		fmt.Sprintf("Video duration must be between 3-90 seconds, got %d", seconds)).
		WithDetails(map[string]int{"duration": seconds})
}

func NoStagedVideo() *AppError {
	return New(ErrCodeNoStagedVideo, "No staged video for this user")
}

func IncompleteUpload() *AppError {
	return New(ErrCodeIncomplete, "Staged upload is missing the video or caption")
}

func MissingRequired(field string) *AppError {
	return New(ErrCodeMissingRequired, fmt.Sprintf("%s is required", field))
}

func InvalidOAuthState() *AppError {
	return New(ErrCodeInvalidState, "Authorization link has expired or is invalid")
}

func ExchangeFailed(cause error) *AppError {
	return Wrap(ErrCodeExchangeFailed, "Failed to exchange authorization code", cause)
}

func IdentityFailed(cause error) *AppError {
	return Wrap(ErrCodeIdentityFailed, "Failed to fetch Instagram profile", cause)
}

func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
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
