package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeInvalidPath   = "INVALID_PATH"
	ErrCodeMissingData   = "MISSING_DATA"
	ErrCodeInvalidWindow = "INVALID_WINDOW"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// Error constructors

// NewInvalidPathError reports a dataset root directory that does not exist
func NewInvalidPathError(path string) error {
	return &DomainError{
		Code:    ErrCodeInvalidPath,
		Message: fmt.Sprintf("data path %s does not exist", path),
	}
}

// NewMissingDataError reports every required dataset file that is absent.
// All missing files are named together so the caller sees the full picture
// at once instead of fixing them one at a time.
func NewMissingDataError(files []string) error {
	return &DomainError{
		Code:    ErrCodeMissingData,
		Message: fmt.Sprintf("missing required files: %s", strings.Join(files, ", ")),
	}
}

// NewInvalidWindowError reports a window whose start is not before its end
func NewInvalidWindowError(msg string) error {
	return &DomainError{
		Code:    ErrCodeInvalidWindow,
		Message: msg,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(msg string) error {
	return &DomainError{
		Code:    ErrCodeBadRequest,
		Message: msg,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(err error) error {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// Helper functions to check error types

// IsInvalidPath checks if the error reports a missing dataset root
func IsInvalidPath(err error) bool {
	return GetErrorCode(err) == ErrCodeInvalidPath
}

// IsMissingData checks if the error reports absent dataset files
func IsMissingData(err error) bool {
	return GetErrorCode(err) == ErrCodeMissingData
}

// IsInvalidWindow checks if the error reports an invalid date window
func IsInvalidWindow(err error) bool {
	return GetErrorCode(err) == ErrCodeInvalidWindow
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return GetErrorCode(err) == ErrCodeNotFound
}

// IsBadRequest checks if the error is a bad request error
func IsBadRequest(err error) bool {
	return GetErrorCode(err) == ErrCodeBadRequest
}

// GetErrorCode extracts the error code from a domain error
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}
