package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrSinkUnknown ErrorCode = "SINK_UNKNOWN"

	// Pattern errors
	ErrPatternInvalid        ErrorCode = "PATTERN_INVALID"
	ErrPatternMatchedNothing ErrorCode = "PATTERN_MATCHED_NOTHING"

	// Pack manifest errors
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"
	ErrPackNotFound    ErrorCode = "PACK_NOT_FOUND"

	// Discovery errors
	ErrSkillsRootMissing  ErrorCode = "SKILLS_ROOT_MISSING"
	ErrSkillLayoutInvalid ErrorCode = "SKILL_LAYOUT_INVALID"

	// Resolution errors
	ErrNameCollision    ErrorCode = "NAME_COLLISION"
	ErrImportResolution ErrorCode = "IMPORT_RESOLUTION_FAILED"

	// Install errors
	ErrDestNotOwned     ErrorCode = "DEST_NOT_OWNED"
	ErrPackNotInstalled ErrorCode = "PACK_NOT_INSTALLED"
	ErrOutsideSink      ErrorCode = "OUTSIDE_SINK"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrStateWrite ErrorCode = "STATE_WRITE"
)

// SkillpackError represents a structured error with code and details
type SkillpackError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SkillpackError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SkillpackError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SkillpackError) Is(target error) bool {
	var targetErr *SkillpackError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SkillpackError with the given code and message
func New(code ErrorCode, message string) *SkillpackError {
	return &SkillpackError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SkillpackError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SkillpackError {
	return &SkillpackError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SkillpackError
func Wrap(err error, code ErrorCode, message string) *SkillpackError {
	if err == nil {
		return nil
	}
	return &SkillpackError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SkillpackError {
	if err == nil {
		return nil
	}
	return &SkillpackError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SkillpackError) WithDetail(key string, value interface{}) *SkillpackError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithHint attaches a user-facing suggestion shown by the CLI next to the error
func (e *SkillpackError) WithHint(hint string) *SkillpackError {
	return e.WithDetail("hint", hint)
}

// Hint returns the user-facing suggestion attached to an error, or ""
func Hint(err error) string {
	var spErr *SkillpackError
	if errors.As(err, &spErr) {
		if hint, ok := spErr.Details["hint"].(string); ok {
			return hint
		}
	}
	return ""
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var spErr *SkillpackError
	if errors.As(err, &spErr) {
		return spErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SkillpackError
func GetErrorCode(err error) ErrorCode {
	var spErr *SkillpackError
	if errors.As(err, &spErr) {
		return spErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SkillpackError
func GetErrorDetails(err error) map[string]interface{} {
	var spErr *SkillpackError
	if errors.As(err, &spErr) {
		return spErr.Details
	}
	return nil
}
