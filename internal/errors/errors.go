package errors

import (
	"fmt"
)

// BuildError is the structured error type for docsearch.
// It provides rich context for error handling, logging, and user presentation.
type BuildError struct {
	// Code is the unique error code (e.g., "ERR_201_ROOT_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Discovery, Publish, ...).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with BuildError.
func (e *BuildError) Is(target error) bool {
	if t, ok := target.(*BuildError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *BuildError) WithDetail(key, value string) *BuildError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *BuildError) WithSuggestion(suggestion string) *BuildError {
	e.Suggestion = suggestion
	return e
}

// New creates a new BuildError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *BuildError {
	return &BuildError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a BuildError from an existing error.
// The error's message becomes the BuildError message.
func Wrap(code string, err error) *BuildError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// DiscoveryError creates a fatal error for a missing or unreadable root.
func DiscoveryError(root string, cause error) *BuildError {
	return New(ErrCodeRootNotFound,
		fmt.Sprintf("cannot enumerate files under %q", root), cause).
		WithDetail("root", root)
}

// MetadataParseError creates a per-file, recoverable metadata error.
func MetadataParseError(path string, cause error) *BuildError {
	return New(ErrCodeMetadataParse,
		fmt.Sprintf("malformed metadata in %q", path), cause).
		WithDetail("path", path)
}

// PublishError creates a fatal error for a failed remote index mutation.
// attempted records how many records the call carried.
func PublishError(message string, attempted int, cause error) *BuildError {
	return New(ErrCodePublishFailed, message, cause).
		WithDetail("attempted", fmt.Sprintf("%d", attempted))
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *BuildError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *BuildError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error is a BuildError with Retryable flag set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if be, ok := err.(*BuildError); ok {
		return be.Retryable
	}
	return false
}

// IsFatal checks if an error has fatal severity.
// Fatal errors abort the whole build.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if be, ok := err.(*BuildError); ok {
		return be.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a BuildError.
// Returns empty string if not a BuildError.
func GetCode(err error) string {
	if be, ok := err.(*BuildError); ok {
		return be.Code
	}
	return ""
}
