// Package errors provides structured error handling for docsearch.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Discovery and file IO errors
//   - 3XX: Publish (remote index) errors
//   - 4XX: Metadata extraction errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryDiscovery indicates file discovery and IO errors.
	CategoryDiscovery Category = "DISCOVERY"
	// CategoryPublish indicates remote index errors.
	CategoryPublish Category = "PUBLISH"
	// CategoryMetadata indicates metadata extraction errors.
	CategoryMetadata Category = "METADATA"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"
	ErrCodeMissingCreds   = "ERR_103_MISSING_CREDENTIALS"

	// Discovery errors (200-299)
	ErrCodeRootNotFound   = "ERR_201_ROOT_NOT_FOUND"
	ErrCodeRootUnreadable = "ERR_202_ROOT_UNREADABLE"
	ErrCodeFileUnreadable = "ERR_203_FILE_UNREADABLE"

	// Publish errors (300-399)
	ErrCodeClearFailed   = "ERR_301_CLEAR_FAILED"
	ErrCodePublishFailed = "ERR_302_PUBLISH_FAILED"
	ErrCodeIndexTimeout  = "ERR_303_INDEX_TIMEOUT"

	// Metadata errors (400-499)
	ErrCodeMetadataParse = "ERR_401_METADATA_PARSE"

	// Internal errors (500-599)
	ErrCodeInternal  = "ERR_501_INTERNAL"
	ErrCodeBuildLock = "ERR_502_BUILD_LOCKED"
	ErrCodeNoRecords = "ERR_503_NO_RECORDS"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryDiscovery
	case '3':
		return CategoryPublish
	case '4':
		return CategoryMetadata
	default:
		return CategoryInternal
	}
}

// severityFromCode derives severity from error code.
// Discovery root errors, publish errors, and config errors abort the build;
// per-file errors degrade gracefully.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeFileUnreadable, ErrCodeMetadataParse:
		return SeverityWarning
	case ErrCodeIndexTimeout:
		return SeverityError
	default:
		return SeverityFatal
	}
}

// isRetryableCode reports whether operations failing with this code
// may succeed on retry. Only remote index calls are retryable.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeClearFailed, ErrCodePublishFailed, ErrCodeIndexTimeout:
		return true
	default:
		return false
	}
}
