package utils

import (
	"fmt"

	"github.com/dmateos/tagsync/internal/types"
)

// Exit codes
const (
	ExitSuccess = 0
	// Auth errors (10-19)
	ExitAuthRequired = 10
	ExitAuthExpired  = 11
	// Local filesystem errors (20-29)
	ExitLocalRootUnreadable = 20
	ExitExtractorMissing    = 21
	// Network errors (30-39)
	ExitNetworkError = 30
	ExitTimeout      = 31
	ExitRateLimited  = 32
	// Validation errors (40-49)
	ExitInvalidArgument = 40
	ExitInvalidPath     = 41
	// Batch errors
	ExitBatchPartialFailure = 60
	// Unknown
	ExitUnknown = 99
)

// Error codes (tool-owned, stable)
const (
	ErrCodeAuthRequired        = "AUTH_REQUIRED"
	ErrCodeAuthExpired         = "AUTH_EXPIRED"
	ErrCodeLocalRootUnreadable = "LOCAL_ROOT_UNREADABLE"
	ErrCodeExtractorMissing    = "EXTRACTOR_MISSING"
	ErrCodeExtractorFailed     = "EXTRACTOR_FAILED"
	ErrCodeFileNotFound        = "FILE_NOT_FOUND"
	ErrCodePermissionDenied    = "PERMISSION_DENIED"
	ErrCodeNetworkError        = "NETWORK_ERROR"
	ErrCodeTimeout             = "TIMEOUT"
	ErrCodeRateLimited         = "RATE_LIMITED"
	ErrCodeInvalidArgument     = "INVALID_ARGUMENT"
	ErrCodeInvalidPath         = "INVALID_PATH"
	ErrCodeBatchPartialFailure = "BATCH_PARTIAL_FAILURE"
	ErrCodeCancelled           = "CANCELLED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeUnknown             = "UNKNOWN"
)

// CLIErrorBuilder helps construct CLIError instances
type CLIErrorBuilder struct {
	err types.CLIError
}

// NewCLIError creates a new error builder
func NewCLIError(code, message string) *CLIErrorBuilder {
	return &CLIErrorBuilder{
		err: types.CLIError{
			Code:    code,
			Message: message,
		},
	}
}

func (b *CLIErrorBuilder) WithHTTPStatus(status int) *CLIErrorBuilder {
	b.err.HTTPStatus = status
	return b
}

func (b *CLIErrorBuilder) WithDriveReason(reason string) *CLIErrorBuilder {
	b.err.DriveReason = reason
	return b
}

func (b *CLIErrorBuilder) WithRetryable(retryable bool) *CLIErrorBuilder {
	b.err.Retryable = retryable
	return b
}

func (b *CLIErrorBuilder) WithContext(key string, value interface{}) *CLIErrorBuilder {
	if b.err.Context == nil {
		b.err.Context = make(map[string]interface{})
	}
	b.err.Context[key] = value
	return b
}

func (b *CLIErrorBuilder) Build() types.CLIError {
	return b.err
}

// GetExitCode returns the exit code for an error code
func GetExitCode(errorCode string) int {
	mapping := map[string]int{
		ErrCodeAuthRequired:        ExitAuthRequired,
		ErrCodeAuthExpired:         ExitAuthExpired,
		ErrCodeLocalRootUnreadable: ExitLocalRootUnreadable,
		ErrCodeExtractorMissing:    ExitExtractorMissing,
		ErrCodeFileNotFound:        ExitInvalidPath,
		ErrCodePermissionDenied:    ExitAuthRequired,
		ErrCodeNetworkError:        ExitNetworkError,
		ErrCodeTimeout:             ExitTimeout,
		ErrCodeRateLimited:         ExitRateLimited,
		ErrCodeInvalidArgument:     ExitInvalidArgument,
		ErrCodeInvalidPath:         ExitInvalidPath,
		ErrCodeBatchPartialFailure: ExitBatchPartialFailure,
	}
	if code, ok := mapping[errorCode]; ok {
		return code
	}
	return ExitUnknown
}

// AppError is a custom error type that carries CLI error info
type AppError struct {
	CLIError types.CLIError
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.CLIError.Code, e.CLIError.Message)
}

// NewAppError creates an AppError from a CLIError
func NewAppError(cliErr types.CLIError) *AppError {
	return &AppError{CLIError: cliErr}
}

// ExitCodeFor maps any error to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if appErr, ok := err.(*AppError); ok {
		return GetExitCode(appErr.CLIError.Code)
	}
	return ExitUnknown
}
