package api

import (
	"net/http"

	"github.com/dmateos/tagsync/internal/utils"
	"google.golang.org/api/googleapi"
)

// classifyError converts Drive API errors to stable tool errors
func classifyError(err error) error {
	apiErr, ok := err.(*googleapi.Error)
	if !ok {
		return utils.NewAppError(utils.NewCLIError(utils.ErrCodeNetworkError, err.Error()).
			WithRetryable(true).
			Build())
	}

	reason := ""
	if len(apiErr.Errors) > 0 {
		reason = apiErr.Errors[0].Reason
	}

	builder := func(code, message string) *utils.CLIErrorBuilder {
		return utils.NewCLIError(code, message).
			WithHTTPStatus(apiErr.Code).
			WithDriveReason(reason)
	}

	switch apiErr.Code {
	case http.StatusUnauthorized:
		return utils.NewAppError(builder(utils.ErrCodeAuthExpired, "Authentication expired or invalid").Build())
	case http.StatusForbidden:
		if reason == "rateLimitExceeded" || reason == "userRateLimitExceeded" {
			return utils.NewAppError(builder(utils.ErrCodeRateLimited, "Rate limit exceeded").
				WithRetryable(true).
				Build())
		}
		return utils.NewAppError(builder(utils.ErrCodePermissionDenied, "Permission denied").Build())
	case http.StatusNotFound:
		return utils.NewAppError(builder(utils.ErrCodeFileNotFound, "Remote file not found").Build())
	case http.StatusTooManyRequests:
		return utils.NewAppError(builder(utils.ErrCodeRateLimited, "Rate limit exceeded").
			WithRetryable(true).
			Build())
	default:
		if apiErr.Code >= 500 {
			return utils.NewAppError(builder(utils.ErrCodeNetworkError, apiErr.Message).
				WithRetryable(true).
				Build())
		}
		return utils.NewAppError(builder(utils.ErrCodeUnknown, apiErr.Message).Build())
	}
}
