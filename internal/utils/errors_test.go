package utils

import (
	"errors"
	"testing"
)

func TestCLIErrorBuilder(t *testing.T) {
	err := NewCLIError(ErrCodeRateLimited, "Too many requests").
		WithHTTPStatus(429).
		WithDriveReason("rateLimitExceeded").
		WithRetryable(true).
		WithContext("fileId", "abc123").
		Build()

	if err.Code != ErrCodeRateLimited {
		t.Errorf("expected code %s, got %s", ErrCodeRateLimited, err.Code)
	}
	if err.HTTPStatus != 429 {
		t.Errorf("expected HTTP status 429, got %d", err.HTTPStatus)
	}
	if err.DriveReason != "rateLimitExceeded" {
		t.Errorf("expected drive reason, got %s", err.DriveReason)
	}
	if !err.Retryable {
		t.Error("expected retryable")
	}
	if err.Context["fileId"] != "abc123" {
		t.Errorf("expected context fileId, got %v", err.Context["fileId"])
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeAuthRequired, ExitAuthRequired},
		{ErrCodeAuthExpired, ExitAuthExpired},
		{ErrCodeLocalRootUnreadable, ExitLocalRootUnreadable},
		{ErrCodeExtractorMissing, ExitExtractorMissing},
		{ErrCodeNetworkError, ExitNetworkError},
		{ErrCodeRateLimited, ExitRateLimited},
		{ErrCodeBatchPartialFailure, ExitBatchPartialFailure},
		{ErrCodeInternalError, ExitUnknown},
		{"NO_SUCH_CODE", ExitUnknown},
	}

	for _, tt := range tests {
		if got := GetExitCode(tt.code); got != tt.want {
			t.Errorf("GetExitCode(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	if got := ExitCodeFor(nil); got != ExitSuccess {
		t.Errorf("nil error should exit %d, got %d", ExitSuccess, got)
	}

	appErr := NewAppError(NewCLIError(ErrCodeBatchPartialFailure, "2 of 5 updates failed").Build())
	if got := ExitCodeFor(appErr); got != ExitBatchPartialFailure {
		t.Errorf("expected %d, got %d", ExitBatchPartialFailure, got)
	}

	if got := ExitCodeFor(errors.New("plain")); got != ExitUnknown {
		t.Errorf("plain error should exit %d, got %d", ExitUnknown, got)
	}
}

func TestAppErrorMessage(t *testing.T) {
	appErr := NewAppError(NewCLIError(ErrCodeAuthRequired, "No stored credentials").Build())
	want := "AUTH_REQUIRED: No stored credentials"
	if appErr.Error() != want {
		t.Errorf("expected %q, got %q", want, appErr.Error())
	}
}

func TestIsImagePath(t *testing.T) {
	exts := []string{".jpg", ".jpeg", ".png"}
	tests := []struct {
		path string
		want bool
	}{
		{"cat.jpg", true},
		{"CAT.JPG", true},
		{"a/b/beach.jpeg", true},
		{"shout.PNG", true},
		{"notes.txt", false},
		{"archive.jpg.zip", false},
		{"jpg", false},
	}

	for _, tt := range tests {
		if got := IsImagePath(tt.path, exts); got != tt.want {
			t.Errorf("IsImagePath(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
