package utils

import "strings"

// OAuth scopes
const (
	ScopeFull     = "https://www.googleapis.com/auth/drive"
	ScopeMetadata = "https://www.googleapis.com/auth/drive.metadata"
)

// ScopesSync are the scopes required to query folders and rewrite
// file descriptions.
var ScopesSync = []string{
	ScopeFull,
	ScopeMetadata,
}

// Drive MIME types
const (
	MimeTypeFolder      = "application/vnd.google-apps.folder"
	MimeTypeImagePrefix = "image/"
)

// ImageExtensions are the local file suffixes treated as images,
// compared case-insensitively.
var ImageExtensions = []string{".jpg", ".jpeg", ".png"}

// IsImagePath reports whether the path carries one of the image suffixes.
func IsImagePath(path string, extensions []string) bool {
	lower := strings.ToLower(path)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Retry configuration
const (
	DefaultMaxRetries   = 3
	DefaultRetryDelayMs = 1000
	MaxRetryDelayMs     = 32000
)

// Cache TTL for resolved folder prefixes
const DefaultCacheTTLSeconds = 300

// DefaultBatchConcurrency bounds simultaneous in-flight description updates
// during batch execution.
const DefaultBatchConcurrency = 5
