package types

// RemoteFile represents a file or folder in Google Drive. Only the fields
// the sync pipeline reads are carried; the full Drive surface stays behind
// the api.Store adapter.
type RemoteFile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mimeType,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsFolder reports whether the remote file is a Drive folder.
func (f *RemoteFile) IsFolder() bool {
	return f.MimeType == "application/vnd.google-apps.folder"
}

// RequestType categorizes API requests for logging
type RequestType string

const (
	RequestTypeListOrSearch RequestType = "list_or_search"
	RequestTypeUpdate       RequestType = "update"
)

// RequestContext carries per-request metadata through the API layer
type RequestContext struct {
	Profile     string
	RequestType RequestType
	TraceID     string
}
