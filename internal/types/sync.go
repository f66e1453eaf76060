package types

// LocalImage represents one image file under the configured local root.
// Instances are produced by directory enumeration and are immutable for the
// duration of a synchronization run.
type LocalImage struct {
	// RelativePath is slash-separated and relative to the local root,
	// e.g. "vacation/2024/beach.jpg".
	RelativePath string
	// AbsPath is the absolute filesystem path, used for metadata extraction.
	AbsPath string
	// Tags holds the extracted keywords in tool order, duplicates preserved.
	Tags []string
}

// BatchItem is one queued description update: a remote file ID paired with
// the description to write. Token correlates the item with its outcome; a
// local image matching several remote files produces one item per match.
type BatchItem struct {
	Token       string
	FileID      string
	Description string
	// LocalPath records which local image produced this item, for reporting.
	LocalPath string
}

// UpdateOutcome is the per-item result of a batch execution. Exactly one
// outcome is produced for every submitted BatchItem.
type UpdateOutcome struct {
	Token string
	// Name is the remote file name, set when the update succeeded.
	Name string
	// LocalPath is the local image the item came from, for reporting.
	LocalPath string
	Err       error
}

// Updated reports whether the item was applied successfully.
func (o UpdateOutcome) Updated() bool {
	return o.Err == nil
}
