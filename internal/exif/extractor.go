package exif

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/dmateos/tagsync/internal/logging"
	"github.com/dmateos/tagsync/internal/utils"
)

const (
	defaultBinary = "exiftool"
	keywordsField = "IPTC:Keywords"
)

// Tool extracts keyword tags from image files by invoking exiftool once
// per file. Each invocation is independent and stateless; no stay-open
// process is kept around.
type Tool struct {
	binary string
	logger logging.Logger
}

// NewTool creates an extractor using the exiftool binary on PATH
func NewTool(logger logging.Logger) *Tool {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Tool{
		binary: defaultBinary,
		logger: logger,
	}
}

// CheckAvailable verifies the exiftool binary can be found
func (t *Tool) CheckAvailable() error {
	if _, err := exec.LookPath(t.binary); err != nil {
		return utils.NewAppError(utils.NewCLIError(utils.ErrCodeExtractorMissing,
			fmt.Sprintf("'%s' not found on PATH", t.binary)).Build())
	}
	return nil
}

// ExtractTags reads the keyword tags of one image file. A file without
// keywords yields a nil slice and no error; only a failed tool invocation
// or unparseable output is an error.
func (t *Tool) ExtractTags(ctx context.Context, path string) ([]string, error) {
	cmd := exec.CommandContext(ctx, t.binary, "-json", "-"+keywordsField, path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, utils.NewAppError(utils.NewCLIError(utils.ErrCodeExtractorFailed,
			fmt.Sprintf("exiftool failed for %s: %v", path, err)).
			WithContext("stderr", stderr.String()).
			Build())
	}

	tags, err := parseKeywords(stdout.Bytes())
	if err != nil {
		return nil, utils.NewAppError(utils.NewCLIError(utils.ErrCodeExtractorFailed,
			fmt.Sprintf("unparseable exiftool output for %s: %v", path, err)).Build())
	}

	t.logger.Debug("Extracted tags",
		logging.F("path", path),
		logging.F("count", len(tags)),
	)
	return tags, nil
}

// parseKeywords reads the keywords field out of exiftool's -json output.
// exiftool emits a one-element array of objects; the keywords value is an
// array when the file carries several tags but collapses to a bare scalar
// when it carries exactly one.
func parseKeywords(output []byte) ([]string, error) {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(output, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	raw, ok := records[0][keywordsField]
	if !ok {
		// No keywords on this file: a normal outcome, not a fault
		return nil, nil
	}

	var list []interface{}
	if err := json.Unmarshal(raw, &list); err == nil {
		tags := make([]string, 0, len(list))
		for _, v := range list {
			tags = append(tags, stringify(v))
		}
		return tags, nil
	}

	var single interface{}
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return []string{stringify(single)}, nil
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}
