package sync

import "strings"

// descriptionSeparator joins tags into a description string
const descriptionSeparator = ", "

// BuildDescription joins tags in input order into a description string
// with no trailing separator. Tags containing the separator literal are
// not escaped; re-splitting such a description will not recover the
// original tags. Callers gate on a non-empty tag list; an empty input
// yields the empty string.
func BuildDescription(tags []string) string {
	return strings.Join(tags, descriptionSeparator)
}
