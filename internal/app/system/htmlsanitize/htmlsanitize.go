// Package htmlsanitize strips markup from user-supplied text fields.
// Display names are stored and served as plain text, so the strict
// policy (no tags at all) applies.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML tags and attributes from s, returning the
// remaining text content.
func Strip(s string) string {
	return strict.Sanitize(s)
}
