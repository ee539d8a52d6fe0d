// Package normalize trims user-supplied identity fields before
// validation and storage. Emails are matched case-sensitively, so no
// case folding happens here; only surrounding whitespace is removed.
package normalize

import "strings"

// Email trims surrounding whitespace. Case is preserved: two emails
// differing only in case are distinct accounts.
func Email(s string) string {
	return strings.TrimSpace(s)
}

// Name trims surrounding whitespace, preserving interior spacing and
// case.
func Name(s string) string {
	return strings.TrimSpace(s)
}
