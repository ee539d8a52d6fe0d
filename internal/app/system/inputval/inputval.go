// Package inputval validates user-supplied account fields.
package inputval

import "strings"

// IsValidEmail reports whether s has the shape local@domain.tld:
// a non-empty local part, a single @, and a dotted domain. Leading,
// trailing, or consecutive dots are rejected on both sides, as are
// spaces anywhere.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}

	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}

	local, domain := s[:at], s[at+1:]
	if !validDotted(local) {
		return false
	}
	// Domain must contain at least one dot (single-label hosts are
	// not accepted for account emails).
	if !strings.Contains(domain, ".") {
		return false
	}
	return validDotted(domain)
}

// validDotted rejects empty parts and leading/trailing/consecutive
// dots.
func validDotted(part string) bool {
	if part == "" {
		return false
	}
	if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") {
		return false
	}
	return !strings.Contains(part, "..")
}
