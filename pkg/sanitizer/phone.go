package sanitizer

import "strings"

// CleanPhone strips hyphens for comparison. Stored phones keep whatever
// separators the customer typed; only the match key is normalized.
func CleanPhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), "-", "")
}

// SamePhone reports whether two free-text phone numbers denote the same
// number under hyphen-insensitive comparison.
func SamePhone(a, b string) bool {
	ca, cb := CleanPhone(a), CleanPhone(b)
	return ca != "" && ca == cb
}
