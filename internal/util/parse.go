package util

import (
	"regexp"
	"strconv"
	"strings"
)

var nonNumericRegex = regexp.MustCompile(`[^\d]`)

// CleanNumericString strips everything but digits, including the thousands
// separators RFD renders in vote and reply counts ("1,234").
func CleanNumericString(s string) string {
	return nonNumericRegex.ReplaceAllString(s, "")
}

// ParseCount parses a scraped count, tolerating thousands separators and
// surrounding markup text. ok is false when no digits were present, in which
// case n is 0 and the caller decides whether to log the defaulting.
func ParseCount(s string) (n int, ok bool) {
	cleaned := CleanNumericString(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n, true
}
