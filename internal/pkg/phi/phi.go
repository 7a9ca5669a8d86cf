// Package phi detects and masks protected health information in free text
// before it reaches logs or external notification channels.
package phi

import (
	"regexp"
)

const redacted = "[REDACTED]"

// Patterns are checked in order; earlier, more specific patterns win so that
// e.g. a 13-digit SA ID number is not partially consumed by the phone pattern.
var patterns = []*regexp.Regexp{
	// South African ID number: 13 consecutive digits.
	regexp.MustCompile(`\b\d{13}\b`),
	// Email addresses.
	regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
	// Phone numbers: optional +27 or 0 prefix, 9-10 digits with optional separators.
	regexp.MustCompile(`(\+27|\b0)[\s\-]?\d{2}[\s\-]?\d{3}[\s\-]?\d{4}\b`),
	// Medical aid membership numbers, e.g. "MA-1234567" or "member no 12345678".
	regexp.MustCompile(`(?i)\b(?:MA|MED|MEM)[\-\s]?\d{6,10}\b`),
}

// Contains reports whether s matches any known PHI pattern.
func Contains(s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// Scrub replaces every PHI match in s with a redaction marker.
func Scrub(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, redacted)
	}
	return s
}
