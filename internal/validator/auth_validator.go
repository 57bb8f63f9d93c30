package validator

import (
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)
)

// IsEmail checks the loose shape local@domain.tld. Full RFC validation is
// not attempted; the mail provider is the real validator.
func IsEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsUsername allows 3-30 characters of letters, digits, underscore and
// hyphen.
func IsUsername(s string) bool {
	return usernamePattern.MatchString(s)
}
