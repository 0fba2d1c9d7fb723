package utils

import (
	"net/url"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail is the intake-form email check, not an RFC parser.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidURL reports whether s parses as a well-formed absolute URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
