package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword validates a password. Minimum 8 characters.
func ValidatePassword(password string) bool {
	return len(password) >= 8
}

// SanitizeEmail trims surrounding whitespace from an email address.
// Stored emails stay case-sensitive, so no case folding happens here.
func SanitizeEmail(email string) string {
	return strings.TrimSpace(email)
}
