package utils

import "regexp"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks the email against a permissive shape check.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPassword enforces the minimum password length stored with the
// user document.
func IsValidPassword(password string) bool {
	return len(password) >= 5
}
