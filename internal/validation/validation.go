// Package validation provides input validation for registration fields.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minUsernameLen = 2
	maxUsernameLen = 20
	minPasswordLen = 6
	maxPasswordLen = 128
	maxBioLen      = 200
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidateUsername checks the username length bounds.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLen {
		return fmt.Errorf("username must be at least %d characters", minUsernameLen)
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username can not exceed %d characters", maxUsernameLen)
	}
	return nil
}

// ValidateEmail checks the email format. Emails are compared and stored
// lowercase; callers should normalize with NormalizeEmail first.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("please enter a valid email")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword checks password length before hashing.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLen)
	}
	return nil
}

// ValidateBio checks the optional bio length.
func ValidateBio(bio string) error {
	if len(bio) > maxBioLen {
		return fmt.Errorf("bio can not exceed %d characters", maxBioLen)
	}
	return nil
}
