package validation

import (
	"errors"
	"strings"

	"github.com/goalboard/goalboard-api/internal/constants"
)

var (
	ErrPasswordTooShort  = errors.New("password must be at least 12 characters")
	ErrPasswordTooLong   = errors.New("password must not exceed 72 characters")
	ErrPasswordTooCommon = errors.New("password is too common, please choose a stronger one")
)

var commonPatterns = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// ValidatePassword checks a candidate password against the strength
// policy: minimum length, the bcrypt byte cap, and a small blocklist of
// common patterns.
func ValidatePassword(password string) error {
	if len(password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	if len(password) > constants.MaxPasswordLength {
		return ErrPasswordTooLong
	}

	lower := strings.ToLower(password)
	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return ErrPasswordTooCommon
		}
	}

	return nil
}
