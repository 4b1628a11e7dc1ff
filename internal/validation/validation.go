// Package validation contains input validation rules for account fields.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,30}$`)
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateUsername checks the username format.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return errors.New("username must be 3-30 characters of letters, digits, underscore or dot")
	}
	return nil
}

// ValidateEmail checks the email format.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword enforces a minimal strength policy.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain at least one letter and one digit")
	}
	return nil
}

// ParseDateOfBirth normalizes a date-of-birth string to a calendar date,
// dropping any time-of-day component.
func ParseDateOfBirth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New("invalid date of birth, expected YYYY-MM-DD")
}
