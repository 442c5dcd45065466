package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyEmail indicates the email address is empty
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail indicates the email address is malformed
	ErrInvalidEmail = errors.New("email address is not valid")

	// ErrPasswordTooShort indicates the password is shorter than 6 characters
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

	// ErrPasswordTooWeak indicates the password lacks a letter or a digit
	ErrPasswordTooWeak = errors.New("password must contain at least one letter and one number")

	// ErrNameTooShort indicates the display name is shorter than 2 characters
	ErrNameTooShort = errors.New("name must be at least 2 characters long")
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterRegex = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex  = regexp.MustCompile(`\d`)
)

// ValidateEmail checks the shape of an email address.
// Returns the trimmed address and an error if invalid.
func ValidateEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", ErrEmptyEmail
	}
	if !emailRegex.MatchString(trimmed) {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

// ValidatePassword checks minimum password strength: at least 6 characters
// containing at least one letter and one digit
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if !letterRegex.MatchString(password) || !digitRegex.MatchString(password) {
		return ErrPasswordTooWeak
	}
	return nil
}

// ValidateName checks that a display name has at least 2 visible characters.
// Returns the trimmed name and an error if invalid.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return "", ErrNameTooShort
	}
	return trimmed, nil
}
