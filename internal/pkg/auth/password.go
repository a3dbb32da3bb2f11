package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the hashing cost used for new passwords.
var BcryptCost = 12

// Password length bounds. bcrypt only accepts up to 72 bytes.
const (
	PasswordMinLength = 8
	PasswordMaxBytes  = 72
)

// Password policy violations. A rejected password may violate several rules,
// so ValidatePassword joins them.
var (
	ErrPasswordTooShort     = fmt.Errorf("This password is too short. It must contain at least %d characters.", PasswordMinLength)
	ErrPasswordTooLong      = fmt.Errorf("This password is too long. It must contain at most %d bytes.", PasswordMaxBytes)
	ErrPasswordNoLetter     = errors.New("This password must contain at least one letter.")
	ErrPasswordNoDigit      = errors.New("This password must contain at least one digit.")
	ErrPasswordTooSimilar   = errors.New("The password is too similar to your personal information.")
	ErrPasswordEntirelyDigs = errors.New("This password is entirely numeric.")
)

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a bcrypt hash with a plain-text password.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidatePassword applies the password policy. personal holds values the
// password must not contain (username, names, email local part); empty
// entries and entries shorter than three characters are ignored.
func ValidatePassword(password string, personal ...string) error {
	var errs []error

	if len([]rune(password)) < PasswordMinLength {
		errs = append(errs, ErrPasswordTooShort)
	}
	if len(password) > PasswordMaxBytes {
		errs = append(errs, ErrPasswordTooLong)
	}

	hasLetter, hasDigit := false, false
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if password != "" && !hasLetter && hasDigit && isAllDigits(password) {
		errs = append(errs, ErrPasswordEntirelyDigs)
	} else if !hasLetter {
		errs = append(errs, ErrPasswordNoLetter)
	}
	if !hasDigit {
		errs = append(errs, ErrPasswordNoDigit)
	}

	lowered := strings.ToLower(password)
	for _, attr := range personal {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if len(attr) < 3 {
			continue
		}
		if strings.Contains(lowered, attr) {
			errs = append(errs, ErrPasswordTooSimilar)
			break
		}
	}

	return errors.Join(errs...)
}

func isAllDigits(s string) bool {
	for _, char := range s {
		if !unicode.IsDigit(char) {
			return false
		}
	}
	return true
}
