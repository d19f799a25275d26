// internal/app/system/authutil/password.go
//
// Package authutil holds the admin password policy and bcrypt helpers.
package authutil

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Password validation constants
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	BcryptCost        = 12
)

// Password validation errors
var (
	ErrPasswordRequired   = errors.New("New password is required")
	ErrPasswordTooShort   = errors.New("New password must be at least 8 characters long")
	ErrPasswordTooLong    = errors.New("New password must be less than 128 characters")
	ErrPasswordComplexity = errors.New("Password must contain at least one uppercase letter, one lowercase letter, and one number")
	ErrPasswordCommon     = errors.New("This password is too common. Please choose a different one.")
)

// commonPasswords is a list of very common passwords that are blocked.
// Entries that already fail the complexity rule are omitted.
var commonPasswords = map[string]bool{
	"password1":   true,
	"password12":  true,
	"password123": true,
	"qwerty123":   true,
	"welcome1":    true,
	"welcome123":  true,
	"letmein1":    true,
	"admin123":    true,
	"iloveyou1":   true,
	"abcd1234":    true,
}

// PasswordRules returns a human-readable description of the password rules.
func PasswordRules() string {
	return "Password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a number."
}

// ValidatePassword checks if a password meets the requirements.
// Returns nil if valid, or an error describing the issue.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return ErrPasswordComplexity
	}

	// Check against common passwords (case-insensitive)
	if commonPasswords[strings.ToLower(password)] {
		return ErrPasswordCommon
	}

	return nil
}

// HashPassword hashes a password using bcrypt.
// The password should be validated with ValidatePassword first.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plain-text password with a bcrypt hash.
// Returns true if the password matches, false otherwise.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
