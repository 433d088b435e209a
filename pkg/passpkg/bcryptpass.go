// Package passpkg provides password hashing with bcrypt.
package passpkg

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt cost used to hash passwords.
const Cost = 12

// MaxLength is the longest password in bytes bcrypt takes into account.
const MaxLength = 72

// ErrPasswordTooLong is returned by Hash for passwords above MaxLength bytes.
var ErrPasswordTooLong = errors.New("password too long")

// Hash returns the bcrypt hash of the password.
func Hash(password string) (string, error) {
	if len(password) > MaxLength {
		return "", ErrPasswordTooLong
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedPassword), nil
}

// Check checks if the provided password is correct or not.
func Check(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
