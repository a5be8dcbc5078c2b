// Package errors defines the sentinel errors shared across domain modules.
// Use cases return these to express business outcomes; HTTP handlers map them
// to status codes without inspecting infrastructure errors.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the operation collides with existing data.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means the input failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

// New returns an error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap adds context to err, preserving the chain for Is and As.
// Returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
