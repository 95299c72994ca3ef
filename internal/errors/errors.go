// Package errors holds the sentinel errors shared by every layer. Codecs and use cases
// wrap them; the HTTP and CLI edges only ever test against these five.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: no vault is stored under the requested name.
	ErrNotFound = errors.New("not found")
	// ErrConflict: stored content changed between read and write-back.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput: malformed envelope, payload or request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized: the master password did not open the envelope.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable: the crypto provider or storage backend cannot serve requests.
	ErrUnavailable = errors.New("unavailable")
)

// Wrap prefixes err with message and keeps it matchable with Is. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is is errors.Is, re-exported so callers need a single errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
