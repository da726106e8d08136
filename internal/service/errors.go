package service

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

var (
	ErrTitleRequired      = &ValidationError{Field: "title", Message: "title and content are required"}
	ErrContentRequired    = &ValidationError{Field: "content", Message: "title and content are required"}
	ErrPassphraseRequired = &ValidationError{Field: "passphrase", Message: "passphrase is required"}
	ErrTitleTooLong       = &ValidationError{Field: "title", Message: "title must be at most 500 characters"}
	ErrMoodTooLong        = &ValidationError{Field: "mood", Message: "mood must be at most 64 characters"}

	ErrUnauthorized      = errors.New("unauthorized")
	ErrPoemNotFound      = errors.New("shayari not found")
	ErrInvalidPassphrase = errors.New("incorrect passphrase")
)

// StorageError wraps a failed database operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
