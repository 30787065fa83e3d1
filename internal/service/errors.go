package service

import (
	"errors"
	"fmt"
)

// The error taxonomy of the document workflow. Every failure surfaced to the
// HTTP boundary is one of these; none are retried automatically. Retries are
// the caller's responsibility and must use a fresh request so a fresh object
// ID is minted.

var ErrNotFound = errors.New("document not found")

// ValidationError marks malformed or mismatched input. Nothing is persisted
// when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AccessDeniedError marks a clinical-history access attempt rejected by the
// authorization service. The attempt is still recorded in the audit log.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	if e.Reason == "" {
		return "access denied"
	}
	return fmt.Sprintf("access denied: %s", e.Reason)
}

// StorageError wraps a failure of the object-store integration.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DatabaseError wraps a persistence failure.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }
