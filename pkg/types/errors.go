package types

import (
	"errors"
	"fmt"
)

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Record operation errors. Repositories return ErrNotFound only from Get
// lookups; the service layer raises the rest.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidID          = errors.New("invalid record ID")
	ErrSystemProtected    = errors.New("system record is protected")
	ErrUnauthorized       = errors.New("credential verification failed")
	ErrMalformedID        = errors.New("malformed identifier")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

// DuplicateFieldError reports a uniqueness probe hit before a write was
// attempted. Field names the conflicting column ("username" or "email") and
// Value carries the rejected input so callers can build a denial message.
type DuplicateFieldError struct {
	Field string
	Value string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate %s: %q", e.Field, e.Value)
}

// Is reports whether target is a DuplicateFieldError with the same field.
// A target with an empty Field matches any duplicate-field error.
func (e *DuplicateFieldError) Is(target error) bool {
	t, ok := target.(*DuplicateFieldError)
	if !ok {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}
