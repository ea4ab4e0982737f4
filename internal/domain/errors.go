package domain

import (
	"errors"
	"fmt"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ErrNoCharactersAvailable is returned when nothing is eligible to be stolen.
var ErrNoCharactersAvailable = errors.New("no characters available for Rick Prime to steal")

// ErrMigrationConflict means the selected character stopped being eligible
// between selection and migration.
var ErrMigrationConflict = errors.New("character changed before it could be migrated")

// ErrInvalidID is returned for identifiers the store cannot parse.
var ErrInvalidID = errors.New("invalid character id")

// StoreWriteFailedError reports a failed step of a multi-step write.
type StoreWriteFailedError struct {
	Step string
	Err  error
}

func (e StoreWriteFailedError) Error() string {
	if e.Step == "" && e.Err == nil {
		return "store write failed"
	}
	if e.Err == nil {
		return fmt.Sprintf("store write failed at %s", e.Step)
	}
	return fmt.Sprintf("store write failed at %s: %v", e.Step, e.Err)
}

func (e StoreWriteFailedError) Unwrap() error {
	return e.Err
}

// Is enables errors.Is matching on StoreWriteFailedError.
func (e StoreWriteFailedError) Is(target error) bool {
	_, ok := target.(StoreWriteFailedError)
	if ok {
		return true
	}
	_, ok = target.(*StoreWriteFailedError)
	return ok
}

// ErrStoreWriteFailed is the sentinel error for failed writes.
var ErrStoreWriteFailed = StoreWriteFailedError{}

// ValidationError rejects a request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

var ErrValidation = ValidationError{}

// MalformedDocumentError is returned when a stored character lacks a
// required field.
type MalformedDocumentError struct {
	ID    string
	Field string
}

func (e MalformedDocumentError) Error() string {
	return fmt.Sprintf("document %s is missing %s", e.ID, e.Field)
}
