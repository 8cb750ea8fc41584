package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// WriteError reports a failed durable save of a collection.
// It is surfaced to the caller and never retried silently.
type WriteError struct {
	Collection string
	Err        error
}

func NewWriteError(collection string, err error) error {
	return &WriteError{Collection: collection, Err: err}
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing collection %q: %v", e.Collection, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func IsWriteFailed(err error) bool {
	_, ok := errors.Cause(err).(*WriteError)
	return ok
}

// MalformedRowError reports a row that fails to decode against its expected
// schema (unparsable id, date or embedded structured field). It aborts only
// the read/transform that touched the row.
type MalformedRowError struct {
	Collection string
	RowID      string
	Err        error
}

func NewMalformedRowError(collection, rowID string, err error) error {
	return &MalformedRowError{Collection: collection, RowID: rowID, Err: err}
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row %s[%s]: %v", e.Collection, e.RowID, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

func IsMalformedRow(err error) bool {
	_, ok := errors.Cause(err).(*MalformedRowError)
	return ok
}
