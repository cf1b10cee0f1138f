package tablegen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors returned by generated accessors.
var (
	// ErrNotFound is returned when a single-row accessor matches no row.
	ErrNotFound = errors.New("tablegen: row not found")

	// ErrNotSingular is returned when a single-row accessor matches more
	// than one row.
	ErrNotSingular = errors.New("tablegen: row not singular")
)

// NotFoundError is returned by generated get-one accessors when the query
// matches no row.
type NotFoundError struct {
	table string
	field string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.field != "" {
		return fmt.Sprintf("tablegen: %s not found by %s", e.table, e.field)
	}
	return fmt.Sprintf("tablegen: %s not found", e.table)
}

// Is reports whether the target error matches ErrNotFound.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Table returns the table name the lookup ran against.
func (e *NotFoundError) Table() string { return e.table }

// Field returns the field the lookup was keyed by, if any.
func (e *NotFoundError) Field() string { return e.field }

// NewNotFoundError returns a NotFoundError for a lookup on table by field.
func NewNotFoundError(table, field string) *NotFoundError {
	return &NotFoundError{table: table, field: field}
}

// IsNotFound reports whether the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NotSingularError is returned by generated get-one and get-optional
// accessors when the query matches more than one row.
type NotSingularError struct {
	table string
	field string
}

// Error returns the error string.
func (e *NotSingularError) Error() string {
	if e.field != "" {
		return fmt.Sprintf("tablegen: %s not singular by %s", e.table, e.field)
	}
	return fmt.Sprintf("tablegen: %s not singular", e.table)
}

// Is reports whether the target error matches ErrNotSingular.
func (e *NotSingularError) Is(err error) bool {
	return err == ErrNotSingular
}

// Table returns the table name the lookup ran against.
func (e *NotSingularError) Table() string { return e.table }

// Field returns the field the lookup was keyed by, if any.
func (e *NotSingularError) Field() string { return e.field }

// NewNotSingularError returns a NotSingularError for a lookup on table by field.
func NewNotSingularError(table, field string) *NotSingularError {
	return &NotSingularError{table: table, field: field}
}

// IsNotSingular reports whether the error is a NotSingularError.
func IsNotSingular(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSingularError
	return errors.As(err, &e) || errors.Is(err, ErrNotSingular)
}

// ScanError is returned by Row.TryGet when a column is missing from the row
// or its value cannot be assigned to the destination.
type ScanError struct {
	Column string
	Err    error
}

// Error returns the error string.
func (e *ScanError) Error() string {
	return fmt.Sprintf("tablegen: scan column %q: %v", e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error { return e.Err }
