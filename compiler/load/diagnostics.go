package load

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDescriptor is the sentinel matched by every descriptor error.
var ErrInvalidDescriptor = errors.New("tablegen: invalid descriptor")

// Code classifies a descriptor error.
type Code uint8

// Descriptor error codes. Every code is detected at generation time, never
// at runtime of the generated code.
const (
	CodeUnknownKey Code = iota + 1
	CodeInvalidValue
	CodeMissingID
	CodeDuplicateID
	CodeMissingTypeOverride
	CodeDuplicateAccessor
	CodeDanglingReference
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeUnknownKey:
		return "UnknownAnnotationKey"
	case CodeInvalidValue:
		return "InvalidValue"
	case CodeMissingID:
		return "MissingID"
	case CodeDuplicateID:
		return "DuplicateID"
	case CodeMissingTypeOverride:
		return "MissingTypeOverride"
	case CodeDuplicateAccessor:
		return "DuplicateAccessorKind"
	case CodeDanglingReference:
		return "DanglingAccessorReference"
	default:
		return fmt.Sprintf("Code(%d)", c)
	}
}

// Error is one descriptor violation, tagged with the annotation's source
// location.
type Error struct {
	Code    Code
	Table   string // record name, if known
	Field   string // field name, if applicable
	Pos     Position
	Message string
}

// Error returns the error string.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("tablegen: ")
	if p := e.Pos.String(); p != "" {
		b.WriteString(p)
		b.WriteString(": ")
	}
	if e.Table != "" {
		b.WriteString(e.Table)
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	fmt.Fprintf(&b, " (%s)", e.Code)
	return b.String()
}

// Is reports whether the target matches the descriptor sentinel error.
func (e *Error) Is(target error) bool {
	return target == ErrInvalidDescriptor
}

// IsDescriptorError reports whether the error is a descriptor Error.
func IsDescriptorError(err error) bool {
	var e *Error
	return errors.As(err, &e) || errors.Is(err, ErrInvalidDescriptor)
}

// Diagnostics aggregates descriptor errors across the parse and build
// phases. A single run collects every violation instead of stopping at
// the first one.
type Diagnostics struct {
	errs []*Error
}

// Report records one violation.
func (d *Diagnostics) Report(err *Error) {
	d.errs = append(d.errs, err)
}

// Reportf records one violation built from a format string.
func (d *Diagnostics) Reportf(code Code, table, field string, pos Position, format string, args ...any) {
	d.Report(&Error{
		Code:    code,
		Table:   table,
		Field:   field,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// Errors returns every recorded violation in report order.
func (d *Diagnostics) Errors() []*Error {
	return d.errs
}

// Empty reports whether no violation has been recorded.
func (d *Diagnostics) Empty() bool {
	return len(d.errs) == 0
}

// Err returns nil when no violation was recorded, otherwise an error
// aggregating all of them. The result matches ErrInvalidDescriptor.
func (d *Diagnostics) Err() error {
	if len(d.errs) == 0 {
		return nil
	}
	errs := make([]error, len(d.errs))
	for i, e := range d.errs {
		errs[i] = e
	}
	return errors.Join(errs...)
}
