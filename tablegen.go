// Package tablegen provides the runtime support consumed by generated code.
//
// The code generator (see compiler/gen and cmd/tablegen) emits per-table CRUD
// methods that depend only on the small surface defined here: an executor
// abstraction over database/sql, an ordered argument collector, and a by-name
// row reader. The actual database driver stays external to this package.
package tablegen

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"time"
)

// ExecQuerier wraps the standard Exec and Query methods. It is implemented
// by *sql.DB, *sql.Tx and the dialect/sql driver wrapper, allowing generated
// code to run inside or outside a transaction.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Arguments is an ordered collector of statement arguments. Generated
// Arguments methods bind every field into it in column order.
type Arguments struct {
	values []any
}

// NewArguments returns an empty argument collector.
func NewArguments() *Arguments {
	return &Arguments{}
}

// Add appends one argument to the collector.
func (a *Arguments) Add(v any) {
	a.values = append(a.values, v)
}

// Values returns the collected arguments in insertion order.
func (a *Arguments) Values() []any {
	return a.values
}

// Len returns the number of collected arguments.
func (a *Arguments) Len() int {
	return len(a.values)
}

// Row reads column values by name. Generated FromRow constructors use it to
// rebuild an entity from a result row without depending on column positions.
type Row interface {
	// TryGet assigns the value of the named column to dest, which must be
	// a non-nil pointer. It returns a *ScanError if the column does not
	// exist in the row or the value cannot be assigned.
	TryGet(column string, dest any) error
}

// values is the Row implementation backed by a column/value map.
type values map[string]any

// RowOf returns a Row over the given column/value pairs. It is used by tests
// and by callers that materialize rows themselves.
func RowOf(columns map[string]any) Row {
	return values(columns)
}

// TryGet implements Row.
func (v values) TryGet(column string, dest any) error {
	val, ok := v[column]
	if !ok {
		return &ScanError{Column: column, Err: fmt.Errorf("no such column")}
	}
	if err := assign(dest, val); err != nil {
		return &ScanError{Column: column, Err: err}
	}
	return nil
}

// ScanRows reads the current row of rows into a Row. The caller remains
// responsible for calling rows.Next and rows.Close.
func ScanRows(rows *sql.Rows) (Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	raw := make([]any, len(columns))
	for i := range raw {
		raw[i] = new(any)
	}
	if err := rows.Scan(raw...); err != nil {
		return nil, err
	}
	row := make(values, len(columns))
	for i, c := range columns {
		row[c] = *raw[i].(*any)
	}
	return row, nil
}

// assign converts a driver value into dest, a non-nil pointer.
func assign(dest, val any) error {
	if dest == nil {
		return fmt.Errorf("nil destination")
	}
	if sc, ok := dest.(sql.Scanner); ok {
		return sc.Scan(val)
	}
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("destination must be a non-nil pointer, got %T", dest)
	}
	elem := dv.Elem()
	// NULL assigns the zero value to pointer destinations and fails otherwise.
	if val == nil {
		if elem.Kind() == reflect.Pointer {
			elem.Set(reflect.Zero(elem.Type()))
			return nil
		}
		return fmt.Errorf("converting NULL to %s", elem.Type())
	}
	// Double pointers (nillable fields) allocate and assign through.
	if elem.Kind() == reflect.Pointer {
		p := reflect.New(elem.Type().Elem())
		if err := assign(p.Interface(), val); err != nil {
			return err
		}
		elem.Set(p)
		return nil
	}
	if vv, ok := val.(driver.Valuer); ok {
		v, err := vv.Value()
		if err != nil {
			return err
		}
		val = v
	}
	sv := reflect.ValueOf(val)
	switch {
	case sv.Type().AssignableTo(elem.Type()):
		elem.Set(sv)
		return nil
	case sv.Type().ConvertibleTo(elem.Type()) && compatibleKinds(sv.Kind(), elem.Kind()):
		elem.Set(sv.Convert(elem.Type()))
		return nil
	}
	// Drivers report text columns as []byte; time columns may arrive as strings.
	switch v := val.(type) {
	case []byte:
		if elem.Kind() == reflect.String {
			elem.SetString(string(v))
			return nil
		}
	case string:
		if t, ok := dest.(*time.Time); ok {
			parsed, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return err
			}
			*t = parsed
			return nil
		}
	}
	return fmt.Errorf("cannot assign %T to %s", val, elem.Type())
}

// compatibleKinds reports if a reflect conversion between the two kinds keeps
// the value meaning intact (numeric widening, named string/bytes types).
func compatibleKinds(src, dst reflect.Kind) bool {
	return numericKind(src) && numericKind(dst) ||
		src == reflect.String && dst == reflect.String ||
		src == reflect.Slice && dst == reflect.Slice
}

func numericKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}
