// Package dialect encodes the per-engine differences the code generator has
// to know about: placeholder syntax, RETURNING-clause availability, and the
// call shape used to bind an argument into the collector.
//
// Each supported engine is a pure value with no mutable state. A dialect is
// selected once per generation run and passed to every emitter; it is either
// compiled in (Postgres, MySQL, SQLite) or not available.
package dialect

import (
	"strconv"

	"github.com/dave/jennifer/jen"
)

// Engine name constants. They double as database/sql driver names for the
// dialect/sql wrapper.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Dialect describes one database engine for code emission.
type Dialect interface {
	// Name returns the engine name (one of the package constants).
	Name() string

	// Placeholder returns the statement placeholder for the n-th argument.
	// n is 1-based.
	Placeholder(n int) string

	// SupportsReturning reports whether the engine can return the inserted
	// id through a RETURNING clause. Engines without it recover the id in
	// a follow-up step (LastInsertId).
	SupportsReturning() bool

	// Bind returns the call expression binding one argument value into the
	// argument collector.
	Bind(collector, value jen.Code) jen.Code
}

// Lookup returns the dialect for the given engine name.
func Lookup(name string) (Dialect, bool) {
	switch name {
	case MySQL:
		return mysql{}, true
	case SQLite:
		return sqlite{}, true
	case Postgres:
		return postgres{}, true
	}
	return nil, false
}

type postgres struct{}

func (postgres) Name() string             { return Postgres }
func (postgres) Placeholder(n int) string { return "$" + strconv.Itoa(n) }
func (postgres) SupportsReturning() bool  { return true }
func (postgres) Bind(c, v jen.Code) jen.Code {
	return jen.Add(c).Dot("Add").Call(v)
}

type mysql struct{}

func (mysql) Name() string            { return MySQL }
func (mysql) Placeholder(int) string  { return "?" }
func (mysql) SupportsReturning() bool { return false }
func (mysql) Bind(c, v jen.Code) jen.Code {
	return jen.Add(c).Dot("Add").Call(v)
}

type sqlite struct{}

func (sqlite) Name() string            { return SQLite }
func (sqlite) Placeholder(int) string  { return "?" }
func (sqlite) SupportsReturning() bool { return true }
func (sqlite) Bind(c, v jen.Code) jen.Code {
	return jen.Add(c).Dot("Add").Call(v)
}
