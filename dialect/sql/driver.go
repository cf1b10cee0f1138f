// Package sql provides a thin wrapper over database/sql used by callers of
// generated code. It carries the dialect name next to the connection so the
// same generated methods can run against any supported engine.
package sql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/syssam/tablegen"
	"github.com/syssam/tablegen/dialect"
)

// Driver wraps *sql.DB together with its dialect name. It implements
// tablegen.ExecQuerier and can be handed directly to generated code.
type Driver struct {
	Conn
	dialect string
}

// NewDriver creates a new Driver with the given Conn and dialect.
func NewDriver(dialect string, c Conn) *Driver {
	return &Driver{dialect: dialect, Conn: c}
}

// Open wraps database/sql.Open and returns a Driver for the given dialect.
func Open(dialect, source string) (*Driver, error) {
	db, err := sql.Open(dialect, source)
	if err != nil {
		return nil, err
	}
	return NewDriver(dialect, Conn{db}), nil
}

// OpenDB wraps an existing *sql.DB with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, Conn{db})
}

// DB returns the underlying *sql.DB instance.
func (d Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect returns the normalized dialect name of the driver. Registered
// driver names such as "mysql+tls" map back to their engine name.
func (d Driver) Dialect() string {
	for _, name := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres} {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	return d.dialect
}

// Tx starts and returns a transaction scoped to the driver's connection.
func (d *Driver) Tx(ctx context.Context) (*Tx, error) {
	tx, err := d.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{Conn: Conn{tx}, tx: tx}, nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.DB().Close() }

// Tx is a transaction that satisfies tablegen.ExecQuerier, so generated code
// runs unchanged inside it.
type Tx struct {
	Conn
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error { return t.tx.Commit() }

// Rollback rolls back the transaction.
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// Conn implements tablegen.ExecQuerier given any ExecQuerier.
type Conn struct {
	tablegen.ExecQuerier
}
