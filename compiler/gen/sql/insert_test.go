package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/load"
)

func TestGenInsertPostgres(t *testing.T) {
	typ := userType(t, "postgres")
	f := typ.NewFile()
	genInsert(f, typ)

	code := f.GoString()
	assert.Contains(t, code, "type InsertUser struct")
	// fields minus the id minus the defaulted last_login
	assert.Contains(t, code, "FirstName string")
	assert.Contains(t, code, "Email")
	assert.NotContains(t, code, "UserID")
	assert.NotContains(t, code, "LastLogin")

	assert.Contains(t, code, "func (iu InsertUser) Insert(ctx context.Context, db tablegen.ExecQuerier) (int64, error)")
	assert.Contains(t, code, `"INSERT INTO users (first_name, last_name, email) VALUES ($1, $2, $3) RETURNING id"`)
	assert.Contains(t, code, "args.Add(iu.FirstName)")
	assert.Contains(t, code, "rows.Scan(&id)")
	assert.NotContains(t, code, "LastInsertId")
}

func TestGenInsertMySQL(t *testing.T) {
	typ := userType(t, "mysql")
	f := typ.NewFile()
	genInsert(f, typ)

	code := f.GoString()
	assert.Contains(t, code, `"INSERT INTO users (first_name, last_name, email) VALUES (?, ?, ?)"`)
	assert.Contains(t, code, "res.LastInsertId()")
	assert.Contains(t, code, "id = int64(last)")
	assert.NotContains(t, code, "RETURNING")
}

func TestGenInsertSQLite(t *testing.T) {
	typ := userType(t, "sqlite")
	f := typ.NewFile()
	genInsert(f, typ)

	code := f.GoString()
	assert.Contains(t, code, `VALUES (?, ?, ?) RETURNING id"`)
	assert.NotContains(t, code, "LastInsertId")
}

// A table whose every field is the id or database-generated still inserts:
// the statement carries no column list.
func TestGenInsertNoColumns(t *testing.T) {
	tab := &load.Table{
		Name:       "Heartbeat",
		TableName:  "heartbeats",
		IDField:    "heartbeat_id",
		Insertable: true,
		Fields: []*load.Field{
			{Name: "heartbeat_id", Type: "int64", Column: "id"},
			{Name: "seen_at", Type: "time.Time", Column: "seen_at", Default: true},
		},
	}

	typ, err := gen.NewType(newConfig(t, "postgres"), tab)
	require.NoError(t, err)
	f := typ.NewFile()
	genInsert(f, typ)
	assert.Contains(t, f.GoString(), `"INSERT INTO heartbeats DEFAULT VALUES RETURNING id"`)

	typ, err = gen.NewType(newConfig(t, "mysql"), tab)
	require.NoError(t, err)
	f = typ.NewFile()
	genInsert(f, typ)
	code := f.GoString()
	assert.Contains(t, code, `"INSERT INTO heartbeats () VALUES ()"`)
	assert.Contains(t, code, "res.LastInsertId()")
}

func TestGenInsertCustomName(t *testing.T) {
	tab := userTable()
	tab.InsertName = "NewUser"
	typ, err := gen.NewType(newConfig(t, "postgres"), tab)
	require.NoError(t, err)

	f := typ.NewFile()
	genInsert(f, typ)

	code := f.GoString()
	assert.Contains(t, code, "type NewUser struct")
	assert.Contains(t, code, "func (nu NewUser) Insert(")
	assert.NotContains(t, code, "InsertUser")
}
