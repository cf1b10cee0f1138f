package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/load"
)

func TestGenSchema(t *testing.T) {
	typ := userType(t, "postgres")
	f := typ.NewFile()
	genSchema(f, typ)

	code := f.GoString()
	assert.Contains(t, code, `UserTable = "users"`)
	assert.Contains(t, code, `UserColumns = []string{"id", "first_name", "last_name", "email", "last_login"}`)
	assert.Contains(t, code, "type User struct")
	assert.Contains(t, code, "UserID")
	assert.Contains(t, code, "FirstName string")
	assert.Contains(t, code, "LastLogin *time.Time")
	assert.Contains(t, code, "func (u *User) Arguments(args *tablegen.Arguments)")
	assert.Contains(t, code, "args.Add(u.UserID)")
	assert.Contains(t, code, "args.Add(u.LastLogin)")
	assert.Contains(t, code, "func (u *User) FromRow(row tablegen.Row) error")
	assert.Contains(t, code, `row.TryGet("id", &u.UserID)`)
	assert.Contains(t, code, `row.TryGet("last_login", &u.LastLogin)`)
}

func TestGenSchemaCustomType(t *testing.T) {
	tab := userTable()
	tab.Fields = append(tab.Fields, &load.Field{
		Name: "role", Type: "Role", Column: "role",
		CustomType: true, TypeOverride: "string",
	})
	typ, err := gen.NewType(newConfig(t, "postgres"), tab)
	require.NoError(t, err)

	f := typ.NewFile()
	genSchema(f, typ)

	code := f.GoString()
	// Custom fields are read back through the override type and converted.
	assert.Contains(t, code, "var v5 string")
	assert.Contains(t, code, `row.TryGet("role", &v5)`)
	assert.Contains(t, code, "u.Role = Role(v5)")
}

func TestSelectQuery(t *testing.T) {
	typ := userType(t, "postgres")
	assert.Equal(t,
		"SELECT id, first_name, last_name, email, last_login FROM users",
		selectQuery(typ),
	)
}
