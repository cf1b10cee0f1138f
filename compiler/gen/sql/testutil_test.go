package sql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/load"
)

func newConfig(t *testing.T, name string) *gen.Config {
	t.Helper()
	c, err := gen.NewConfig(gen.WithDialectName(name), gen.WithTarget(t.TempDir()))
	require.NoError(t, err)
	return c
}

// userTable is the running fixture: a users table with a database-assigned
// id under a different column name, an optional-by-email getter and a
// defaulted last_login column with a setter.
func userTable() *load.Table {
	return &load.Table{
		Name:       "User",
		TableName:  "users",
		IDField:    "user_id",
		Insertable: true,
		Deletable:  true,
		Fields: []*load.Field{
			{Name: "user_id", Type: "int64", Column: "id"},
			{Name: "first_name", Type: "string", Column: "first_name"},
			{Name: "last_name", Type: "string", Column: "last_name"},
			{Name: "email", Type: "string", Column: "email", Accessors: []*load.Accessor{
				{Kind: load.GetOptional, Name: "get_by_email", ArgType: "string"},
			}},
			{Name: "last_login", Type: "*time.Time", Column: "last_login", Default: true, Accessors: []*load.Accessor{
				{Kind: load.Set, Name: "set_last_login", ArgType: "*time.Time"},
			}},
		},
		Patches: []*load.Patch{
			{Name: "UpdateUserNames", Fields: []string{"first_name", "last_name"}},
		},
	}
}

func userType(t *testing.T, dialectName string) *gen.Type {
	t.Helper()
	typ, err := gen.NewType(newConfig(t, dialectName), userTable())
	require.NoError(t, err)
	return typ
}
