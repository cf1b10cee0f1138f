package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/load"
)

func TestGenAccessorsGetOptional(t *testing.T) {
	typ := userType(t, "postgres")
	f := typ.NewFile()
	genAccessors(f, typ)

	code := f.GoString()
	assert.Contains(t, code, "func GetByEmail(ctx context.Context, db tablegen.ExecQuerier, email string) (*User, error)")
	assert.Contains(t, code, `"SELECT id, first_name, last_name, email, last_login FROM users WHERE email = $1"`)
	// get_optional: no row is not an error
	assert.Contains(t, code, "return nil, nil")
	assert.NotContains(t, code, "NewNotFoundError(UserTable, \"email\")")
	// a second match is always surfaced
	assert.Contains(t, code, `tablegen.NewNotSingularError(UserTable, "email")`)
}

func TestGenAccessorsGetOne(t *testing.T) {
	tab := userTable()
	tab.Fields[3].Accessors = []*load.Accessor{
		{Kind: load.GetOne, Name: "get_by_email", ArgType: "string"},
	}
	typ, err := gen.NewType(newConfig(t, "postgres"), tab)
	require.NoError(t, err)

	f := typ.NewFile()
	genAccessors(f, typ)

	code := f.GoString()
	assert.Contains(t, code, `tablegen.NewNotFoundError(UserTable, "email")`)
	assert.Contains(t, code, `tablegen.NewNotSingularError(UserTable, "email")`)
	assert.NotContains(t, code, "return nil, nil")
}

func TestGenAccessorsGetMany(t *testing.T) {
	tab := userTable()
	tab.Fields[2].Accessors = []*load.Accessor{
		{Kind: load.GetMany, Name: "get_by_last_name", ArgType: "string"},
	}
	typ, err := gen.NewType(newConfig(t, "postgres"), tab)
	require.NoError(t, err)

	f := typ.NewFile()
	genAccessors(f, typ)

	code := f.GoString()
	assert.Contains(t, code, "func GetByLastName(ctx context.Context, db tablegen.ExecQuerier, lastName string) ([]*User, error)")
	assert.Contains(t, code, "for rows.Next()")
	assert.Contains(t, code, "out = append(out, u)")
	assert.Contains(t, code, "return out, rows.Err()")
}

func TestGenAccessorsSetter(t *testing.T) {
	typ := userType(t, "postgres")
	f := typ.NewFile()
	genAccessors(f, typ)

	code := f.GoString()
	assert.Contains(t, code, "func (u *User) SetLastLogin(ctx context.Context, db tablegen.ExecQuerier, lastLogin *time.Time) error")
	assert.Contains(t, code, `"UPDATE users SET last_login = $1 WHERE id = $2"`)
	// setters reload the whole record: the database may have touched other columns
	assert.Contains(t, code, "return u.reload(ctx, db)")
	assert.Contains(t, code, "func (u *User) reload(ctx context.Context, db tablegen.ExecQuerier) error")
	assert.Contains(t, code, `"SELECT id, first_name, last_name, email, last_login FROM users WHERE id = $1"`)
}

func TestGenAccessorsNoSetterNoReload(t *testing.T) {
	tab := userTable()
	tab.Fields[4].Accessors = nil
	typ, err := gen.NewType(newConfig(t, "postgres"), tab)
	require.NoError(t, err)

	f := typ.NewFile()
	genAccessors(f, typ)

	assert.NotContains(t, f.GoString(), "reload")
}

func TestGenAccessorsMySQLPlaceholders(t *testing.T) {
	typ := userType(t, "mysql")
	f := typ.NewFile()
	genAccessors(f, typ)

	code := f.GoString()
	assert.Contains(t, code, "WHERE email = ?")
	assert.Contains(t, code, "UPDATE users SET last_login = ? WHERE id = ?")
}
