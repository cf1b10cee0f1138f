package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenPatches(t *testing.T) {
	typ := userType(t, "postgres")
	f := typ.NewFile()
	genPatches(f, typ)

	code := f.GoString()
	assert.Contains(t, code, "type UpdateUserNames struct")
	assert.Contains(t, code, "FirstName string")
	assert.Contains(t, code, "LastName  string")
	assert.Contains(t, code, "func (uun UpdateUserNames) Apply(ctx context.Context, db tablegen.ExecQuerier, u *User) error")
	// one statement updates every patched column, keyed by id
	assert.Contains(t, code, `"UPDATE users SET first_name = $1, last_name = $2 WHERE id = $3"`)
	assert.Contains(t, code, "args.Add(uun.FirstName)")
	assert.Contains(t, code, "args.Add(u.UserID)")
	// the record mirrors the patched values after the update
	assert.Contains(t, code, "u.FirstName = uun.FirstName")
	assert.Contains(t, code, "u.LastName = uun.LastName")
}

func TestGenPatchesMySQL(t *testing.T) {
	typ := userType(t, "mysql")
	f := typ.NewFile()
	genPatches(f, typ)

	assert.Contains(t, f.GoString(), "UPDATE users SET first_name = ?, last_name = ? WHERE id = ?")
}
