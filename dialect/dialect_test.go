package dialect

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{MySQL, SQLite, Postgres} {
		d, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, d.Name())
	}
	_, ok := Lookup("oracle")
	assert.False(t, ok)
}

func TestPlaceholders(t *testing.T) {
	pg, _ := Lookup(Postgres)
	assert.Equal(t, "$1", pg.Placeholder(1))
	assert.Equal(t, "$13", pg.Placeholder(13))

	my, _ := Lookup(MySQL)
	lite, _ := Lookup(SQLite)
	assert.Equal(t, "?", my.Placeholder(1))
	assert.Equal(t, "?", my.Placeholder(9))
	assert.Equal(t, "?", lite.Placeholder(2))
}

func TestSupportsReturning(t *testing.T) {
	pg, _ := Lookup(Postgres)
	my, _ := Lookup(MySQL)
	lite, _ := Lookup(SQLite)
	assert.True(t, pg.SupportsReturning())
	assert.False(t, my.SupportsReturning())
	assert.True(t, lite.SupportsReturning())
}

func TestBindShape(t *testing.T) {
	pg, _ := Lookup(Postgres)
	stmt := jen.Add(pg.Bind(jen.Id("args"), jen.Id("u").Dot("Email")))
	assert.Equal(t, "args.Add(u.Email)", stmt.GoString())
}
