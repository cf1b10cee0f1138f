// Package sql emits the per-table database-access code. Each table resolves
// to one file holding its schema artifacts (table constant, column list,
// record struct, binder, row constructor) and the CRUD operations enabled by
// its annotations. All SQL text is finalized at generation time: the selected
// dialect only decides placeholder syntax and how the inserted id is
// recovered.
package sql

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/dialect"
)

// runtimePkg is the import path of the runtime package generated code
// depends on.
const runtimePkg = "github.com/syssam/tablegen"

// placeholderList renders n comma-separated placeholders starting at the
// 1-based position start.
func placeholderList(d dialect.Dialect, start, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = d.Placeholder(start + i)
	}
	return strings.Join(ps, ", ")
}

// typeToken returns the code for a verbatim Go type token such as "int64",
// "*time.Time" or "[]byte". Imports referenced by qualified tokens are
// resolved by the writer's goimports pass.
func typeToken(s string) jen.Code {
	return jen.Id(s)
}
