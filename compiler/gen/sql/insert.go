package sql

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/dialect"
)

// genInsert generates the insert artifact of a table: a struct holding every
// non-id, non-default field and an Insert method returning the new row id.
func genInsert(f *jen.File, t *gen.Type) {
	name := t.InsertTypeName()
	r := t.InsertReceiver()
	fields := t.InsertFields()

	f.Commentf("%s holds the caller-provided fields of a new %s row.", name, t.Name)
	f.Commentf("Database-generated columns are filled by the database on insert.")
	f.Type().Id(name).StructFunc(func(g *jen.Group) {
		for _, fld := range fields {
			g.Id(fld.StructField()).Add(typeToken(fld.Type))
		}
	})

	query := "INSERT INTO " + t.Table + insertValues(t, fields)

	f.Commentf("Insert creates the row and returns the database-assigned id.")
	f.Func().Params(jen.Id(r).Id(name)).Id("Insert").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Qual(runtimePkg, "ExecQuerier"),
	).Params(typeToken(t.ID.Type), jen.Error()).BlockFunc(func(g *jen.Group) {
		g.Var().Id("id").Add(typeToken(t.ID.Type))
		g.Id("args").Op(":=").Qual(runtimePkg, "NewArguments").Call()
		for _, fld := range fields {
			g.Add(t.Dialect.Bind(jen.Id("args"), jen.Id(r).Dot(fld.StructField())))
		}
		if t.Dialect.SupportsReturning() {
			genInsertReturning(g, t, query)
		} else {
			genInsertLastID(g, t, query)
		}
	})
}

// insertValues returns the column/placeholder clause of the insert statement.
// A table whose every field is the id or database-generated has no columns to
// bind; MySQL has no DEFAULT VALUES clause and spells that insert differently.
func insertValues(t *gen.Type, fields []*gen.Field) string {
	if len(fields) == 0 {
		if t.Dialect.Name() == dialect.MySQL {
			return " () VALUES ()"
		}
		return " DEFAULT VALUES"
	}
	cols := make([]string, 0, len(fields))
	for _, fld := range fields {
		cols = append(cols, fld.Column)
	}
	return " (" + strings.Join(cols, ", ") + ")" +
		" VALUES (" + placeholderList(t.Dialect, 1, len(cols)) + ")"
}

// genInsertReturning recovers the id through a RETURNING clause.
func genInsertReturning(g *jen.Group, t *gen.Type, query string) {
	query += " RETURNING " + t.ID.Column
	g.List(jen.Id("rows"), jen.Id("err")).Op(":=").Id("db").Dot("QueryContext").Call(
		jen.Id("ctx"), jen.Lit(query), jen.Id("args").Dot("Values").Call().Op("..."),
	)
	g.If(jen.Id("err").Op("!=").Nil()).Block(jen.Return(jen.Id("id"), jen.Id("err")))
	g.Defer().Id("rows").Dot("Close").Call()
	g.If(jen.Op("!").Id("rows").Dot("Next").Call()).Block(
		jen.If(
			jen.Id("err").Op(":=").Id("rows").Dot("Err").Call(),
			jen.Id("err").Op("!=").Nil(),
		).Block(jen.Return(jen.Id("id"), jen.Id("err"))),
		jen.Return(jen.Id("id"), jen.Qual(runtimePkg, "NewNotFoundError").Call(
			jen.Id(t.TableConstant()), jen.Lit(t.ID.Name),
		)),
	)
	g.If(
		jen.Id("err").Op(":=").Id("rows").Dot("Scan").Call(jen.Op("&").Id("id")),
		jen.Id("err").Op("!=").Nil(),
	).Block(jen.Return(jen.Id("id"), jen.Id("err")))
	g.Return(jen.Id("id"), jen.Nil())
}

// genInsertLastID recovers the id from the driver (MySQL has no RETURNING).
func genInsertLastID(g *jen.Group, t *gen.Type, query string) {
	g.List(jen.Id("res"), jen.Id("err")).Op(":=").Id("db").Dot("ExecContext").Call(
		jen.Id("ctx"), jen.Lit(query), jen.Id("args").Dot("Values").Call().Op("..."),
	)
	g.If(jen.Id("err").Op("!=").Nil()).Block(jen.Return(jen.Id("id"), jen.Id("err")))
	g.List(jen.Id("last"), jen.Id("err")).Op(":=").Id("res").Dot("LastInsertId").Call()
	g.If(jen.Id("err").Op("!=").Nil()).Block(jen.Return(jen.Id("id"), jen.Id("err")))
	g.Id("id").Op("=").Add(typeToken(t.ID.Type)).Call(jen.Id("last"))
	g.Return(jen.Id("id"), jen.Nil())
}
