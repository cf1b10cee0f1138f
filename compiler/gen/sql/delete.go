package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/compiler/gen"
)

// genDelete generates the Delete method removing the record's row by id.
func genDelete(f *jen.File, t *gen.Type) {
	r := t.Receiver()
	query := "DELETE FROM " + t.Table + " WHERE " + t.ID.Column + " = " + t.Dialect.Placeholder(1)

	f.Commentf("Delete removes the %s row from the database.", t.Name)
	f.Func().Params(jen.Id(r).Op("*").Id(t.Name)).Id("Delete").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Qual(runtimePkg, "ExecQuerier"),
	).Error().Block(
		jen.List(jen.Id("_"), jen.Id("err")).Op(":=").Id("db").Dot("ExecContext").Call(
			jen.Id("ctx"), jen.Lit(query), jen.Id(r).Dot(t.ID.StructField()),
		),
		jen.Return(jen.Id("err")),
	)
}
