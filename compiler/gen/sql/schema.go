package sql

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/compiler/gen"
)

// genSchema generates the schema artifacts of a table: the table-name
// constant, the column list, the record struct, the argument binder and the
// row constructor.
func genSchema(f *jen.File, t *gen.Type) {
	r := t.Receiver()

	f.Commentf("%s holds the database table name of %s.", t.TableConstant(), t.Name)
	f.Const().Id(t.TableConstant()).Op("=").Lit(t.Table)

	f.Commentf("%s holds the columns of table %q in field declaration order.", t.ColumnsVar(), t.Table)
	f.Var().Id(t.ColumnsVar()).Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, c := range t.Columns() {
			g.Lit(c)
		}
	})

	f.Commentf("%s is the model of table %q.", t.Name, t.Table)
	f.Type().Id(t.Name).StructFunc(func(g *jen.Group) {
		for _, fld := range t.Fields {
			g.Id(fld.StructField()).Add(typeToken(fld.Type))
		}
	})

	f.Comment("Arguments binds every field value into args in column order.")
	f.Func().Params(jen.Id(r).Op("*").Id(t.Name)).Id("Arguments").Params(
		jen.Id("args").Op("*").Qual(runtimePkg, "Arguments"),
	).BlockFunc(func(g *jen.Group) {
		for _, fld := range t.Fields {
			g.Add(t.Dialect.Bind(jen.Id("args"), jen.Id(r).Dot(fld.StructField())))
		}
	})

	f.Commentf("FromRow rebuilds the %s from a result row by column name.", t.Name)
	f.Func().Params(jen.Id(r).Op("*").Id(t.Name)).Id("FromRow").Params(
		jen.Id("row").Qual(runtimePkg, "Row"),
	).Error().BlockFunc(func(g *jen.Group) {
		for i, fld := range t.Fields {
			if fld.CustomType {
				// Custom fields are read back through the override type and
				// converted.
				v := fmt.Sprintf("v%d", i)
				g.Var().Id(v).Add(typeToken(fld.TypeOverride))
				g.If(
					jen.Id("err").Op(":=").Id("row").Dot("TryGet").Call(jen.Lit(fld.Column), jen.Op("&").Id(v)),
					jen.Id("err").Op("!=").Nil(),
				).Block(jen.Return(jen.Id("err")))
				g.Id(r).Dot(fld.StructField()).Op("=").Add(typeToken(fld.Type)).Call(jen.Id(v))
				continue
			}
			g.If(
				jen.Id("err").Op(":=").Id("row").Dot("TryGet").Call(jen.Lit(fld.Column), jen.Op("&").Id(r).Dot(fld.StructField())),
				jen.Id("err").Op("!=").Nil(),
			).Block(jen.Return(jen.Id("err")))
		}
		g.Return(jen.Nil())
	})
}

// selectQuery returns the full-row SELECT of the table, without a WHERE
// clause.
func selectQuery(t *gen.Type) string {
	return "SELECT " + strings.Join(t.Columns(), ", ") + " FROM " + t.Table
}

// scanOne appends the statements reading the current row of rows into a new
// record bound to name.
func scanOne(g *jen.Group, t *gen.Type, name string) {
	g.List(jen.Id("row"), jen.Id("err")).Op(":=").Qual(runtimePkg, "ScanRows").Call(jen.Id("rows"))
	g.If(jen.Id("err").Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Id("err")))
	g.Id(name).Op(":=").Op("&").Id(t.Name).Values()
	g.If(
		jen.Id("err").Op(":=").Id(name).Dot("FromRow").Call(jen.Id("row")),
		jen.Id("err").Op("!=").Nil(),
	).Block(jen.Return(jen.Nil(), jen.Id("err")))
}
