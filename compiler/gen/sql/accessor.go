package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/load"
)

// genAccessors generates the accessor functions of a table: by-field getters
// as package functions, setters as methods on the record. Tables with at
// least one setter also get an unexported reload helper.
func genAccessors(f *jen.File, t *gen.Type) {
	for _, a := range t.Accessors() {
		switch a.Kind {
		case load.GetOne, load.GetOptional:
			genGetSingle(f, t, a)
		case load.GetMany:
			genGetMany(f, t, a)
		case load.Set:
			genSetter(f, t, a)
		}
	}
	if t.HasSetters() {
		genReload(f, t)
	}
}

// accessorQuery returns the full-row SELECT keyed by the accessor field.
func accessorQuery(t *gen.Type, a *gen.Accessor) string {
	return selectQuery(t) + " WHERE " + a.Field.Column + " = " + t.Dialect.Placeholder(1)
}

func genGetSingle(f *jen.File, t *gen.Type, a *gen.Accessor) {
	r := t.Receiver()
	optional := a.Kind == load.GetOptional

	if optional {
		f.Commentf("%s returns the %s with the given %s, or nil when no row matches.", a.FuncName(), t.Name, a.Field.Name)
	} else {
		f.Commentf("%s returns the %s with the given %s.", a.FuncName(), t.Name, a.Field.Name)
	}
	f.Func().Id(a.FuncName()).Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Qual(runtimePkg, "ExecQuerier"),
		jen.Id(a.ArgName()).Add(typeToken(a.ArgType)),
	).Params(jen.Op("*").Id(t.Name), jen.Error()).BlockFunc(func(g *jen.Group) {
		g.List(jen.Id("rows"), jen.Id("err")).Op(":=").Id("db").Dot("QueryContext").Call(
			jen.Id("ctx"), jen.Lit(accessorQuery(t, a)), jen.Id(a.ArgName()),
		)
		g.If(jen.Id("err").Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Id("err")))
		g.Defer().Id("rows").Dot("Close").Call()
		g.If(jen.Op("!").Id("rows").Dot("Next").Call()).BlockFunc(func(b *jen.Group) {
			b.If(
				jen.Id("err").Op(":=").Id("rows").Dot("Err").Call(),
				jen.Id("err").Op("!=").Nil(),
			).Block(jen.Return(jen.Nil(), jen.Id("err")))
			if optional {
				b.Return(jen.Nil(), jen.Nil())
			} else {
				b.Return(jen.Nil(), jen.Qual(runtimePkg, "NewNotFoundError").Call(
					jen.Id(t.TableConstant()), jen.Lit(a.Field.Name),
				))
			}
		})
		scanOne(g, t, r)
		// A second row means the key is not unique; surface it instead of
		// silently returning the first match.
		g.If(jen.Id("rows").Dot("Next").Call()).Block(
			jen.Return(jen.Nil(), jen.Qual(runtimePkg, "NewNotSingularError").Call(
				jen.Id(t.TableConstant()), jen.Lit(a.Field.Name),
			)),
		)
		g.Return(jen.Id(r), jen.Nil())
	})
}

func genGetMany(f *jen.File, t *gen.Type, a *gen.Accessor) {
	r := t.Receiver()

	f.Commentf("%s returns every %s with the given %s.", a.FuncName(), t.Name, a.Field.Name)
	f.Func().Id(a.FuncName()).Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Qual(runtimePkg, "ExecQuerier"),
		jen.Id(a.ArgName()).Add(typeToken(a.ArgType)),
	).Params(jen.Index().Op("*").Id(t.Name), jen.Error()).BlockFunc(func(g *jen.Group) {
		g.List(jen.Id("rows"), jen.Id("err")).Op(":=").Id("db").Dot("QueryContext").Call(
			jen.Id("ctx"), jen.Lit(accessorQuery(t, a)), jen.Id(a.ArgName()),
		)
		g.If(jen.Id("err").Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Id("err")))
		g.Defer().Id("rows").Dot("Close").Call()
		g.Var().Id("out").Index().Op("*").Id(t.Name)
		g.For(jen.Id("rows").Dot("Next").Call()).BlockFunc(func(b *jen.Group) {
			scanOne(b, t, r)
			b.Id("out").Op("=").Append(jen.Id("out"), jen.Id(r))
		})
		g.Return(jen.Id("out"), jen.Id("rows").Dot("Err").Call())
	})
}

func genSetter(f *jen.File, t *gen.Type, a *gen.Accessor) {
	r := t.Receiver()
	query := "UPDATE " + t.Table +
		" SET " + a.Field.Column + " = " + t.Dialect.Placeholder(1) +
		" WHERE " + t.ID.Column + " = " + t.Dialect.Placeholder(2)

	f.Commentf("%s updates the %q column and reloads the record.", a.FuncName(), a.Field.Column)
	f.Func().Params(jen.Id(r).Op("*").Id(t.Name)).Id(a.FuncName()).Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Qual(runtimePkg, "ExecQuerier"),
		jen.Id(a.ArgName()).Add(typeToken(a.ArgType)),
	).Error().BlockFunc(func(g *jen.Group) {
		g.If(
			jen.List(jen.Id("_"), jen.Id("err")).Op(":=").Id("db").Dot("ExecContext").Call(
				jen.Id("ctx"), jen.Lit(query), jen.Id(a.ArgName()), jen.Id(r).Dot(t.ID.StructField()),
			),
			jen.Id("err").Op("!=").Nil(),
		).Block(jen.Return(jen.Id("err")))
		g.Return(jen.Id(r).Dot("reload").Call(jen.Id("ctx"), jen.Id("db")))
	})
}

// genReload generates the helper refreshing every field of the record after
// a setter ran. Database triggers and defaults may have touched other columns.
func genReload(f *jen.File, t *gen.Type) {
	r := t.Receiver()
	query := selectQuery(t) + " WHERE " + t.ID.Column + " = " + t.Dialect.Placeholder(1)

	f.Func().Params(jen.Id(r).Op("*").Id(t.Name)).Id("reload").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Qual(runtimePkg, "ExecQuerier"),
	).Error().BlockFunc(func(g *jen.Group) {
		g.List(jen.Id("rows"), jen.Id("err")).Op(":=").Id("db").Dot("QueryContext").Call(
			jen.Id("ctx"), jen.Lit(query), jen.Id(r).Dot(t.ID.StructField()),
		)
		g.If(jen.Id("err").Op("!=").Nil()).Block(jen.Return(jen.Id("err")))
		g.Defer().Id("rows").Dot("Close").Call()
		g.If(jen.Op("!").Id("rows").Dot("Next").Call()).Block(
			jen.If(
				jen.Id("err").Op(":=").Id("rows").Dot("Err").Call(),
				jen.Id("err").Op("!=").Nil(),
			).Block(jen.Return(jen.Id("err"))),
			jen.Return(jen.Qual(runtimePkg, "NewNotFoundError").Call(
				jen.Id(t.TableConstant()), jen.Lit(t.ID.Name),
			)),
		)
		g.List(jen.Id("row"), jen.Id("err")).Op(":=").Qual(runtimePkg, "ScanRows").Call(jen.Id("rows"))
		g.If(jen.Id("err").Op("!=").Nil()).Block(jen.Return(jen.Id("err")))
		g.Return(jen.Id(r).Dot("FromRow").Call(jen.Id("row")))
	})
}
