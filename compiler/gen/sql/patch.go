package sql

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/compiler/gen"
)

// genPatches generates the partial-update artifacts of a table: one struct
// per patch and an Apply method updating the patched columns in a single
// statement, then mirroring the new values into the record.
func genPatches(f *jen.File, t *gen.Type) {
	for _, p := range t.Patches {
		genPatch(f, t, p)
	}
}

func genPatch(f *jen.File, t *gen.Type, p *gen.Patch) {
	r := p.Receiver()
	tr := t.Receiver()
	if r == tr {
		r = "p"
	}

	f.Commentf("%s updates a subset of the %s columns in one statement.", p.Name, t.Name)
	f.Type().Id(p.Name).StructFunc(func(g *jen.Group) {
		for _, fld := range p.Fields {
			g.Id(fld.StructField()).Add(typeToken(fld.Type))
		}
	})

	sets := make([]string, 0, len(p.Fields))
	for i, fld := range p.Fields {
		sets = append(sets, fld.Column+" = "+t.Dialect.Placeholder(i+1))
	}
	query := "UPDATE " + t.Table +
		" SET " + strings.Join(sets, ", ") +
		" WHERE " + t.ID.Column + " = " + t.Dialect.Placeholder(len(p.Fields)+1)

	f.Commentf("Apply updates the patched columns of the %s row and assigns the new values.", t.Name)
	f.Func().Params(jen.Id(r).Id(p.Name)).Id("Apply").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("db").Qual(runtimePkg, "ExecQuerier"),
		jen.Id(tr).Op("*").Id(t.Name),
	).Error().BlockFunc(func(g *jen.Group) {
		g.Id("args").Op(":=").Qual(runtimePkg, "NewArguments").Call()
		for _, fld := range p.Fields {
			g.Add(t.Dialect.Bind(jen.Id("args"), jen.Id(r).Dot(fld.StructField())))
		}
		g.Add(t.Dialect.Bind(jen.Id("args"), jen.Id(tr).Dot(t.ID.StructField())))
		g.If(
			jen.List(jen.Id("_"), jen.Id("err")).Op(":=").Id("db").Dot("ExecContext").Call(
				jen.Id("ctx"), jen.Lit(query), jen.Id("args").Dot("Values").Call().Op("..."),
			),
			jen.Id("err").Op("!=").Nil(),
		).Block(jen.Return(jen.Id("err")))
		for _, fld := range p.Fields {
			g.Id(tr).Dot(fld.StructField()).Op("=").Id(r).Dot(fld.StructField())
		}
		g.Return(jen.Nil())
	})
}
