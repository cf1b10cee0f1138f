package sql

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/load"
)

// GenTable assembles the generated file of one table.
func GenTable(t *gen.Type) *jen.File {
	f := t.NewFile()
	genSchema(f, t)
	if t.Insertable {
		genInsert(f, t)
	}
	genAccessors(f, t)
	genPatches(f, t)
	if t.Deletable {
		genDelete(f, t)
	}
	return f
}

// Generate runs the full pipeline over the given descriptors: parse, resolve,
// emit and write. Parsing and resolution run to completion over every table
// before any violation is returned, so one run reports everything. When the
// descriptors and configuration digest to the snapshot of the previous run
// and every generated file is still on disk, generation is skipped.
func Generate(ctx context.Context, c *gen.Config, inputs []*load.TableInput) error {
	if c.Dialect == nil {
		return gen.NewConfigError("Dialect", nil, "dialect is required for generation")
	}
	if c.Target == "" {
		return gen.NewConfigError("Target", nil, "target is required for generation")
	}
	d := &load.Diagnostics{}
	tables := make([]*load.Table, 0, len(inputs))
	for _, in := range inputs {
		tables = append(tables, load.Parse(in, d))
	}
	types := make([]*gen.Type, 0, len(tables))
	for _, tab := range tables {
		if t := gen.Resolve(c, tab, d); t != nil {
			types = append(types, t)
		}
	}
	if err := d.Err(); err != nil {
		return err
	}
	snap, err := gen.ComputeSnapshot(c, tables)
	if err != nil {
		return err
	}
	if prev, ok := gen.ReadSnapshot(c.Target); ok && snap.Equal(prev) && outputsIntact(c.Target, types) {
		return nil
	}
	files := make(map[string]*jen.File, len(types))
	for _, t := range types {
		files[t.FileName()] = GenTable(t)
	}
	if err := gen.NewWriter(c.Target).Write(ctx, files); err != nil {
		return err
	}
	return snap.Write(c.Target)
}

// outputsIntact reports whether every generated file of the previous run is
// still on disk. A deleted output invalidates the snapshot skip.
func outputsIntact(dir string, types []*gen.Type) bool {
	for _, t := range types {
		if _, err := os.Stat(filepath.Join(dir, t.FileName())); err != nil {
			return false
		}
	}
	return true
}
