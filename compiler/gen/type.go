package gen

import (
	"github.com/syssam/tablegen/compiler/load"
)

// The following types and their exported methods are used by the emitters
// to generate the per-table artifacts.
type (
	// Type is the fully resolved model of one table, ready for emission.
	Type struct {
		*Config
		// Name holds the record (Go type) name.
		Name string
		// Table holds the database table name.
		Table string
		// ID holds the single id field of the table.
		ID *Field
		// Fields holds every field in declaration order, the id field
		// included. The order drives the generated column lists.
		Fields []*Field
		// Insertable reports whether an insert artifact is generated.
		Insertable bool
		// InsertName is the custom insert type name, empty for the default.
		InsertName string
		// Deletable reports whether a delete artifact is generated.
		Deletable bool
		// Patches holds the partial-update artifacts of the table.
		Patches []*Patch
	}

	// Field is one resolved record field.
	Field struct {
		typ *Type
		// Name is the snake_case field name from the descriptor.
		Name string
		// Type is the Go type token of the field.
		Type string
		// Column is the database column name.
		Column string
		// ID marks the single row-identifying field.
		ID bool
		// Default marks database-generated fields, excluded from inserts.
		Default bool
		// CustomType marks fields read back through an override type.
		CustomType bool
		// TypeOverride is the type a custom field is read back as.
		TypeOverride string
		// Accessors holds the accessor directives of the field.
		Accessors []*Accessor
	}

	// Accessor is one resolved accessor directive.
	Accessor struct {
		// Field is the field the accessor is keyed by.
		Field *Field
		// Kind is the accessor shape.
		Kind load.AccessorKind
		// Name is the generated function name in snake form.
		Name string
		// ArgType is the Go type token of the accessor argument.
		ArgType string
	}

	// Patch is one resolved partial-update artifact.
	Patch struct {
		typ *Type
		// Name is the generated patch type name.
		Name string
		// Fields holds the patched fields in declaration order.
		Fields []*Field
	}
)

// Resolve validates the cross-field invariants of a parsed descriptor and
// returns the emission model. Every violation is reported to d; when any is
// found the result is nil. Resolve never stops at the first violation.
func Resolve(c *Config, tab *load.Table, d *load.Diagnostics) *Type {
	before := len(d.Errors())
	t := &Type{
		Config:     c,
		Name:       tab.Name,
		Table:      tab.TableName,
		Insertable: tab.Insertable,
		InsertName: tab.InsertName,
		Deletable:  tab.Deletable,
	}
	fields := make(map[string]*Field, len(tab.Fields))
	for _, fd := range tab.Fields {
		f := &Field{
			typ:          t,
			Name:         fd.Name,
			Type:         fd.Type,
			Column:       fd.Column,
			ID:           fd.ID,
			Default:      fd.Default,
			CustomType:   fd.CustomType,
			TypeOverride: fd.TypeOverride,
		}
		if f.CustomType && f.TypeOverride == "" {
			d.Reportf(load.CodeMissingTypeOverride, t.Name, f.Name, fd.Pos,
				"custom_type field requires a read-back type override")
		}
		resolveAccessors(t, f, fd, d)
		t.Fields = append(t.Fields, f)
		fields[f.Name] = f
	}
	resolveID(t, tab, fields, d)
	for _, p := range tab.Patches {
		if rp := resolvePatch(t, p, fields, d); rp != nil {
			t.Patches = append(t.Patches, rp)
		}
	}
	if len(d.Errors()) > before {
		return nil
	}
	return t
}

// NewType is the single-shot variant of Resolve.
func NewType(c *Config, tab *load.Table) (*Type, error) {
	d := &load.Diagnostics{}
	t := Resolve(c, tab, d)
	if err := d.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func resolveAccessors(t *Type, f *Field, fd *load.Field, d *load.Diagnostics) {
	var getter, setter *load.Accessor
	for _, ad := range fd.Accessors {
		switch {
		case ad.Kind.Getter() && getter != nil:
			d.Reportf(load.CodeDuplicateAccessor, t.Name, f.Name, ad.Pos,
				"%s conflicts with %s: a field is queried with one result shape", ad.Kind, getter.Kind)
			continue
		case ad.Kind == load.Set && setter != nil:
			d.Reportf(load.CodeDuplicateAccessor, t.Name, f.Name, ad.Pos,
				"at most one set accessor per field")
			continue
		}
		if ad.Kind.Getter() {
			getter = ad
		} else {
			setter = ad
		}
		f.Accessors = append(f.Accessors, &Accessor{
			Field:   f,
			Kind:    ad.Kind,
			Name:    ad.Name,
			ArgType: ad.ArgType,
		})
	}
}

func resolveID(t *Type, tab *load.Table, fields map[string]*Field, d *load.Diagnostics) {
	if tab.IDField != "" {
		f, ok := fields[tab.IDField]
		if !ok {
			d.Reportf(load.CodeDanglingReference, t.Name, "", tab.Pos,
				"id annotation references unknown field %q", tab.IDField)
		} else {
			f.ID = true
		}
	}
	var ids []*Field
	for _, f := range t.Fields {
		if f.ID {
			ids = append(ids, f)
		}
	}
	switch len(ids) {
	case 0:
		d.Reportf(load.CodeMissingID, t.Name, "", tab.Pos,
			"exactly one field must be marked as the id")
	case 1:
		t.ID = ids[0]
	default:
		for _, f := range ids[1:] {
			d.Reportf(load.CodeDuplicateID, t.Name, f.Name, tab.Pos,
				"id already assigned to field %q", ids[0].Name)
		}
	}
}

func resolvePatch(t *Type, p *load.Patch, fields map[string]*Field, d *load.Diagnostics) *Patch {
	rp := &Patch{typ: t, Name: p.Name}
	for _, name := range p.Fields {
		f, ok := fields[name]
		if !ok {
			d.Reportf(load.CodeDanglingReference, t.Name, "", p.Pos,
				"patch %q references unknown field %q", p.Name, name)
			continue
		}
		if f.ID {
			d.Reportf(load.CodeDanglingReference, t.Name, f.Name, p.Pos,
				"patch %q cannot update the id field", p.Name)
			continue
		}
		rp.Fields = append(rp.Fields, f)
	}
	if len(rp.Fields) == 0 {
		return nil
	}
	return rp
}

// =============================================================================
// Naming helpers used by the emitters
// =============================================================================

// Receiver returns the receiver name of the record type.
func (t Type) Receiver() string { return receiver(t.Name) }

// TableConstant returns the name of the generated table-name constant.
func (t Type) TableConstant() string { return t.Name + "Table" }

// ColumnsVar returns the name of the generated column list variable.
func (t Type) ColumnsVar() string { return t.Name + "Columns" }

// FileName returns the generated file name for the table.
func (t Type) FileName() string { return snake(t.Name) + "_gen.go" }

// InsertTypeName returns the name of the generated insert type.
func (t Type) InsertTypeName() string {
	if t.InsertName != "" {
		return t.InsertName
	}
	return "Insert" + t.Name
}

// InsertReceiver returns the receiver name of the insert type.
func (t Type) InsertReceiver() string { return receiver(t.InsertTypeName()) }

// Columns returns the column names in declaration order.
func (t Type) Columns() []string {
	cols := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

// InsertFields returns the fields of the insert artifact: every field except
// the id and the database-generated defaults.
func (t Type) InsertFields() []*Field {
	fields := make([]*Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		if f.ID || f.Default {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// Accessors returns every accessor of the table in field declaration order.
func (t Type) Accessors() []*Accessor {
	var out []*Accessor
	for _, f := range t.Fields {
		out = append(out, f.Accessors...)
	}
	return out
}

// HasSetters reports whether any field carries a set accessor.
func (t Type) HasSetters() bool {
	for _, a := range t.Accessors() {
		if a.Kind == load.Set {
			return true
		}
	}
	return false
}

// StructField returns the Go struct field name of the field.
func (f Field) StructField() string { return pascal(f.Name) }

// ReadType returns the type the field is read back from a row as: the
// override type for custom fields, the field type otherwise.
func (f Field) ReadType() string {
	if f.CustomType {
		return f.TypeOverride
	}
	return f.Type
}

// FuncName returns the Go name of the generated accessor function.
func (a Accessor) FuncName() string { return pascal(a.Name) }

// ArgName returns the parameter name of the accessor argument. A name that
// would shadow the record receiver in the generated body is prefixed.
func (a Accessor) ArgName() string {
	name := argName(a.Field.Name)
	if name == a.Field.typ.Receiver() {
		name = "_" + name
	}
	return name
}

// Type returns the table the patch belongs to.
func (p Patch) Type() *Type { return p.typ }

// Receiver returns the receiver name of the patch type.
func (p Patch) Receiver() string { return receiver(p.Name) }
