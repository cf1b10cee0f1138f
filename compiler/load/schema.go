// Package load parses raw record annotations into validated table
// descriptors. It is the first stage of the generation pipeline; the
// resolved model is built on top of it by compiler/gen.
package load

import (
	"fmt"
	"strings"
)

// Position is the source location of an annotation.
type Position struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// String returns "file:line:column", or "" for the zero position.
func (p Position) String() string {
	if p == (Position{}) {
		return ""
	}
	file := p.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Column)
}

// Annotation is one raw key/value pair attached to a record or a field.
// Directive annotations (get_one, patch, ...) may carry nested attributes.
type Annotation struct {
	Key   string
	Value string
	Attrs []Annotation
	Pos   Position
}

func (a Annotation) attr(key string) (string, bool) {
	for _, at := range a.Attrs {
		if at.Key == key {
			return at.Value, true
		}
	}
	return "", false
}

// TableInput is the raw, unvalidated annotation data attached to one record
// definition. It is produced by a surface front end (the YAML decoder in
// this package, or any other caller).
type TableInput struct {
	Name        string // record (Go type) name
	Pos         Position
	Annotations []Annotation
	Fields      []FieldInput
}

// FieldInput is the raw annotation data of one record field.
type FieldInput struct {
	Name        string
	Type        string // Go type token
	Pos         Position
	Annotations []Annotation
}

// AccessorKind is the shape of a generated accessor.
type AccessorKind uint8

// Accessor kinds. The three getter kinds differ only in the result shape of
// the generated query.
const (
	GetOne AccessorKind = iota + 1
	GetOptional
	GetMany
	Set
)

// String returns the annotation key of the kind.
func (k AccessorKind) String() string {
	switch k {
	case GetOne:
		return "get_one"
	case GetOptional:
		return "get_optional"
	case GetMany:
		return "get_many"
	case Set:
		return "set"
	default:
		return fmt.Sprintf("AccessorKind(%d)", k)
	}
}

// Getter reports whether the kind is one of the three query kinds.
func (k AccessorKind) Getter() bool {
	return k == GetOne || k == GetOptional || k == GetMany
}

// Accessor is a parsed accessor directive with defaults applied.
type Accessor struct {
	Kind    AccessorKind
	Name    string // generated function name, snake form
	ArgType string // argument type, defaults to the field type
	Pos     Position
}

// Table is the validated descriptor of one record. Field order is
// significant: it drives the generated column lists.
type Table struct {
	Name       string
	TableName  string
	IDField    string // field named by the table-level id annotation
	Insertable bool
	InsertName string // custom insert type name, empty for the default
	Deletable  bool
	Patches    []*Patch
	Fields     []*Field
	Pos        Position
}

// Patch declares a generated partial-update type over a subset of fields.
type Patch struct {
	Name   string
	Fields []string
	Pos    Position
}

// Field is the validated descriptor of one record field.
type Field struct {
	Name         string
	Type         string
	Column       string
	ID           bool // field-level id marker
	Default      bool
	CustomType   bool
	TypeOverride string // read-back type for custom_type fields
	Accessors    []*Accessor
	Pos          Position
}

// Parse turns raw annotation data into a table descriptor, applying the
// documented defaults. Violations are reported to d; the returned descriptor
// is best-effort so the model builder can surface further violations in the
// same run. Callers must check d.Err() before using the result.
func Parse(in *TableInput, d *Diagnostics) *Table {
	t := &Table{Name: in.Name, Pos: in.Pos}
	for _, a := range in.Annotations {
		parseTableAnnotation(t, a, d)
	}
	if t.TableName == "" {
		d.Reportf(CodeInvalidValue, t.Name, "", t.Pos, "missing required %q annotation", "table")
	}
	for i := range in.Fields {
		t.Fields = append(t.Fields, parseField(t.Name, &in.Fields[i], d))
	}
	return t
}

// ParseTable is the single-shot variant of Parse.
func ParseTable(in *TableInput) (*Table, error) {
	d := &Diagnostics{}
	t := Parse(in, d)
	if err := d.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseTableAnnotation(t *Table, a Annotation, d *Diagnostics) {
	switch a.Key {
	case "table":
		if a.Value == "" {
			d.Reportf(CodeInvalidValue, t.Name, "", a.Pos, "%q requires a table name", a.Key)
			return
		}
		t.TableName = a.Value
	case "id":
		if a.Value == "" {
			d.Reportf(CodeInvalidValue, t.Name, "", a.Pos, "%q requires a field name", a.Key)
			return
		}
		if t.IDField != "" {
			d.Reportf(CodeDuplicateID, t.Name, "", a.Pos, "id field named more than once")
			return
		}
		t.IDField = a.Value
	case "insertable":
		// Either a bare flag or a custom type name for the insert struct.
		switch a.Value {
		case "", "true":
			t.Insertable = true
		case "false":
		default:
			t.Insertable = true
			t.InsertName = a.Value
		}
	case "deletable":
		flag, ok := parseFlag(a.Value)
		if !ok {
			d.Reportf(CodeInvalidValue, t.Name, "", a.Pos, "%q must be a boolean, got %q", a.Key, a.Value)
			return
		}
		t.Deletable = flag
	case "patch":
		p := parsePatch(t.Name, a, d)
		if p != nil {
			t.Patches = append(t.Patches, p)
		}
	default:
		d.Reportf(CodeUnknownKey, t.Name, "", a.Pos, "unknown annotation key %q", a.Key)
	}
}

func parsePatch(table string, a Annotation, d *Diagnostics) *Patch {
	p := &Patch{Name: a.Value, Pos: a.Pos}
	if name, ok := a.attr("name"); ok {
		p.Name = name
	}
	if p.Name == "" {
		d.Reportf(CodeInvalidValue, table, "", a.Pos, "%q requires a type name", a.Key)
		return nil
	}
	fields, ok := a.attr("fields")
	if !ok || fields == "" {
		d.Reportf(CodeInvalidValue, table, "", a.Pos, "patch %q requires a field list", p.Name)
		return nil
	}
	for _, f := range strings.Fields(strings.ReplaceAll(fields, ",", " ")) {
		p.Fields = append(p.Fields, f)
	}
	return p
}

func parseField(table string, in *FieldInput, d *Diagnostics) *Field {
	f := &Field{Name: in.Name, Type: in.Type, Pos: in.Pos}
	for _, a := range in.Annotations {
		switch a.Key {
		case "column":
			if a.Value == "" {
				d.Reportf(CodeInvalidValue, table, f.Name, a.Pos, "%q requires a column name", a.Key)
				continue
			}
			f.Column = a.Value
		case "id":
			flag, ok := parseFlag(a.Value)
			if !ok {
				d.Reportf(CodeInvalidValue, table, f.Name, a.Pos, "%q must be a boolean, got %q", a.Key, a.Value)
				continue
			}
			f.ID = flag
		case "default":
			flag, ok := parseFlag(a.Value)
			if !ok {
				d.Reportf(CodeInvalidValue, table, f.Name, a.Pos, "%q must be a boolean, got %q", a.Key, a.Value)
				continue
			}
			f.Default = flag
		case "custom_type":
			// A bare flag records the role; the read-back type override is
			// the value. The model builder rejects the flag without it.
			f.CustomType = true
			if a.Value != "" && a.Value != "true" {
				f.TypeOverride = a.Value
			}
		case "get_one", "get_optional", "get_many", "set":
			f.Accessors = append(f.Accessors, parseAccessor(f, a))
		default:
			d.Reportf(CodeUnknownKey, table, f.Name, a.Pos, "unknown annotation key %q", a.Key)
		}
	}
	if f.Column == "" {
		f.Column = f.Name
	}
	return f
}

func parseAccessor(f *Field, a Annotation) *Accessor {
	kinds := map[string]AccessorKind{
		"get_one":      GetOne,
		"get_optional": GetOptional,
		"get_many":     GetMany,
		"set":          Set,
	}
	ac := &Accessor{Kind: kinds[a.Key], Pos: a.Pos}
	ac.Name = a.Value
	if name, ok := a.attr("name"); ok {
		ac.Name = name
	}
	if ac.Name == "" || ac.Name == "true" {
		if ac.Kind == Set {
			ac.Name = "set_" + f.Name
		} else {
			ac.Name = "get_by_" + f.Name
		}
	}
	if arg, ok := a.attr("arg"); ok && ac.Kind.Getter() {
		ac.ArgType = arg
	}
	if ac.ArgType == "" {
		ac.ArgType = f.Type
	}
	return ac
}

func parseFlag(v string) (value, ok bool) {
	switch v {
	case "", "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
