package schema

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"
)

// Field types.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeString = "string"
	TypeBool   = "bool"
	TypeRecord = "record"
	TypeList   = "list"
	TypeMap    = "map"
	TypeSet    = "set"
	TypeTime   = "time"
	TypeBytes  = "bytes"
	TypeFloats = "floats"
	TypeAny    = "any"
)

var knownTypes = map[string]bool{
	TypeInt: true, TypeFloat: true, TypeString: true, TypeBool: true,
	TypeRecord: true, TypeList: true, TypeMap: true, TypeSet: true,
	TypeTime: true, TypeBytes: true, TypeFloats: true, TypeAny: true,
}

// Schema defines the canonical shape a raw input is filled out to.
type Schema struct {
	Name   string            `yaml:"name"`
	Fields map[string]*Field `yaml:"fields"`
}

// Field describes one field of a shape. Exactly one of Default and Expr
// may be set; Expr is evaluated against the raw input when the field is
// absent, so defaults can derive from sibling values.
type Field struct {
	Type     string            `yaml:"type"`
	Required bool              `yaml:"required"`
	Default  any               `yaml:"default"`
	Expr     string            `yaml:"expr"`
	Fields   map[string]*Field `yaml:"fields"` // record fields
	Elem     *Field            `yaml:"elem"`   // list element shape

	prog *vm.Program
}

// ParseYAML parses and compiles a schema definition.
func ParseYAML(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, &DefinitionError{Message: "cannot parse YAML", Err: err}
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return s, nil
}

// New builds a schema programmatically and compiles it.
func New(name string, fields map[string]*Field) (*Schema, error) {
	s := &Schema{Name: name, Fields: fields}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) compile() error {
	if len(s.Fields) == 0 {
		return &DefinitionError{Message: "schema has no fields"}
	}
	return compileFields("", s.Fields)
}

func compileFields(prefix string, fields map[string]*Field) error {
	for name, f := range fields {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if f == nil {
			return &DefinitionError{FieldPath: path, Message: "empty field definition"}
		}
		if err := f.compile(path); err != nil {
			return err
		}
	}
	return nil
}

func (f *Field) compile(path string) error {
	if f.Type == "" {
		f.Type = TypeAny
	}
	if !knownTypes[f.Type] {
		return &DefinitionError{FieldPath: path, Message: fmt.Sprintf("unknown type %q", f.Type)}
	}
	if f.Default != nil && f.Expr != "" {
		return &DefinitionError{FieldPath: path, Message: "both default and expr set"}
	}
	if f.Expr != "" {
		prog, err := expr.Compile(f.Expr)
		if err != nil {
			return &DefinitionError{FieldPath: path, Message: "cannot compile expr", Err: err}
		}
		f.prog = prog
	}
	if f.Type == TypeRecord {
		if err := compileFields(path, f.Fields); err != nil {
			return err
		}
	} else if len(f.Fields) > 0 {
		return &DefinitionError{FieldPath: path, Message: "fields only valid on record type"}
	}
	if f.Elem != nil {
		if f.Type != TypeList {
			return &DefinitionError{FieldPath: path, Message: "elem only valid on list type"}
		}
		if err := f.Elem.compile(path + ".[]"); err != nil {
			return err
		}
	}
	return nil
}
