package profile

import (
	"fmt"
	"sort"
	"strings"
)

// FieldType is the declared datatype of a profile field.
type FieldType string

const (
	FieldTypeNumeric  FieldType = "numeric"
	FieldTypeString   FieldType = "string"
	FieldTypeDateTime FieldType = "datetime"
	FieldTypeBoolean  FieldType = "boolean"
)

// Valid reports whether t is one of the supported datatypes.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeNumeric, FieldTypeString, FieldTypeDateTime, FieldTypeBoolean:
		return true
	default:
		return false
	}
}

// Field identifies a column of generated data. Fields are owned by Fields and
// referenced by value from constraints and specs.
type Field struct {
	Name string    `json:"name" yaml:"name"`
	Type FieldType `json:"type" yaml:"type"`
}

func (f Field) String() string {
	return f.Name
}

// FieldResolver looks up declared fields by name.
type FieldResolver interface {
	ByName(name string) (Field, bool)
}

// Fields is an ordered, name-indexed set of declared fields.
type Fields struct {
	ordered []Field
	byName  map[string]int
}

// Ensure Fields satisfies the resolver contract used by the readers.
var _ FieldResolver = Fields{}

// NewFields validates and indexes the supplied declarations. Names must be
// non-empty and unique and every type must be supported.
func NewFields(fields ...Field) (Fields, error) {
	out := Fields{
		ordered: make([]Field, 0, len(fields)),
		byName:  make(map[string]int, len(fields)),
	}
	for idx, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return Fields{}, fmt.Errorf("profile: fields[%d] name is required", idx)
		}
		if !field.Type.Valid() {
			return Fields{}, fmt.Errorf("profile: field %q has unsupported type %q", name, field.Type)
		}
		if _, exists := out.byName[name]; exists {
			return Fields{}, fmt.Errorf("profile: field %q declared more than once", name)
		}
		field.Name = name
		out.byName[name] = len(out.ordered)
		out.ordered = append(out.ordered, field)
	}
	return out, nil
}

// MustNewFields panics if the declarations are invalid. Useful for tests.
func MustNewFields(fields ...Field) Fields {
	out, err := NewFields(fields...)
	if err != nil {
		panic(err)
	}
	return out
}

// ByName resolves a declared field.
func (f Fields) ByName(name string) (Field, bool) {
	idx, ok := f.byName[name]
	if !ok {
		return Field{}, false
	}
	return f.ordered[idx], true
}

// List returns the fields in declaration order.
func (f Fields) List() []Field {
	return append([]Field(nil), f.ordered...)
}

// Names returns the declared names sorted alphabetically.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f.ordered))
	for _, field := range f.ordered {
		names = append(names, field.Name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of declared fields.
func (f Fields) Len() int {
	return len(f.ordered)
}
