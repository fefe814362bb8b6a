// Package schema defines the declarative field rules for both admission forms
// and the validation engine that turns raw applicant input into coerced,
// schema-shaped form data.
package schema

import (
	"fmt"
	"regexp"
)

// Kind is the value type a field accepts.
type Kind string

const (
	KindText    Kind = "text"
	KindEmail   Kind = "email"
	KindPhone   Kind = "phone"
	KindDate    Kind = "date"
	KindEnum    Kind = "enum"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
)

// Form type discriminators used on the wire.
const (
	FormTypeIntroduction = "introduction"
	FormTypeMain         = "main"
)

// FieldRule is the explicit descriptor for a single field: name, label, kind
// and constraints. Error paths and email rendering are built from these
// descriptors, never from reflection over arbitrary maps.
type FieldRule struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool

	// RequireTrue marks boolean fields that must be checked, e.g. declarations.
	RequireTrue bool

	// Pattern constrains text fields when set.
	Pattern *regexp.Regexp

	// Enum is the literal allowed value set for enum fields.
	Enum []string

	// Row constraints for array fields.
	MinRows int
	MaxRows int
	Row     *RowSchema
}

// RowSchema describes one row of an array field. Row fields may not
// themselves be arrays.
type RowSchema struct {
	Fields []FieldRule
}

// Field returns the row column rule by name.
func (r *RowSchema) Field(name string) (FieldRule, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldRule{}, false
}

// EmptyRow returns the schema-default shape for a new row.
func (r *RowSchema) EmptyRow() map[string]any {
	row := make(map[string]any, len(r.Fields))
	for _, f := range r.Fields {
		if f.Kind == KindBoolean {
			row[f.Name] = false
		} else {
			row[f.Name] = ""
		}
	}
	return row
}

// Section is one wizard step: a title and the field subset validated when
// advancing past that step.
type Section struct {
	Title  string
	Fields []FieldRule
}

type sectionDef struct {
	title      string
	fieldNames []string
}

// FormSchema is a named, versioned set of field rules partitioned into
// ordered sections.
type FormSchema struct {
	Name    string
	Version int
	Fields  []FieldRule

	layout []sectionDef
	rules  map[string]FieldRule
}

// newSchema indexes the rules and resolves the section layout. Layout and
// rules are static configuration, so inconsistencies are programmer errors
// and panic at init.
func newSchema(name string, version int, fields []FieldRule, layout []sectionDef) *FormSchema {
	s := &FormSchema{
		Name:    name,
		Version: version,
		Fields:  fields,
		layout:  layout,
		rules:   make(map[string]FieldRule, len(fields)),
	}
	for _, f := range fields {
		if _, dup := s.rules[f.Name]; dup {
			panic(fmt.Sprintf("schema %s: duplicate field %s", name, f.Name))
		}
		if f.Kind == KindArray && f.Row == nil {
			panic(fmt.Sprintf("schema %s: array field %s has no row schema", name, f.Name))
		}
		s.rules[f.Name] = f
	}
	seen := make(map[string]bool, len(fields))
	for _, def := range layout {
		for _, fn := range def.fieldNames {
			if _, ok := s.rules[fn]; !ok {
				panic(fmt.Sprintf("schema %s: section %q references unknown field %s", name, def.title, fn))
			}
			if seen[fn] {
				panic(fmt.Sprintf("schema %s: field %s appears in two sections", name, fn))
			}
			seen[fn] = true
		}
	}
	if len(seen) != len(fields) {
		panic(fmt.Sprintf("schema %s: section layout does not cover every field", name))
	}
	return s
}

// Rule returns the field rule by name.
func (s *FormSchema) Rule(name string) (FieldRule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// SectionsOf returns the ordered wizard sections of a schema. The result is
// static configuration; callers must not mutate it.
func SectionsOf(s *FormSchema) []Section {
	sections := make([]Section, 0, len(s.layout))
	for _, def := range s.layout {
		sec := Section{Title: def.title, Fields: make([]FieldRule, 0, len(def.fieldNames))}
		for _, fn := range def.fieldNames {
			sec.Fields = append(sec.Fields, s.rules[fn])
		}
		sections = append(sections, sec)
	}
	return sections
}

// ByName returns the schema for a wire-level form type discriminator.
func ByName(formType string) (*FormSchema, bool) {
	switch formType {
	case FormTypeIntroduction:
		return Introduction(), true
	case FormTypeMain:
		return MainApplication(), true
	default:
		return nil, false
	}
}
