package dsl

import (
	"strings"

	"github.com/reoring/reshape"
)

// FieldSpec describes one output field. Create it with String, Number,
// Boolean, Nested, Each or One.
type FieldSpec struct {
	dataType reshape.DataType
	source   string
	nested   *objectBuilder
}

// String declares a text field.
func String(source string) FieldSpec { return FieldSpec{dataType: reshape.TypeString, source: source} }

// Number declares a numeric field.
func Number(source string) FieldSpec { return FieldSpec{dataType: reshape.TypeNumber, source: source} }

// Boolean declares a boolean field.
func Boolean(source string) FieldSpec { return FieldSpec{dataType: reshape.TypeBoolean, source: source} }

// Nested declares an object field built from b.
func Nested(source string, b *objectBuilder) FieldSpec {
	return FieldSpec{dataType: reshape.TypeObject, source: source, nested: b}
}

// Each declares an array with one element per item of the collection at
// source. The wildcard marker is appended when missing.
func Each(source string, b *objectBuilder) FieldSpec {
	if !reshape.IsWildcard(source) {
		source += "*"
	}
	return FieldSpec{dataType: reshape.TypeArray, source: source, nested: b}
}

// One declares an array holding exactly one element built from b.
func One(b *objectBuilder) FieldSpec {
	return FieldSpec{dataType: reshape.TypeArray, source: "1", nested: b}
}

// Concat joins formula operands. Literal operands keep their spacing.
func Concat(parts ...string) string { return strings.Join(parts, "+") }

// Path builds a root-relative path from segments.
func Path(segs ...string) string { return "." + strings.Join(segs, ".") }

type objectBuilder struct {
	names  []string
	fields map[string]FieldSpec
	dups   []string
}

// Object creates an empty object builder.
func Object() *objectBuilder {
	return &objectBuilder{fields: map[string]FieldSpec{}}
}

// Field appends a field. Declaring a name twice fails at Build.
func (b *objectBuilder) Field(name string, f FieldSpec) *objectBuilder {
	if _, ok := b.fields[name]; ok {
		b.dups = append(b.dups, name)
		return b
	}
	b.names = append(b.names, name)
	b.fields[name] = f
	return b
}

// Build returns the Map after validating it.
func (b *objectBuilder) Build() (*reshape.Map, error) {
	var iss reshape.Issues
	m := b.build(reshape.NewRef().Root(), &iss)
	if len(iss) > 0 {
		return nil, iss
	}
	if iss := reshape.Validate(m); len(iss) > 0 {
		return nil, iss
	}
	return m, nil
}

// MustBuild is Build that panics on error.
func (b *objectBuilder) MustBuild() *reshape.Map {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

func (b *objectBuilder) build(at reshape.PathRef, iss *reshape.Issues) *reshape.Map {
	for _, name := range b.dups {
		*iss = reshape.AppendIssues(*iss, at.Field(name).Issue(reshape.CodeDuplicateKey, "field '"+name+"' declared twice", "key", name))
	}
	m := reshape.NewMap()
	for _, name := range b.names {
		f := b.fields[name]
		n := reshape.Node{DataType: f.dataType, Source: f.source}
		if f.dataType.IsContainer() {
			if f.nested == nil {
				*iss = reshape.AppendIssues(*iss, at.Field(name).Issue(reshape.CodeMissingNested, "nested object builder is nil"))
				continue
			}
			n.Nested = f.nested.build(at.Field(name).Field("nestedData"), iss)
		}
		m.Set(name, n)
	}
	return m
}
