package jsonschema

import (
	"math"

	"github.com/reoring/reshape"
)

// FromMap describes the documents Execute produces for m. Every field is
// required and no other properties appear. Literal sources become const
// values, and fixed cardinality arrays hold exactly one item.
//
// Field level diagnostics are strings, so a schema exported here rejects
// output that carries them.
func FromMap(m *reshape.Map) *Schema {
	s := objectSchema(m)
	s.SchemaURI = Draft
	return s
}

func objectSchema(m *reshape.Map) *Schema {
	s := &Schema{
		Type:                 "object",
		Properties:           make(map[string]*Schema, m.Len()),
		AdditionalProperties: false,
	}
	for name, n := range m.All() {
		s.Properties[name] = fieldSchema(n)
		s.Required = append(s.Required, name)
	}
	return s
}

func fieldSchema(n reshape.Node) *Schema {
	switch n.DataType {
	case reshape.TypeObject:
		return objectSchema(n.Nested)
	case reshape.TypeArray:
		s := &Schema{Type: "array", Items: objectSchema(n.Nested)}
		if n.Source == "1" {
			one := 1
			s.MinItems, s.MaxItems = &one, &one
		}
		return s
	}
	s := &Schema{Type: n.DataType.String()}
	if reshape.IsFormula(n.Source) {
		// formulas always yield text
		s.Type = "string"
		return s
	}
	if !reshape.IsRootPath(n.Source) {
		s.Const = constant(n.DataType, n.Source)
	}
	return s
}

func constant(t reshape.DataType, src string) any {
	v := reshape.Coerce(t, reshape.String(src))
	if n, ok := v.(reshape.Number); ok && (math.IsNaN(float64(n)) || math.IsInf(float64(n), 0)) {
		return nil
	}
	return reshape.ToAny(v)
}
