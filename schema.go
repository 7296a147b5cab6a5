package reshape

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// DataType is the declared type of one output field.
type DataType int

const (
	TypeString DataType = iota + 1
	TypeNumber
	TypeBoolean
	TypeObject
	TypeArray
)

var dataTypeNames = map[DataType]string{
	TypeString:  "string",
	TypeNumber:  "number",
	TypeBoolean: "boolean",
	TypeObject:  "object",
	TypeArray:   "array",
}

// String returns the wire tag of t.
func (t DataType) String() string {
	if s, ok := dataTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// Valid reports whether t is one of the declared types.
func (t DataType) Valid() bool {
	_, ok := dataTypeNames[t]
	return ok
}

// IsPrimitive reports whether t is String, Number or Boolean.
func (t DataType) IsPrimitive() bool {
	return t == TypeString || t == TypeNumber || t == TypeBoolean
}

// IsContainer reports whether t is Object or Array.
func (t DataType) IsContainer() bool { return t == TypeObject || t == TypeArray }

// ParseDataType reads a wire tag. Surrounding whitespace and case are ignored.
func ParseDataType(tag string) (DataType, error) {
	norm := strings.ToLower(strings.TrimSpace(tag))
	for t, name := range dataTypeNames {
		if name == norm {
			return t, nil
		}
	}
	return 0, Issues{{Code: CodeInvalidDataType, Path: "/", Message: message(CodeInvalidDataType, map[string]string{"tag": tag}), Params: map[string]any{"tag": tag}}}
}

// MarshalText implements encoding.TextMarshaler.
func (t DataType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("reshape: invalid data type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DataType) UnmarshalText(b []byte) error {
	v, err := ParseDataType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Node describes how one output field is derived.
//
// Source is a path expression, a literal constant (no leading dot), a formula
// joining operands with "+", a wildcard array source ("...*") or the fixed
// cardinality marker "1". Nested is required for Object and Array and unused
// for primitives.
type Node struct {
	DataType DataType
	Source   string
	Nested   *Map
}

// Map is an ordered set of named output fields. Field order is the output
// key order. The zero value is an empty map ready to use.
type Map struct {
	names []string
	nodes map[string]Node
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{nodes: map[string]Node{}} }

// Add appends a field. Adding a name twice is an error.
func (m *Map) Add(name string, n Node) error {
	if _, ok := m.nodes[name]; ok {
		return Issues{{Code: CodeDuplicateKey, Path: NewRef().Root().Field(name).Pointer(), Message: message(CodeDuplicateKey, map[string]string{"key": name})}}
	}
	m.Set(name, n)
	return nil
}

// Set stores a field, keeping the position of an existing name.
func (m *Map) Set(name string, n Node) {
	if m.nodes == nil {
		m.nodes = map[string]Node{}
	}
	if _, ok := m.nodes[name]; !ok {
		m.names = append(m.names, name)
	}
	m.nodes[name] = n
}

// Get returns the field stored under name.
func (m *Map) Get(name string) (Node, bool) {
	if m == nil {
		return Node{}, false
	}
	n, ok := m.nodes[name]
	return n, ok
}

// Delete removes a field.
func (m *Map) Delete(name string) {
	if _, ok := m.nodes[name]; !ok {
		return
	}
	delete(m.nodes, name)
	m.names = slices.DeleteFunc(m.names, func(s string) bool { return s == name })
}

// Len returns the number of fields.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns the field names in order.
func (m *Map) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.names)
}

// All iterates fields in order.
func (m *Map) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if m == nil {
			return
		}
		for _, name := range m.names {
			if !yield(name, m.nodes[name]) {
				return
			}
		}
	}
}

// Clone deep-copies m at any depth. In a Map that contains itself the nested
// reference that closes the cycle is copied as nil.
func (m *Map) Clone() *Map { return m.clone(map[*Map]bool{}) }

func (m *Map) clone(onPath map[*Map]bool) *Map {
	if m == nil {
		return nil
	}
	onPath[m] = true
	defer delete(onPath, m)

	out := NewMap()
	for name, n := range m.All() {
		if n.Nested != nil && !onPath[n.Nested] {
			n.Nested = n.Nested.clone(onPath)
		} else {
			n.Nested = nil
		}
		out.Set(name, n)
	}
	return out
}

// Validate checks structural invariants: every DataType is declared,
// containers carry a nested map, primitives do not, and no map contains
// itself.
func Validate(m *Map) Issues {
	var iss Issues
	validateMap(m, NewRef().Root(), map[*Map]bool{}, &iss)
	return iss
}

func validateMap(m *Map, at PathRef, onPath map[*Map]bool, iss *Issues) {
	if m == nil {
		return
	}
	if onPath[m] {
		*iss = AppendIssues(*iss, at.Issue(CodeSchemaCycle, message(CodeSchemaCycle, nil)))
		return
	}
	onPath[m] = true
	defer delete(onPath, m)

	for name, n := range m.All() {
		field := at.Field(name)
		switch {
		case !n.DataType.Valid():
			*iss = AppendIssues(*iss, field.Issue(CodeInvalidDataType, message(CodeInvalidDataType, map[string]string{"tag": n.DataType.String()}), "tag", n.DataType.String()))
		case n.DataType.IsContainer() && n.Nested == nil:
			*iss = AppendIssues(*iss, field.Issue(CodeMissingNested, message(CodeMissingNested, nil), "dataType", n.DataType.String()))
		case n.DataType.IsPrimitive() && n.Nested != nil:
			*iss = AppendIssues(*iss, field.Issue(CodeUnexpectedNested, message(CodeUnexpectedNested, nil), "dataType", n.DataType.String()))
		case n.DataType.IsContainer():
			validateMap(n.Nested, field.Field(fieldNested), onPath, iss)
		}
	}
}
