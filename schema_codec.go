package reshape

import (
	"gopkg.in/yaml.v3"
)

// Wire field names of a serialized Node.
const (
	fieldDataType = "dataType"
	fieldSource   = "source"
	fieldNested   = "nestedData"
)

// MapToValue renders m in its wire shape:
//
//	{"name": {"dataType": "string", "source": ".a", "nestedData": {...}}}
//
// nestedData is only written for Object and Array fields.
func MapToValue(m *Map) *Object {
	out := NewObject(m.Len())
	for name, n := range m.All() {
		node := NewObject(3)
		node.Set(fieldDataType, String(n.DataType.String()))
		node.Set(fieldSource, String(n.Source))
		if n.DataType.IsContainer() {
			node.Set(fieldNested, MapToValue(n.Nested))
		}
		out.Set(name, node)
	}
	return out
}

// MapFromValue reads a Map from its wire shape and validates it. Unknown
// dataType tags, non-object nodes and containers without nestedData are
// reported together as Issues. nestedData on primitive fields is ignored.
func MapFromValue(v Value) (*Map, error) {
	var iss Issues
	m := mapFromValue(v, NewRef().Root(), &iss)
	if len(iss) > 0 {
		return nil, iss
	}
	return m, nil
}

func mapFromValue(v Value, at PathRef, iss *Issues) *Map {
	obj, ok := v.(*Object)
	if !ok {
		*iss = AppendIssues(*iss, invalidType(at, "object"))
		return nil
	}
	m := NewMap()
	for name, raw := range obj.All() {
		field := at.Field(name)
		nodeObj, ok := raw.(*Object)
		if !ok {
			*iss = AppendIssues(*iss, invalidType(field, "object"))
			continue
		}
		var n Node

		tagVal, _ := nodeObj.Get(fieldDataType)
		tag, _ := tagVal.(String)
		dt, err := ParseDataType(string(tag))
		if err != nil {
			*iss = AppendIssues(*iss, field.Field(fieldDataType).Issue(CodeInvalidDataType,
				message(CodeInvalidDataType, map[string]string{"tag": string(tag)}), "tag", string(tag)))
			continue
		}
		n.DataType = dt

		switch src, _ := nodeObj.Get(fieldSource); s := src.(type) {
		case nil:
		case String:
			n.Source = string(s)
		case Number:
			n.Source = StringForm(s)
		default:
			*iss = AppendIssues(*iss, invalidType(field.Field(fieldSource), "string"))
			continue
		}

		if dt.IsContainer() {
			nested, ok := nodeObj.Get(fieldNested)
			if !ok {
				*iss = AppendIssues(*iss, field.Issue(CodeMissingNested, message(CodeMissingNested, nil), "dataType", dt.String()))
				continue
			}
			n.Nested = mapFromValue(nested, field.Field(fieldNested), iss)
		}
		m.Set(name, n)
	}
	return m
}

func invalidType(at PathRef, expected string) Issue {
	return at.Issue(CodeInvalidType, message(CodeInvalidType, map[string]string{"expected": expected}), "expected", expected)
}

// MarshalJSON implements json.Marshaler with fields in map order.
func (m *Map) MarshalJSON() ([]byte, error) { return EncodeJSON(MapToValue(m), "") }

// UnmarshalJSON implements json.Unmarshaler.
func (m *Map) UnmarshalJSON(b []byte) error {
	v, err := ParseJSON(b)
	if err != nil {
		return err
	}
	return m.assign(v)
}

// MarshalYAML implements yaml.Marshaler with fields in map order.
func (m *Map) MarshalYAML() (any, error) { return ValueToYAML(MapToValue(m)), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	v, err := ValueFromYAML(node)
	if err != nil {
		return err
	}
	return m.assign(v)
}

func (m *Map) assign(v Value) error {
	parsed, err := MapFromValue(v)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}

// ParseMapJSON decodes a Map from JSON.
func ParseMapJSON(data []byte, opts ...ParseOpt) (*Map, error) {
	v, err := ParseJSON(data, opts...)
	if err != nil {
		return nil, err
	}
	return MapFromValue(v)
}

// ParseMapYAML decodes a Map from YAML.
func ParseMapYAML(data []byte, opts ...ParseOpt) (*Map, error) {
	v, err := ParseYAML(data, opts...)
	if err != nil {
		return nil, err
	}
	return MapFromValue(v)
}
