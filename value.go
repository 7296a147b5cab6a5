package reshape

import (
	"iter"
	"math"
	"slices"
)

// Kind enumerates the variants of Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON-shaped document node. The set of implementations is closed:
// Null, Bool, Number, String, Array and *Object.
//
// A nil Value means "absent" (a path that resolved to nothing). It is distinct
// from Null and never appears inside a decoded document.
type Value interface {
	Kind() Kind
	value()
}

// Null is the JSON null.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number. NaN and infinities are valid Numbers in memory;
// they encode as null.
type Number float64

// String is a JSON string.
type String string

// Array is an ordered list of values.
type Array []Value

func (Null) Kind() Kind    { return KindNull }
func (Bool) Kind() Kind    { return KindBool }
func (Number) Kind() Kind  { return KindNumber }
func (String) Kind() Kind  { return KindString }
func (Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind { return KindObject }

func (Null) value()    {}
func (Bool) value()    {}
func (Number) value()  {}
func (String) value()  {}
func (Array) value()   {}
func (*Object) value() {}

// Object is a string-keyed mapping that remembers insertion order. The zero
// value is an empty object ready to use.
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject returns an empty object with room for n fields.
func NewObject(n int) *Object {
	return &Object{keys: make([]string, 0, n), fields: make(map[string]Value, n)}
}

// Set stores v under key. A key that already exists keeps its position.
func (o *Object) Set(key string, v Value) {
	if o.fields == nil {
		o.fields = make(map[string]Value)
	}
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Delete removes key, if present.
func (o *Object) Delete(key string) {
	if _, ok := o.fields[key]; !ok {
		return
	}
	delete(o.fields, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// All iterates fields in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.fields[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	out := NewObject(o.Len())
	for k, v := range o.All() {
		out.Set(k, CloneValue(v))
	}
	return out
}

// CloneValue deep-copies containers; scalars are returned as is.
func CloneValue(v Value) Value {
	switch t := v.(type) {
	case Array:
		out := make(Array, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	case *Object:
		return t.Clone()
	default:
		return v
	}
}

// Equal reports whether a and b are structurally equal. Object key order is
// significant and NaN equals NaN.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Null:
		return true
	case Bool:
		return x == b.(Bool)
	case Number:
		y := b.(Number)
		if math.IsNaN(float64(x)) && math.IsNaN(float64(y)) {
			return true
		}
		return x == y
	case String:
		return x == b.(String)
	case Array:
		y := b.(Array)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y := b.(*Object)
		if x.Len() != y.Len() {
			return false
		}
		if x.Len() == 0 {
			return true
		}
		for i, k := range x.keys {
			if y.keys[i] != k || !Equal(x.fields[k], y.fields[k]) {
				return false
			}
		}
		return true
	}
	return false
}
