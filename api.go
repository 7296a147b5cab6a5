package reshape

import (
	"io"
)

// Transformer binds a validated Map to execution options so it can be applied
// to many documents. A Transformer is immutable and safe for concurrent use.
type Transformer struct {
	schema *Map
	opt    ExecOpt
}

// New validates m and returns a Transformer holding a private copy of it.
// Later changes to m do not affect the Transformer.
func New(m *Map, opts ...ExecOpt) (*Transformer, error) {
	if m == nil {
		return nil, singleIssue(CodeMissingNested, message(CodeMissingNested, nil))
	}
	if iss := Validate(m); len(iss) > 0 {
		return nil, iss
	}
	return &Transformer{schema: m.Clone(), opt: lastOpt(opts)}, nil
}

// MustNew is New that panics on an invalid schema.
func MustNew(m *Map, opts ...ExecOpt) *Transformer {
	t, err := New(m, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Schema returns a copy of the bound Map.
func (t *Transformer) Schema() *Map { return t.schema.Clone() }

// Apply executes the bound Map against doc.
func (t *Transformer) Apply(doc Value) *Object { return Execute(t.schema, doc, t.opt) }

// ApplyJSON decodes data and executes the bound Map against it. Only decoding
// can fail; field level problems are reported as diagnostics in the output.
func (t *Transformer) ApplyJSON(data []byte, opts ...ParseOpt) (*Object, error) {
	doc, err := ParseJSON(data, opts...)
	if err != nil {
		return nil, err
	}
	return t.Apply(doc), nil
}

// ApplyReader is ApplyJSON for a stream.
func (t *Transformer) ApplyReader(r io.Reader, opts ...ParseOpt) (*Object, error) {
	doc, err := ReadJSON(r, opts...)
	if err != nil {
		return nil, err
	}
	return t.Apply(doc), nil
}
