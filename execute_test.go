package reshape_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/reshape"
)

func encode(t *testing.T, v reshape.Value) string {
	t.Helper()
	b, err := reshape.EncodeJSON(v, "")
	require.NoError(t, err)
	return string(b)
}

func mapFromJSON(t *testing.T, js string) *reshape.Map {
	t.Helper()
	m, err := reshape.ParseMapJSON([]byte(js))
	require.NoError(t, err)
	return m
}

func TestExecute_PrimitivesAndLiterals(t *testing.T) {
	m := mapFromJSON(t, `{
		"name":   {"dataType": "string",  "source": ".user.name"},
		"age":    {"dataType": "number",  "source": ".user.age"},
		"admin":  {"dataType": "boolean", "source": ".user.admin"},
		"kind":   {"dataType": "string",  "source": "customer"},
		"score":  {"dataType": "number",  "source": "12.5"},
		"active": {"dataType": "boolean", "source": "true"},
		"gone":   {"dataType": "string",  "source": ".user.missing"}
	}`)
	doc := mustParse(t, `{"user":{"name":"Sam","age":"41","admin":"yes"}}`)

	out := reshape.Execute(m, doc)
	assert.Equal(t,
		`{"name":"Sam","age":41,"admin":false,"kind":"customer","score":12.5,"active":true,"gone":null}`,
		encode(t, out))
}

func TestExecute_Formula(t *testing.T) {
	m := mapFromJSON(t, `{
		"greeting": {"dataType": "string", "source": "Hello +.user.name"},
		"tight":    {"dataType": "string", "source": ".user.first+.user.last"},
		"spaced":   {"dataType": "string", "source": ".user.first + .user.last"},
		"mixed":    {"dataType": "string", "source": ".user.first+ +.user.last+!"},
		"nulls":    {"dataType": "string", "source": "[+.user.none+.user.nil+]"},
		"numeric":  {"dataType": "number", "source": ".user.n+.user.n"}
	}`)
	doc := mustParse(t, `{"user":{"name":"Sam","first":"Ada","last":"Lovelace","nil":null,"n":1}}`)

	out := reshape.Execute(m, doc)
	get := func(k string) reshape.Value { v, _ := out.Get(k); return v }
	assert.Equal(t, reshape.String("Hello Sam"), get("greeting"))
	assert.Equal(t, reshape.String("AdaLovelace"), get("tight"))
	assert.Equal(t, reshape.String("AdaLovelace"), get("spaced"))
	assert.Equal(t, reshape.String("Ada Lovelace!"), get("mixed"))
	assert.Equal(t, reshape.String("[]"), get("nulls"))
	// formulas always produce text
	assert.Equal(t, reshape.String("11"), get("numeric"))
}

func TestExecute_LiteralWithPlusIsNotFormula(t *testing.T) {
	m := mapFromJSON(t, `{
		"s": {"dataType": "string", "source": "a+b"},
		"n": {"dataType": "number", "source": "1+1"}
	}`)
	out := reshape.Execute(m, reshape.NewObject(0))
	s, _ := out.Get("s")
	assert.Equal(t, reshape.String("a+b"), s)
	n, _ := out.Get("n")
	assert.True(t, math.IsNaN(float64(n.(reshape.Number))))
}

func TestExecute_NestedObjectSharesDocument(t *testing.T) {
	m := mapFromJSON(t, `{
		"customer": {"dataType": "object", "source": ".ignored", "nestedData": {
			"name": {"dataType": "string", "source": ".buyer.name"},
			"city": {"dataType": "string", "source": ".shipping.city"}
		}}
	}`)
	doc := mustParse(t, `{"buyer":{"name":"Kai"},"shipping":{"city":"Oslo"}}`)
	assert.Equal(t, `{"customer":{"name":"Kai","city":"Oslo"}}`, encode(t, reshape.Execute(m, doc)))
}

func TestExecute_WildcardArray(t *testing.T) {
	m := mapFromJSON(t, `{
		"lines": {"dataType": "array", "source": ".items*", "nestedData": {
			"sku":   {"dataType": "string", "source": ".items*.sku"},
			"label": {"dataType": "string", "source": "#+.items*.sku"},
			"tag":   {"dataType": "string", "source": "line"}
		}}
	}`)
	doc := mustParse(t, `{"items":[{"sku":"a"},{"sku":"b"},{"sku":"c"}]}`)
	assert.Equal(t,
		`{"lines":[{"sku":"a","label":"#a","tag":"line"},{"sku":"b","label":"#b","tag":"line"},{"sku":"c","label":"#c","tag":"line"}]}`,
		encode(t, reshape.Execute(m, doc)))
}

func TestExecute_IndexIsolation(t *testing.T) {
	m := mapFromJSON(t, `{
		"orders": {"dataType": "array", "source": ".orders*", "nestedData": {
			"id": {"dataType": "string", "source": ".orders*.id"},
			"lines": {"dataType": "array", "source": ".orders*.lines*", "nestedData": {
				"order": {"dataType": "string", "source": ".orders*.id"},
				"sku":   {"dataType": "string", "source": ".orders*.lines*.sku"}
			}}
		}},
		"first": {"dataType": "string", "source": ".orders*.id"}
	}`)
	doc := mustParse(t, `{"orders":[
		{"id":"o1","lines":[{"sku":"a"},{"sku":"b"}]},
		{"id":"o2","lines":[{"sku":"c"}]}
	]}`)

	out := reshape.Execute(m, doc)
	assert.Equal(t,
		`{"orders":[`+
			`{"id":"o1","lines":[{"order":"o1","sku":"a"},{"order":"o1","sku":"b"}]},`+
			`{"id":"o2","lines":[{"order":"o2","sku":"c"}]}],`+
			`"first":[{"id":"o1","lines":[{"sku":"a"},{"sku":"b"}]},{"id":"o2","lines":[{"sku":"c"}]}]}`,
		encode(t, out), spew.Sdump(reshape.ToAny(out)))
}

func TestExecute_FixedCardinality(t *testing.T) {
	m := mapFromJSON(t, `{
		"rows": {"dataType": "array", "source": ".rows*", "nestedData": {
			"meta": {"dataType": "array", "source": "1", "nestedData": {
				"v":   {"dataType": "number", "source": "2"},
				"sku": {"dataType": "string", "source": ".rows*.sku"}
			}}
		}}
	}`)
	for _, js := range []string{`{"rows":[{"sku":"a"}]}`, `{"rows":[{"sku":"a"},{"sku":"b"},{"sku":"c"}]}`} {
		out := reshape.Execute(m, mustParse(t, js))
		rows, _ := out.Get("rows")
		for _, r := range rows.(reshape.Array) {
			meta, _ := r.(*reshape.Object).Get("meta")
			require.Len(t, meta, 1)
			// the substitution table is reset inside fixed cardinality arrays
			// so the wildcard source resolves to the whole collection
			sku, _ := meta.(reshape.Array)[0].(*reshape.Object).Get("sku")
			rowsSeen, ok := sku.(reshape.Array)
			require.True(t, ok)
			first, _ := rowsSeen[0].(*reshape.Object).Get("sku")
			assert.Equal(t, reshape.String("a"), first)
		}
	}

	top := mapFromJSON(t, `{"one": {"dataType": "array", "source": "1", "nestedData": {}}}`)
	assert.Equal(t, `{"one":[{}]}`, encode(t, reshape.Execute(top, reshape.Null{})))
}

func TestExecute_ArrayDiagnostics(t *testing.T) {
	m := mapFromJSON(t, `{
		"before":   {"dataType": "string", "source": ".name"},
		"noStar":   {"dataType": "array",  "source": ".items", "nestedData": {}},
		"missing":  {"dataType": "array",  "source": ".nothing*", "nestedData": {}},
		"empty":    {"dataType": "array",  "source": ".empty*", "nestedData": {}},
		"scalar":   {"dataType": "array",  "source": ".name*", "nestedData": {}},
		"after":    {"dataType": "string", "source": ".name"}
	}`)
	doc := mustParse(t, `{"name":"x","items":[1],"empty":[]}`)
	assert.Equal(t, `{"before":"x",`+
		`"noStar":"no * indicator at : .items",`+
		`"missing":"source no data at : .nothing*",`+
		`"empty":"source no data at : .empty*",`+
		`"scalar":"source no data at : .name*",`+
		`"after":"x"}`, encode(t, reshape.Execute(m, doc)))
}

func TestExecute_DotOnlySource(t *testing.T) {
	m := mapFromJSON(t, `{"p": {"dataType": "string", "source": "."}}`)
	// "." is a path whose only segment is empty: it resolves to nothing
	assert.Equal(t, `{"p":null}`, encode(t, reshape.Execute(m, reshape.NewObject(0))))
}

func TestExecute_MaxDepth(t *testing.T) {
	inner := reshape.NewMap()
	inner.Set("v", reshape.Node{DataType: reshape.TypeString, Source: "leaf"})
	mid := reshape.NewMap()
	mid.Set("in", reshape.Node{DataType: reshape.TypeObject, Source: ".in", Nested: inner})
	m := reshape.NewMap()
	m.Set("out", reshape.Node{DataType: reshape.TypeObject, Source: ".out", Nested: mid})
	m.Set("list", reshape.Node{DataType: reshape.TypeArray, Source: "1", Nested: mid})

	assert.Equal(t, `{"out":{"in":{"v":"leaf"}},"list":[{"in":{"v":"leaf"}}]}`, encode(t, reshape.Execute(m, nil)))
	assert.Equal(t, `{"out":{"in":"max depth exceeded at : .in"},"list":[{"in":"max depth exceeded at : .in"}]}`,
		encode(t, reshape.Execute(m, nil, reshape.ExecOpt{MaxDepth: 1})))
}

func TestExecute_SelfReferentialMapStops(t *testing.T) {
	m := reshape.NewMap()
	m.Set("self", reshape.Node{DataType: reshape.TypeObject, Source: ".self", Nested: m})
	out := reshape.Execute(m, nil, reshape.ExecOpt{MaxDepth: 3})
	assert.Equal(t, `{"self":{"self":{"self":{"self":"max depth exceeded at : .self"}}}}`, encode(t, out))
}

func TestExecute_LogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := mapFromJSON(t, `{"xs": {"dataType": "array", "source": ".xs*", "nestedData": {}}}`)

	reshape.Execute(m, reshape.NewObject(0), reshape.ExecOpt{Logger: logger})
	assert.Contains(t, buf.String(), "field diagnostic")
	assert.Contains(t, buf.String(), "field=xs")
	assert.Contains(t, buf.String(), "component=reshape")
}

func TestExecute_DoesNotMutateInputs(t *testing.T) {
	m := mapFromJSON(t, `{"xs": {"dataType": "array", "source": ".xs*", "nestedData": {
		"v": {"dataType": "number", "source": ".xs*.v"}
	}}}`)
	doc := mustParse(t, `{"xs":[{"v":"1"},{"v":"2"}]}`)
	before := encode(t, doc)
	schemaBefore, err := m.MarshalJSON()
	require.NoError(t, err)

	reshape.Execute(m, doc)
	reshape.Execute(m, doc)

	assert.Equal(t, before, encode(t, doc))
	schemaAfter, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(schemaBefore), string(schemaAfter))
}
