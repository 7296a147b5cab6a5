package reshape

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

const (
	formulaSep = "+"
	// fixedCardinality as an Array source yields exactly one element.
	fixedCardinality = "1"
)

// Execute builds a new document from doc following m. Field order of the
// output follows m.
//
// Execute never fails: problems are placed in the output as diagnostic
// strings (see DiagNoWildcard, DiagNoData, DiagMaxDepth) at the field that
// failed, and sibling fields are evaluated normally.
func Execute(m *Map, doc Value, opts ...ExecOpt) *Object {
	opt := lastOpt(opts)
	x := &executor{doc: doc, maxDepth: depthOrDefault(opt.MaxDepth), log: opt.Logger}
	return x.run(m, substTable{}, 0)
}

type executor struct {
	doc      Value
	maxDepth int
	log      *slog.Logger
}

func (x *executor) run(m *Map, subst substTable, depth int) *Object {
	out := NewObject(m.Len())
	for name, n := range m.All() {
		src := subst.apply(n.Source)
		switch {
		case n.DataType.IsPrimitive():
			out.Set(name, x.primitive(n.DataType, src))
		case n.DataType == TypeObject:
			if depth >= x.maxDepth {
				out.Set(name, x.diag(name, DiagMaxDepth, src))
				continue
			}
			out.Set(name, x.run(n.Nested, subst, depth+1))
		case n.DataType == TypeArray:
			out.Set(name, x.array(name, n.Nested, src, subst, depth))
		}
	}
	return out
}

// primitive derives a String, Number or Boolean field from a literal, a
// formula or a single path.
func (x *executor) primitive(t DataType, src string) Value {
	if IsFormula(src) {
		var b strings.Builder
		for _, op := range strings.Split(src, formulaSep) {
			trimmed := strings.TrimSpace(op)
			if !IsRootPath(trimmed) {
				// literal fragments keep their own spacing
				b.WriteString(op)
				continue
			}
			v, _ := Resolve(trimmed, x.doc)
			b.WriteString(joinForm(v))
		}
		return String(b.String())
	}
	if !IsRootPath(src) {
		return Coerce(t, String(src))
	}
	v, _ := Resolve(src, x.doc)
	return Coerce(t, v)
}

// IsFormula reports whether src joins operands with "+" and at least one
// of them is a path. Literal operands are copied verbatim, path operands are
// resolved and rendered as text.
func IsFormula(src string) bool {
	operands := strings.Split(src, formulaSep)
	return len(operands) > 1 && slices.ContainsFunc(operands, func(op string) bool {
		return IsRootPath(strings.TrimSpace(op))
	})
}

// array expands an Array field either once (fixed cardinality) or once per
// element of the wildcard collection.
func (x *executor) array(name string, nested *Map, src string, subst substTable, depth int) Value {
	if depth >= x.maxDepth {
		return x.diag(name, DiagMaxDepth, src)
	}
	if src == fixedCardinality {
		return Array{x.run(nested, substTable{}, depth+1)}
	}
	if !IsWildcard(src) {
		return x.diag(name, DiagNoWildcard, src)
	}
	coll, _ := Resolve(src, x.doc)
	items, ok := coll.(Array)
	if !ok || len(items) == 0 {
		return x.diag(name, DiagNoData, src)
	}

	base := strings.TrimSuffix(src, wildcard)
	out := make(Array, 0, len(items))
	for i := range items {
		indexed := base + pathSep + strconv.Itoa(i)
		out = append(out, x.run(nested, subst.with(src, indexed), depth+1))
	}
	return out
}

func (x *executor) diag(field, prefix, src string) Value {
	d := prefix + src
	if x.log != nil {
		x.log.Debug("field diagnostic",
			slog.String("component", "reshape"),
			slog.String("field", field),
			slog.String("source", src),
			slog.String("diagnostic", d),
		)
	}
	return String(d)
}

// substTable rewrites wildcard sources into per-iteration indexed sources.
// It is persistent: with returns an extended copy and never mutates the
// receiver, so sibling iterations cannot observe each other's bindings.
type substTable struct {
	from []string
	to   []string
}

func (t substTable) apply(src string) string {
	for i, f := range t.from {
		src = strings.ReplaceAll(src, f, t.to[i])
	}
	return src
}

func (t substTable) with(from, to string) substTable {
	n := substTable{from: slices.Clone(t.from), to: slices.Clone(t.to)}
	if i := slices.Index(n.from, from); i >= 0 {
		n.to[i] = to
		return n
	}
	n.from = append(n.from, from)
	n.to = append(n.to, to)
	return n
}

