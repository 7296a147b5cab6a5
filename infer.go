package reshape

import "strings"

// Infer derives a Map from an example document such that executing the Map
// against the same document reproduces it, as long as its arrays are non-empty
// and homogeneous and its leaves are not null.
//
// Known limitations, kept on purpose: null leaves are typed as String, only the
// first element of an array is sampled, and empty arrays are dropped.
func Infer(example *Object, opts ...InferOpt) (*Map, error) {
	return InferAt(example, "", opts...)
}

// InferAt is Infer with every emitted source prefixed by parentPath.
func InferAt(example *Object, parentPath string, opts ...InferOpt) (*Map, error) {
	inf := &inferrer{maxDepth: depthOrDefault(lastOpt(opts).MaxDepth)}
	m := inf.object(example, parentPath, NewRef().Root(), 0)
	if len(inf.issues) > 0 {
		return nil, inf.issues
	}
	return m, nil
}

type inferrer struct {
	maxDepth int
	issues   Issues
}

func (inf *inferrer) object(obj *Object, parent string, at PathRef, depth int) *Map {
	m := NewMap()
	if depth > inf.maxDepth {
		inf.issues = AppendIssues(inf.issues, at.Issue(CodeMaxDepth, message(CodeMaxDepth, nil), "maxDepth", inf.maxDepth))
		return m
	}
	for key, v := range obj.All() {
		if len(inf.issues) > 0 {
			break
		}
		path := strings.TrimSpace(parent + pathSep + key)
		switch t := v.(type) {
		case nil, Null:
			m.Set(key, Node{DataType: TypeString, Source: path})
		case Bool:
			m.Set(key, Node{DataType: TypeBoolean, Source: path})
		case Number:
			m.Set(key, Node{DataType: TypeNumber, Source: path})
		case String:
			m.Set(key, Node{DataType: TypeString, Source: path})
		case Array:
			if len(t) == 0 {
				continue
			}
			arrPath := path + wildcard
			m.Set(key, Node{
				DataType: TypeArray,
				Source:   arrPath,
				Nested:   inf.element(t[0], arrPath, at.Field(key).Index(0), depth+1),
			})
		case *Object:
			m.Set(key, Node{
				DataType: TypeObject,
				Source:   path,
				Nested:   inf.object(t, path, at.Field(key), depth+1),
			})
		}
	}
	return m
}

// element infers the shape of an array from its first element. Elements that
// are not objects have no fields to map.
func (inf *inferrer) element(v Value, parent string, at PathRef, depth int) *Map {
	if obj, ok := v.(*Object); ok {
		return inf.object(obj, parent, at, depth)
	}
	return NewMap()
}
