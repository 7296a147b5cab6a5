package reshape

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a single YAML document into an ordered Value. Mapping keys
// keep their document order. Duplicate mapping keys follow
// opt.Strictness.OnDuplicateKey, and MaxDepth bounds nesting (DefaultMaxDepth
// when unset).
func ParseYAML(data []byte, opts ...ParseOpt) (Value, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, singleIssue(CodeTruncated, message(CodeTruncated, nil))
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	yr := yamlReader{opt: opt, maxDepth: depthOrDefault(opt.MaxDepth)}
	return yr.value(&node, NewRef().Root(), 0)
}

// EncodeYAML renders v as a YAML document with object keys in insertion order.
func EncodeYAML(v Value) ([]byte, error) {
	return yaml.Marshal(ValueToYAML(v))
}

// ValueFromYAML converts a yaml.Node tree into a Value. Later duplicate
// mapping keys overwrite earlier ones.
func ValueFromYAML(node *yaml.Node) (Value, error) {
	yr := yamlReader{maxDepth: DefaultMaxDepth}
	return yr.value(node, NewRef().Root(), 0)
}

type yamlReader struct {
	opt      ParseOpt
	maxDepth int
}

func (yr *yamlReader) value(node *yaml.Node, at PathRef, depth int) (Value, error) {
	if node == nil {
		return Null{}, nil
	}
	if depth > yr.maxDepth {
		return nil, Issues{at.Issue(CodeMaxDepth, message(CodeMaxDepth, nil))}
	}
	switch node.Kind {
	case 0:
		return Null{}, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null{}, nil
		}
		return yr.value(node.Content[0], at, depth)
	case yaml.AliasNode:
		return yr.value(node.Alias, at, depth+1)
	case yaml.SequenceNode:
		arr := make(Array, 0, len(node.Content))
		for i, c := range node.Content {
			v, err := yr.value(c, at.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		return yr.mapping(node, at, depth)
	case yaml.ScalarNode:
		return scalarFromYAML(node, at)
	}
	return nil, Issues{at.Issue(CodeInvalidType, fmt.Sprintf("unsupported YAML node kind %d", node.Kind))}
}

func (yr *yamlReader) mapping(node *yaml.Node, at PathRef, depth int) (Value, error) {
	obj := NewObject(len(node.Content) / 2)
	first := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		key := k.Value
		field := at.Field(key)
		if prev, dup := first[key]; dup && yr.opt.Strictness.OnDuplicateKey != Ignore {
			it := field.Issue(CodeDuplicateKey,
				fmt.Sprintf("%s at %d:%d (first at %d:%d)", message(CodeDuplicateKey, map[string]string{"key": key}), k.Line, k.Column, prev.Line, prev.Column),
				"key", key)
			if yr.opt.Strictness.OnDuplicateKey == Error || yr.opt.FailFast {
				return nil, Issues{it}
			}
			if yr.opt.OnIssue != nil {
				yr.opt.OnIssue(it)
			}
		} else if !dup {
			first[key] = k
		}
		v, err := yr.value(node.Content[i+1], field, depth+1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	return obj, nil
}

func scalarFromYAML(node *yaml.Node, at PathRef) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, Issues{at.Issue(CodeParseError, err.Error())}
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, Issues{at.Issue(CodeParseError, err.Error())}
		}
		return Number(f), nil
	default:
		return String(node.Value), nil
	}
}

// ValueToYAML converts v into a yaml.Node tree.
func ValueToYAML(v Value) *yaml.Node {
	switch t := v.(type) {
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: StringForm(t)}
	case Number:
		return numberToYAML(float64(t))
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t)}
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range t {
			n.Content = append(n.Content, ValueToYAML(e))
		}
		return n
	case *Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, e := range t.All() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				ValueToYAML(e),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func numberToYAML(f float64) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".nan"}
	case math.IsInf(f, 1):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".inf"}
	case math.IsInf(f, -1):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: "-.inf"}
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: FormatNumber(f)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: FormatNumber(f)}
	}
}
