package reshape

import (
	"fmt"
	"strconv"
	"strings"
)

// Ref hands out PathRefs for building Issue locations.
type Ref interface {
	Root() PathRef
	At(pointer string) PathRef
}

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code, msg string, kv ...any) Issue
}

type refImpl struct{}

// NewRef returns a Ref rooted at the document root.
func NewRef() Ref { return refImpl{} }

func (refImpl) Root() PathRef { return &pathRef{} }

func (r refImpl) At(pointer string) PathRef {
	if pointer == "" || pointer == "/" {
		return r.Root()
	}
	var parts []string
	for _, p := range strings.Split(pointer, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func (p *pathRef) Field(name string) PathRef {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	return &pathRef{parts: append(append([]string{}, p.parts...), pointerEscaper.Replace(name))}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	for i := 0; i+1 < len(kv); i += 2 {
		if m == nil {
			m = map[string]any{}
		}
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m}
}
