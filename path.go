package reshape

import (
	"strconv"
	"strings"
)

const (
	pathSep  = "."
	wildcard = "*"
)

// Resolve reads the value addressed by a dotted path expression.
//
// A leading dot marks a root-relative path. When the current first segment ends
// with the wildcard marker the whole value under that key is returned and the
// rest of the path is ignored; wildcards are only honoured there. ok is false
// when nothing exists at the path, including when an intermediate segment is
// missing. A path with no segments resolves to the diagnostic string
// DiagSourcePath + path instead of failing.
func Resolve(path string, doc Value) (v Value, ok bool) {
	return resolve(path, path, doc)
}

func resolve(path, orig string, doc Value) (Value, bool) {
	segs := strings.Split(path, pathSep)
	segs[0] = strings.TrimSpace(segs[0])
	if segs[0] == "" {
		segs = segs[1:]
	}
	if len(segs) == 0 {
		return String(DiagSourcePath + orig), true
	}

	first := segs[0]
	if strings.HasSuffix(first, wildcard) {
		return lookup(doc, strings.TrimSuffix(first, wildcard))
	}
	if len(segs) == 1 {
		return lookup(doc, first)
	}
	next, _ := lookup(doc, first)
	return resolve(strings.Join(segs[1:], pathSep), orig, next)
}

// lookup reads one segment. Objects are keyed by name, arrays by canonical
// non-negative index; anything else, including absent, yields absent.
func lookup(doc Value, seg string) (Value, bool) {
	switch t := doc.(type) {
	case *Object:
		return t.Get(seg)
	case Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(t) || strconv.Itoa(i) != seg {
			return nil, false
		}
		return t[i], true
	default:
		return nil, false
	}
}

// IsWildcard reports whether a source ends with the wildcard marker.
func IsWildcard(source string) bool { return strings.HasSuffix(source, wildcard) }

// IsRootPath reports whether a source is a path expression rather than a
// literal constant.
func IsRootPath(source string) bool { return strings.HasPrefix(source, pathSep) }
