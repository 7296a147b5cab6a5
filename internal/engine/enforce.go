package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by engine helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal issues (duplicate key warnings). Fatal issues
	// are reported to the sink as well before being returned.
	IssueSink func(SimpleIssue)
	// FailFast turns every reported issue into an error.
	FailFast bool
}

// Disabled reports whether the options would never reject or report anything.
func (o EnforceOptions) Disabled() bool {
	return o.OnDuplicate == DupIgnore && o.MaxDepth <= 0 && o.MaxBytes <= 0
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingSource{inner: inner, opt: opt}
}

type enforceFrame struct {
	kind    ContainerKind
	path    string
	keys    map[string]struct{}
	key     string
	nextIdx int
}

type enforcingSource struct {
	inner  TokenSource
	opt    EnforceOptions
	frames []enforceFrame
}

func (e *enforcingSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		kind := ContainerArray
		var keys map[string]struct{}
		if tok.Kind == KindBeginObject {
			kind = ContainerObject
			keys = make(map[string]struct{})
		}
		e.frames = append(e.frames, enforceFrame{kind: kind, path: path, keys: keys})
		if e.opt.MaxDepth > 0 && len(e.frames) > e.opt.MaxDepth {
			return Token{}, e.fatal(SimpleIssue{Code: "max_depth", Path: pointerOrRoot(path), Message: "max depth exceeded"})
		}
	case KindEndObject, KindEndArray:
		if n := len(e.frames); n > 0 {
			e.frames = e.frames[:n-1]
		}
	case KindKey:
		if n := len(e.frames); n > 0 {
			top := &e.frames[n-1]
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				si := SimpleIssue{
					Code:    "duplicate_key",
					Path:    joinPointer(top.path, tok.String),
					Message: "key '" + tok.String + "' duplicated",
				}
				if e.opt.OnDuplicate == DupError || e.opt.FailFast {
					return Token{}, e.fatal(si)
				}
				e.report(si)
			}
			top.keys[tok.String] = struct{}{}
			top.key = tok.String
		}
	default:
		e.valuePath()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, e.fatal(SimpleIssue{Code: "truncated", Path: "/", Message: "max bytes exceeded"})
		}
	}
	return tok, nil
}

// valuePath returns the JSON Pointer of the value about to be read and
// advances array indexes.
func (e *enforcingSource) valuePath() string {
	n := len(e.frames)
	if n == 0 {
		return ""
	}
	top := &e.frames[n-1]
	if top.kind == ContainerArray {
		p := joinPointer(top.path, strconv.Itoa(top.nextIdx))
		top.nextIdx++
		return p
	}
	return joinPointer(top.path, top.key)
}

func (e *enforcingSource) report(si SimpleIssue) {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
}

func (e *enforcingSource) fatal(si SimpleIssue) error {
	e.report(si)
	return IssueError{si}
}

func (e *enforcingSource) Location() int64 { return e.inner.Location() }

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
