package engine

// Kind represents token kinds produced by a document token source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "begin_object"
	case KindEndObject:
		return "end_object"
	case KindBeginArray:
		return "begin_array"
	case KindEndArray:
		return "end_array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Token represents a streaming token with approximate input offset.
// Numbers are kept as text so the consumer decides how to interpret them.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is the minimal interface a document driver implements.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// ContainerKind distinguishes object and array frames for drivers that
// track nesting to tell keys apart from string values.
type ContainerKind int

const (
	ContainerObject ContainerKind = iota
	ContainerArray
)

// Frame is one level of the nesting stack kept by token drivers.
type Frame struct {
	Kind         ContainerKind
	ExpectingKey bool
}

// Stack tracks nesting so that drivers built on decoders which do not
// distinguish keys from strings can emit KindKey tokens.
type Stack struct {
	frames []Frame
}

// Push opens a container.
func (s *Stack) Push(k ContainerKind) {
	s.frames = append(s.frames, Frame{Kind: k, ExpectingKey: k == ContainerObject})
}

// Pop closes the innermost container and marks the parent value as consumed.
func (s *Stack) Pop() {
	if n := len(s.frames); n > 0 {
		s.frames = s.frames[:n-1]
	}
	s.ValueDone()
}

// IsKey reports whether a string token at this position is an object key and,
// if so, records that the key's value is expected next.
func (s *Stack) IsKey() bool {
	if n := len(s.frames); n > 0 {
		top := &s.frames[n-1]
		if top.Kind == ContainerObject && top.ExpectingKey {
			top.ExpectingKey = false
			return true
		}
	}
	return false
}

// ValueDone records that a value inside the current object was consumed.
func (s *Stack) ValueDone() {
	if n := len(s.frames); n > 0 {
		top := &s.frames[n-1]
		if top.Kind == ContainerObject && !top.ExpectingKey {
			top.ExpectingKey = true
		}
	}
}

// Depth returns the current nesting depth.
func (s *Stack) Depth() int { return len(s.frames) }
