package reshape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/reshape/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Schema construction
	CodeInvalidDataType  = "invalid_data_type"
	CodeMissingNested    = "missing_nested"
	CodeUnexpectedNested = "unexpected_nested"
	CodeDuplicateKey     = "duplicate_key"
	CodeSchemaCycle      = "schema_cycle"
	CodeInvalidType      = "invalid_type"
	// Document decoding
	CodeParseError = "parse_error"
	CodeTruncated  = "truncated"
	CodeMaxDepth   = "max_depth"
	// Diagnostics embedded in executor output
	CodeSourcePathError = "source_path_error"
	CodeNoWildcard      = "no_wildcard"
	CodeSourceNoData    = "source_no_data"
)

// Issue represents a single schema, decoding or diagnostic entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	Offset  int64 // Byte offset in the input source (0 when unknown).
	// Params carries structured parameters (e.g., {"tag":"date"}) for i18n
	// and host-side matching.
	Params map[string]any
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. missing_nested at /items
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is can see through Issues.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Localize rewrites every message using the current i18n translator.
func (iss Issues) Localize() Issues {
	out := make(Issues, len(iss))
	for i, it := range iss {
		data := make(map[string]string, len(it.Params))
		for k, v := range it.Params {
			data[k] = fmt.Sprint(v)
		}
		it.Message = i18n.T(it.Code, data)
		out[i] = it
	}
	return out
}

func singleIssue(code, msg string) Issues { return AppendIssues(nil, Issue{Code: code, Path: "/", Message: msg}) }

func message(code string, data map[string]string) string { return i18n.T(code, data) }
