package reshape

import "log/slog"

// DefaultMaxDepth bounds schema nesting during execution and document nesting
// during inference when no explicit limit is given.
const DefaultMaxDepth = 256

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate JSON keys).
}

// ParseOpt bundles document decoding options. Zero values disable the
// corresponding check.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	FailFast   bool
	// OnIssue receives non-fatal issues such as duplicate key warnings.
	OnIssue func(Issue)
}

// ExecOpt configures Execute.
type ExecOpt struct {
	// MaxDepth bounds schema nesting; 0 means DefaultMaxDepth.
	MaxDepth int
	// Logger receives a debug record for every diagnostic placed in the
	// output. nil disables logging.
	Logger *slog.Logger
}

// InferOpt configures Infer.
type InferOpt struct {
	// MaxDepth bounds document nesting; 0 means DefaultMaxDepth.
	MaxDepth int
}

func lastOpt[T any](opts []T) T {
	var opt T
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}

func depthOrDefault(d int) int {
	if d <= 0 {
		return DefaultMaxDepth
	}
	return d
}
