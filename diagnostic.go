package reshape

import "strings"

// Diagnostic prefixes embedded as string values in executor output. Hosts may
// match on them, so the text is part of the API.
const (
	DiagSourcePath = "source path error: "
	DiagNoWildcard = "no * indicator at : "
	DiagNoData     = "source no data at : "
	DiagMaxDepth   = "max depth exceeded at : "
)

var diagnosticCodes = []struct {
	prefix string
	code   string
}{
	{DiagSourcePath, CodeSourcePathError},
	{DiagNoWildcard, CodeNoWildcard},
	{DiagNoData, CodeSourceNoData},
	{DiagMaxDepth, CodeMaxDepth},
}

// DiagnosticCode reports whether v is a diagnostic string and returns its
// issue code and the source it refers to.
func DiagnosticCode(v Value) (code, source string, ok bool) {
	s, isStr := v.(String)
	if !isStr {
		return "", "", false
	}
	for _, d := range diagnosticCodes {
		if rest, found := strings.CutPrefix(string(s), d.prefix); found {
			return d.code, rest, true
		}
	}
	return "", "", false
}

// CollectDiagnostics walks an output document and reports every embedded
// diagnostic string with its JSON Pointer. A data string that happens to begin
// with a diagnostic prefix is reported as well.
func CollectDiagnostics(v Value) Issues {
	var iss Issues
	collectDiagnostics(v, NewRef().Root(), &iss)
	return iss
}

func collectDiagnostics(v Value, at PathRef, iss *Issues) {
	switch t := v.(type) {
	case *Object:
		for k, e := range t.All() {
			collectDiagnostics(e, at.Field(k), iss)
		}
	case Array:
		for i, e := range t {
			collectDiagnostics(e, at.Index(i), iss)
		}
	default:
		if code, src, ok := DiagnosticCode(v); ok {
			*iss = AppendIssues(*iss, at.Issue(code, message(code, map[string]string{"source": src}), "source", src))
		}
	}
}
