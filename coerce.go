package reshape

import "strings"

// Coerce converts a resolved raw value to the declared primitive type. raw may
// be nil (absent).
//
//   - TypeBoolean is true only when the string form of raw is exactly "true".
//   - TypeNumber parses the string form; non-numeric text yields NaN.
//   - TypeString, and the container types, pass raw through unchanged.
//
// Absent passthrough values become Null so the output field always exists.
func Coerce(t DataType, raw Value) Value {
	switch t {
	case TypeBoolean:
		return Bool(StringForm(raw) == "true")
	case TypeNumber:
		if n, ok := raw.(Number); ok {
			return n
		}
		return Number(ParseNumber(StringForm(raw)))
	default:
		if raw == nil {
			return Null{}
		}
		return raw
	}
}

// StringForm renders v the way a JavaScript host stringifies values: absent is
// "undefined", arrays join their elements with commas and objects render as
// "[object Object]".
func StringForm(v Value) string {
	if v == nil {
		return "undefined"
	}
	switch t := v.(type) {
	case Null:
		return "null"
	case Bool:
		if t {
			return "true"
		}
		return "false"
	case Number:
		return FormatNumber(float64(t))
	case String:
		return string(t)
	case Array:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = joinForm(e)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// joinForm is the string form used when values are concatenated: null and
// absent contribute nothing.
func joinForm(v Value) string {
	if v == nil {
		return ""
	}
	if _, ok := v.(Null); ok {
		return ""
	}
	return StringForm(v)
}
