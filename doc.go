// Package reshape rebuilds JSON documents into a new shape described by a
// declarative field map.
//
// The pieces:
//
//   - Resolve looks up dotted paths (".a.b.0") in a document.
//   - Coerce converts a resolved value to a field's declared DataType.
//   - Execute walks a Map and builds the output document, expanding wildcard
//     array sources ("items*") once per element.
//   - Infer derives a Map from an example document.
//
// Execute does not fail. A field whose source cannot be used carries a
// diagnostic string instead (see DiagNoWildcard and DiagNoData), and
// CollectDiagnostics turns those into Issues.
//
// Documents are ordered: Object keeps key insertion order through decoding,
// execution and encoding. JSON decoding goes through a pluggable JSONDriver
// with duplicate key, depth and size enforcement.
//
// Typical usage:
//
//	doc, err := reshape.ParseJSON(data)
//	m, err := reshape.Infer(doc.(*reshape.Object))
//	out := reshape.Execute(m, doc)
//	b, err := reshape.EncodeJSON(out, "  ")
package reshape
