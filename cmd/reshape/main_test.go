package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderDoc = `{"id":"A1","items":[{"sku":"x","qty":2},{"sku":"y","qty":1}],"paid":true}`

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t, "")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Usage:")

	code, _, _ = runCLI(t, "", "bogus")
	assert.Equal(t, exitUsage, code)
}

func TestRun_Infer(t *testing.T) {
	code, stdout, stderr := runCLI(t, `{"a":1,"b":[{"c":"x"}]}`, "infer", "-indent", "")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t,
		`{"a":{"dataType":"number","source":".a"},"b":{"dataType":"array","source":".b*","nestedData":{"c":{"dataType":"string","source":".b*.c"}}}}`,
		stdout)
}

func TestRun_InferThenExecuteRoundTrip(t *testing.T) {
	code, schema, stderr := runCLI(t, orderDoc, "infer")
	require.Equal(t, exitOK, code, stderr)

	schemaPath := writeFile(t, "schema.json", schema)
	code, stdout, stderr := runCLI(t, orderDoc, "execute", "-schema", schemaPath, "-indent", "")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, orderDoc, stdout)
}

func TestRun_ExecuteYAMLSchema(t *testing.T) {
	schema := `
label:
  dataType: string
  source: "Order + .id"
skus:
  dataType: array
  source: .items*
  nestedData:
    sku:
      dataType: string
      source: .items*.sku
`
	schemaPath := writeFile(t, "schema.yaml", schema)
	code, stdout, stderr := runCLI(t, orderDoc, "execute", "-schema", schemaPath, "-indent", "")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, `{"label":"Order A1","skus":[{"sku":"x"},{"sku":"y"}]}`, stdout)
}

func TestRun_ExecuteCheck(t *testing.T) {
	schemaPath := writeFile(t, "schema.json",
		`{"list":{"dataType":"array","source":".missing*","nestedData":{}}}`)

	code, stdout, _ := runCLI(t, orderDoc, "execute", "-schema", schemaPath, "-indent", "")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, `{"list":"source no data at : .missing*"}`, stdout)

	code, _, stderr := runCLI(t, orderDoc, "execute", "-schema", schemaPath, "-check")
	assert.Equal(t, exitDiagnostics, code)
	assert.Contains(t, stderr, "source_no_data at /list")
}

func TestRun_ExecuteMissingSchema(t *testing.T) {
	code, _, _ := runCLI(t, orderDoc, "execute")
	assert.Equal(t, exitUsage, code)
}

func TestRun_ExecuteInvalidSchema(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", `{"x":{"dataType":"date","source":".a"}}`)
	code, _, stderr := runCLI(t, orderDoc, "execute", "-schema", schemaPath)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "invalid_data_type at /x/dataType")
}

func TestRun_Resolve(t *testing.T) {
	code, stdout, stderr := runCLI(t, orderDoc, "resolve", "-indent", "", ".items.1.sku")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, `"y"`, stdout)

	code, stdout, _ = runCLI(t, orderDoc, "resolve", "-indent", "", ".items*")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, `[{"sku":"x","qty":2},{"sku":"y","qty":1}]`, stdout)

	code, _, stderr = runCLI(t, orderDoc, "resolve", ".nope")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "nothing at .nope")
}

func TestRun_StrictRejectsDuplicates(t *testing.T) {
	for _, driver := range []string{"std", "gojson"} {
		code, _, stderr := runCLI(t, `{"a":1,"a":2}`, "infer", "-strict", "-driver", driver)
		assert.Equal(t, exitError, code, driver)
		assert.Contains(t, stderr, "duplicate_key at /a", driver)
	}
	code, _, _ := runCLI(t, `{"a":1,"a":2}`, "infer", "-driver", "std")
	assert.Equal(t, exitOK, code)
}

func TestRun_UnknownDriver(t *testing.T) {
	code, _, stderr := runCLI(t, `{}`, "infer", "-driver", "nope")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "unknown driver")
}

func TestRun_JSONSchema(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", `{"a":{"dataType":"boolean","source":".a"}}`)
	code, stdout, stderr := runCLI(t, "", "jsonschema", "-schema", schemaPath, "-indent", "")
	require.Equal(t, exitOK, code, stderr)
	assert.JSONEq(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {"a": {"type": "boolean"}},
		"required": ["a"],
		"additionalProperties": false
	}`, stdout)
}

func TestRun_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema.yaml")
	code, _, stderr := runCLI(t, `{"a":"x"}`, "infer", "-o", out)
	require.Equal(t, exitOK, code, stderr)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a:\n    dataType: string\n    source: .a\n", string(b))
}
