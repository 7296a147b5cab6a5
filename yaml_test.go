package reshape_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/reshape"
)

func TestParseYAML(t *testing.T) {
	v, err := reshape.ParseYAML([]byte(`
zeta: 1
alpha:
  - true
  - ~
  - 2.5
  - "007"
  - .nan
  - 0x10
anchor: &a {k: v}
ref: *a
`))
	require.NoError(t, err)
	obj := v.(*reshape.Object)
	assert.Equal(t, []string{"zeta", "alpha", "anchor", "ref"}, obj.Keys())

	alpha, _ := obj.Get("alpha")
	arr := alpha.(reshape.Array)
	assert.Equal(t, reshape.Bool(true), arr[0])
	assert.Equal(t, reshape.Null{}, arr[1])
	assert.Equal(t, reshape.Number(2.5), arr[2])
	assert.Equal(t, reshape.String("007"), arr[3])
	assert.True(t, math.IsNaN(float64(arr[4].(reshape.Number))))
	assert.Equal(t, reshape.Number(16), arr[5])

	ref, _ := obj.Get("ref")
	assert.Equal(t, `{"k":"v"}`, encode(t, ref))
}

func TestParseYAML_Empty(t *testing.T) {
	v, err := reshape.ParseYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, reshape.Null{}, v)
}

func TestParseYAML_Errors(t *testing.T) {
	_, err := reshape.ParseYAML([]byte("a: [1, 2"))
	iss, ok := reshape.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, reshape.CodeParseError, iss[0].Code)

	_, err = reshape.ParseYAML([]byte("a:\n  b:\n    c: 1\n"), reshape.ParseOpt{MaxDepth: 1})
	iss, ok = reshape.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, reshape.CodeMaxDepth, iss[0].Code)
	assert.Equal(t, "/a/b", iss[0].Path)

	_, err = reshape.ParseYAML([]byte("abc: 1"), reshape.ParseOpt{MaxBytes: 3})
	iss, ok = reshape.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, reshape.CodeTruncated, iss[0].Code)
}

func TestParseYAML_DuplicateKeys(t *testing.T) {
	src := []byte("a: 1\nb: 2\na: 3\n")

	v, err := reshape.ParseYAML(src)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"b":2}`, encode(t, v))

	var warned []reshape.Issue
	_, err = reshape.ParseYAML(src, reshape.ParseOpt{
		Strictness: reshape.Strictness{OnDuplicateKey: reshape.Warn},
		OnIssue:    func(it reshape.Issue) { warned = append(warned, it) },
	})
	require.NoError(t, err)
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0].Message, "at 3:1 (first at 1:1)")

	_, err = reshape.ParseYAML(src, reshape.ParseOpt{Strictness: reshape.Strictness{OnDuplicateKey: reshape.Error}})
	iss, ok := reshape.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, reshape.CodeDuplicateKey, iss[0].Code)
	assert.Equal(t, "/a", iss[0].Path)
}

func TestEncodeYAML(t *testing.T) {
	o := reshape.NewObject(0)
	o.Set("b", reshape.Number(2))
	o.Set("a", reshape.Array{reshape.String("true"), reshape.Number(1.5), reshape.Null{}, reshape.Number(math.Inf(-1))})

	b, err := reshape.EncodeYAML(o)
	require.NoError(t, err)
	assert.Equal(t, "b: 2\na:\n    - \"true\"\n    - 1.5\n    - null\n    - -.inf\n", string(b))

	back, err := reshape.ParseYAML(b)
	require.NoError(t, err)
	assert.True(t, reshape.Equal(o, back))
}
