package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/reshape"
	"github.com/reoring/reshape/middleware"
)

func newTransformer(t *testing.T) *reshape.Transformer {
	t.Helper()
	m := reshape.NewMap()
	m.Set("name", reshape.Node{DataType: reshape.TypeString, Source: ".user.name"})
	m.Set("kind", reshape.Node{DataType: reshape.TypeString, Source: "customer"})
	tr, err := reshape.New(m)
	require.NoError(t, err)
	return tr
}

func TestReshape_RewritesBody(t *testing.T) {
	var gotBody string
	var gotSource reshape.Value
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotSource, _ = middleware.SourceFromContext(r.Context())
		assert.Equal(t, int64(len(b)), r.ContentLength)
		w.WriteHeader(http.StatusNoContent)
	})

	h := middleware.Reshape(newTransformer(t))(next)
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"user":{"name":"Sam"}}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, `{"name":"Sam","kind":"customer"}`, gotBody)
	src, ok := gotSource.(*reshape.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"user"}, src.Keys())
}

func TestReshape_RejectsDuplicateKeys(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	h := middleware.Reshape(newTransformer(t))(next)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1,"a":2}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"code":"duplicate_key"`)
	assert.Contains(t, rec.Body.String(), `"path":"/a"`)
}

func TestReshape_RejectsOversizedBody(t *testing.T) {
	opt := middleware.DefaultParseOpt()
	opt.MaxBytes = 8
	h := middleware.Reshape(newTransformer(t), middleware.WithParseOpt(opt))(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user":{"name":"Sam"}}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"truncated"`)
}

func TestReshape_MalformedJSON(t *testing.T) {
	h := middleware.Reshape(newTransformer(t))(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user":`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"parse_error"`)
}

func TestErrorPayload(t *testing.T) {
	p := middleware.ErrorPayload([]reshape.Issue{{Path: "/x", Code: "c", Message: "m"}})
	b, err := reshape.EncodeJSON(p, "")
	require.NoError(t, err)
	assert.Equal(t, `{"issues":[{"path":"/x","code":"c","message":"m"}]}`, string(b))
}
