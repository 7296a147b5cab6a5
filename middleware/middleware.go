// Package middleware rewrites HTTP request bodies through a reshape
// Transformer.
package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/reoring/reshape"
)

type ctxKeySource struct{}

// ContextWithSource attaches the document a request carried before it was
// reshaped.
func ContextWithSource(ctx context.Context, doc reshape.Value) context.Context {
	return context.WithValue(ctx, ctxKeySource{}, doc)
}

// SourceFromContext returns the original request document.
func SourceFromContext(ctx context.Context) (reshape.Value, bool) {
	v, ok := ctx.Value(ctxKeySource{}).(reshape.Value)
	return v, ok
}

// DefaultParseOpt returns a recommended default for HTTP JSON boundaries:
// duplicate keys are errors and bodies are capped at 1 MiB.
func DefaultParseOpt() reshape.ParseOpt {
	return reshape.ParseOpt{
		Strictness: reshape.Strictness{OnDuplicateKey: reshape.Error},
		MaxDepth:   reshape.DefaultMaxDepth,
		MaxBytes:   1 << 20,
	}
}

// ErrorPayload shapes Issues for JSON responses:
//
//	{"issues": [{"path": "/", "code": "parse_error", "message": "..."}]}
func ErrorPayload(issues []reshape.Issue) *reshape.Object {
	list := make(reshape.Array, 0, len(issues))
	for _, it := range issues {
		o := reshape.NewObject(3)
		o.Set("path", reshape.String(it.Path))
		o.Set("code", reshape.String(it.Code))
		o.Set("message", reshape.String(it.Message))
		list = append(list, o)
	}
	out := reshape.NewObject(1)
	out.Set("issues", list)
	return out
}

// Option configures Reshape.
type Option func(*config)

type config struct {
	parse  reshape.ParseOpt
	logger *slog.Logger
}

// WithParseOpt overrides DefaultParseOpt.
func WithParseOpt(opt reshape.ParseOpt) Option { return func(c *config) { c.parse = opt } }

// WithLogger logs rejected requests at Info level.
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.logger = l } }

// Reshape returns middleware that decodes the JSON request body, runs it
// through t and hands the reshaped document to next as the new body. Bodies
// that cannot be decoded are answered with 400 and ErrorPayload.
func Reshape(t *reshape.Transformer, opts ...Option) func(http.Handler) http.Handler {
	cfg := config{parse: DefaultParseOpt()}
	for _, o := range opts {
		o(&cfg)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			doc, err := reshape.ReadJSON(r.Body, cfg.parse)
			_ = r.Body.Close()
			if err != nil {
				iss, ok := reshape.AsIssues(err)
				if !ok {
					iss = reshape.Issues{{Path: "/", Code: reshape.CodeParseError, Message: err.Error()}}
				}
				if cfg.logger != nil {
					cfg.logger.InfoContext(r.Context(), "request rejected",
						slog.String("component", "reshape"),
						slog.String("path", r.URL.Path),
						slog.String("error", iss.Error()),
					)
				}
				writeJSON(w, http.StatusBadRequest, ErrorPayload(iss))
				return
			}

			body, err := reshape.EncodeJSON(t.Apply(doc), "")
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			r2 := r.WithContext(ContextWithSource(r.Context(), doc))
			r2.Body = io.NopCloser(bytes.NewReader(body))
			r2.ContentLength = int64(len(body))
			r2.Header = r.Header.Clone()
			r2.Header.Set("Content-Length", strconv.Itoa(len(body)))
			next.ServeHTTP(w, r2)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v reshape.Value) {
	b, err := reshape.EncodeJSON(v, "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
