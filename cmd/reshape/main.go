// Command reshape infers field maps from example documents and executes
// them against other documents.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/reoring/reshape"
	"github.com/reoring/reshape/codec"
	"github.com/reoring/reshape/i18n"
	"github.com/reoring/reshape/jsonschema"
	"github.com/reoring/reshape/source/gojson"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitUsage       = 2
	exitDiagnostics = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `reshape CLI

Usage:
  reshape infer      [-in doc.json] [-path .prefix] [-o schema.json]
  reshape execute    -schema schema.json [-in doc.json] [-o out.json] [-check]
  reshape resolve    [-in doc.json] <path>
  reshape jsonschema -schema schema.json [-o out.json]

Common flags:
  -driver std|gojson  JSON driver (env RESHAPE_DRIVER)
  -strict             reject duplicate keys
  -max-depth N        nesting limit
  -max-bytes N        input size limit
  -indent S           output indent (default two spaces)
  -lang en|ja         message language (env RESHAPE_LANG)
  -v                  log diagnostics to stderr
  -dump               dump the result with go-spew to stderr

Files ending in .yaml or .yml are read and written as YAML; "-" is stdio.`)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	var cmd func(*cli, []string) error
	switch args[0] {
	case "infer":
		cmd = (*cli).infer
	case "execute":
		cmd = (*cli).execute
	case "resolve":
		cmd = (*cli).resolve
	case "jsonschema":
		cmd = (*cli).jsonSchema
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}

	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	fs := c.flags(args[0])
	if err := fs.Parse(args[1:]); err != nil {
		return exitUsage
	}
	if err := c.setup(); err != nil {
		fmt.Fprintln(stderr, "reshape:", err)
		return exitUsage
	}

	err := cmd(c, fs.Args())
	var ee exitErr
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ee):
		return int(ee)
	case errors.Is(err, errUsage):
		fs.Usage()
		return exitUsage
	default:
		if iss, ok := reshape.AsIssues(err); ok {
			for _, it := range iss.Localize() {
				fmt.Fprintf(stderr, "reshape: %s at %s: %s\n", it.Code, it.Path, it.Message)
			}
			return exitError
		}
		fmt.Fprintln(stderr, "reshape:", err)
		return exitError
	}
}

var errUsage = errors.New("usage")

type exitErr int

func (e exitErr) Error() string { return fmt.Sprintf("exit %d", int(e)) }

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	in, schema, out, path, indent string
	driver, lang                  string
	strict, check, verbose, dump  bool
	maxDepth                      int
	maxBytes                      int64

	log *slog.Logger
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.StringVar(&c.in, "in", "-", "input document")
	fs.StringVar(&c.out, "o", "-", "output file")
	fs.StringVar(&c.indent, "indent", "  ", "output indent, empty for compact JSON")
	fs.StringVar(&c.driver, "driver", envOr("RESHAPE_DRIVER", "std"), "JSON driver: std or gojson")
	fs.StringVar(&c.lang, "lang", envOr("RESHAPE_LANG", "en"), "message language: en or ja")
	fs.BoolVar(&c.strict, "strict", false, "reject duplicate keys")
	fs.IntVar(&c.maxDepth, "max-depth", 0, "nesting limit (0 for default)")
	fs.Int64Var(&c.maxBytes, "max-bytes", 0, "input size limit (0 for none)")
	fs.BoolVar(&c.verbose, "v", false, "log diagnostics to stderr")
	fs.BoolVar(&c.dump, "dump", false, "dump the result to stderr")
	switch name {
	case "infer":
		fs.StringVar(&c.path, "path", "", "prefix for every inferred source")
	case "execute":
		fs.StringVar(&c.schema, "schema", "", "field map (JSON or YAML)")
		fs.BoolVar(&c.check, "check", false, "exit 3 when the output carries diagnostics")
	case "resolve":
		fs.StringVar(&c.path, "path", "", "path expression (or first argument)")
	case "jsonschema":
		fs.StringVar(&c.schema, "schema", "", "field map (JSON or YAML)")
	}
	return fs
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *cli) setup() error {
	switch c.driver {
	case "std", "":
		reshape.UseDefaultJSONDriver()
	case "gojson", "go-json":
		reshape.SetJSONDriver(gojson.Driver())
	default:
		return fmt.Errorf("unknown driver %q", c.driver)
	}
	i18n.SetLanguage(c.lang)

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	c.log = slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
	c.log.Debug("configured", slog.String("driver", reshape.CurrentJSONDriver().Name()), slog.String("lang", c.lang))
	return nil
}

func (c *cli) parseOpt() reshape.ParseOpt {
	opt := reshape.ParseOpt{MaxDepth: c.maxDepth, MaxBytes: c.maxBytes}
	if c.strict {
		opt.Strictness.OnDuplicateKey = reshape.Error
	} else {
		opt.Strictness.OnDuplicateKey = reshape.Warn
		opt.OnIssue = func(it reshape.Issue) {
			c.log.Warn("input issue", slog.String("code", it.Code), slog.String("path", it.Path))
		}
	}
	return opt
}

func (c *cli) codecFor(path string) codec.Codec {
	switch cd := codec.ForPath(path).(type) {
	case codec.JSON:
		cd.Opt = c.parseOpt()
		cd.Indent = c.indent
		return cd
	case codec.YAML:
		cd.Opt = c.parseOpt()
		return cd
	default:
		return cd
	}
}

func (c *cli) readDoc(ctx context.Context, path string) (reshape.Value, error) {
	var r io.Reader = c.stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if c.maxBytes > 0 {
		r = io.LimitReader(r, c.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return nil, reshape.Issues{{Path: "/", Code: reshape.CodeTruncated, Message: "input exceeds -max-bytes"}}
	}
	return c.codecFor(path).Decode(ctx, data)
}

func (c *cli) readSchema(ctx context.Context) (*reshape.Map, error) {
	if c.schema == "" {
		return nil, errUsage
	}
	v, err := c.readDoc(ctx, c.schema)
	if err != nil {
		return nil, err
	}
	return reshape.MapFromValue(v)
}

func (c *cli) write(ctx context.Context, v reshape.Value) error {
	if c.dump {
		spew.Fdump(c.stderr, reshape.ToAny(v))
	}
	b, err := c.codecFor(c.out).Encode(ctx, v)
	if err != nil {
		return err
	}
	if c.out == "-" {
		_, err = c.stdout.Write(b)
		return err
	}
	return os.WriteFile(c.out, b, 0o644)
}

func (c *cli) infer(args []string) error {
	ctx := context.Background()
	doc, err := c.readDoc(ctx, c.in)
	if err != nil {
		return err
	}
	obj, ok := doc.(*reshape.Object)
	if !ok {
		return reshape.Issues{{Path: "/", Code: reshape.CodeInvalidType, Message: "example document must be an object"}}
	}
	m, err := reshape.InferAt(obj, c.path, reshape.InferOpt{MaxDepth: c.maxDepth})
	if err != nil {
		return err
	}
	return c.write(ctx, reshape.MapToValue(m))
}

func (c *cli) execute(args []string) error {
	ctx := context.Background()
	m, err := c.readSchema(ctx)
	if err != nil {
		return err
	}
	t, err := reshape.New(m, reshape.ExecOpt{MaxDepth: c.maxDepth, Logger: c.log})
	if err != nil {
		return err
	}
	doc, err := c.readDoc(ctx, c.in)
	if err != nil {
		return err
	}
	out := t.Apply(doc)
	if err := c.write(ctx, out); err != nil {
		return err
	}
	if c.check {
		if iss := reshape.CollectDiagnostics(out); len(iss) > 0 {
			for _, it := range iss.Localize() {
				fmt.Fprintf(c.stderr, "reshape: %s at %s: %s\n", it.Code, it.Path, it.Message)
			}
			return exitErr(exitDiagnostics)
		}
	}
	return nil
}

func (c *cli) resolve(args []string) error {
	ctx := context.Background()
	path := c.path
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if strings.TrimSpace(path) == "" {
		return errUsage
	}
	doc, err := c.readDoc(ctx, c.in)
	if err != nil {
		return err
	}
	v, ok := reshape.Resolve(path, doc)
	if !ok {
		fmt.Fprintf(c.stderr, "reshape: nothing at %s\n", path)
		return exitErr(exitError)
	}
	return c.write(ctx, v)
}

func (c *cli) jsonSchema(args []string) error {
	m, err := c.readSchema(context.Background())
	if err != nil {
		return err
	}
	b, err := jsonschema.Marshal(jsonschema.FromMap(m), c.indent)
	if err != nil {
		return err
	}
	if c.indent != "" {
		b = append(b, '\n')
	}
	if c.out == "-" {
		_, err = c.stdout.Write(b)
		return err
	}
	return os.WriteFile(c.out, b, 0o644)
}
