// Package codec reads and writes documents in the formats reshape accepts.
package codec

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/reoring/reshape"
)

// Codec converts between an encoded document and a reshape.Value.
type Codec interface {
	Name() string
	Decode(ctx context.Context, data []byte) (reshape.Value, error)
	Encode(ctx context.Context, v reshape.Value) ([]byte, error)
}

// JSON is the JSON codec. Indent, when set, pretty-prints encoded output.
type JSON struct {
	Indent string
	Opt    reshape.ParseOpt
}

func (JSON) Name() string { return "json" }

func (c JSON) Decode(ctx context.Context, data []byte) (reshape.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reshape.ParseJSON(data, c.Opt)
}

func (c JSON) Encode(ctx context.Context, v reshape.Value) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := reshape.EncodeJSON(v, c.Indent)
	if err != nil {
		return nil, err
	}
	if c.Indent != "" {
		b = append(b, '\n')
	}
	return b, nil
}

// YAML is the YAML codec. Mapping order is preserved both ways.
type YAML struct {
	Opt reshape.ParseOpt
}

func (YAML) Name() string { return "yaml" }

func (c YAML) Decode(ctx context.Context, data []byte) (reshape.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reshape.ParseYAML(data, c.Opt)
}

func (YAML) Encode(ctx context.Context, v reshape.Value) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reshape.EncodeYAML(v)
}

// ForPath picks a codec by file extension. ".yaml" and ".yml" select YAML,
// anything else (including "-" for stdio) selects JSON.
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML{}
	default:
		return JSON{}
	}
}
