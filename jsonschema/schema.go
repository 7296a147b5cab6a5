package jsonschema

import (
	j "github.com/goccy/go-json"
)

// Draft is the dialect URI written on exported root schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	SchemaURI   string `json:"$schema,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type  any `json:"type,omitempty"`
	Const any `json:"const,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`
}

// Marshal renders s as JSON. A non-empty indent pretty-prints it.
func Marshal(s *Schema, indent string) ([]byte, error) {
	if indent == "" {
		return j.Marshal(s)
	}
	return j.MarshalIndent(s, "", indent)
}
