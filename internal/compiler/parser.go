// Package compiler parses fragment documents (YAML or JSON) and compiles them
// into weave builders. It is the input format shared by the CLI, the preview
// server, and the MCP adapter.
package compiler

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/weave"
	"github.com/aretw0/weave/pkg/adapters/culture"
	"github.com/aretw0/weave/pkg/ports"
)

// Document is a declarative sequence of builder operations.
//
//	title: greeting
//	culture: en-US
//	ops:
//	  - text: "<script>"          # untrusted, encoded on render
//	  - raw: "<b>safe</b>"        # trusted, emitted verbatim
//	  - line: true
//	  - format: "Hello {0}!"
//	    args: [{text: "<world>"}]
//	  - nested:
//	      ops: [...]
type Document struct {
	Title   string           `yaml:"title" mapstructure:"title"`
	Culture string           `yaml:"culture" mapstructure:"culture"`
	Ops     []map[string]any `yaml:"ops" mapstructure:"ops"`
}

// Parse decodes a fragment document. JSON input works too, as a YAML subset.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("compiler: invalid document: %w", err)
	}
	return &doc, nil
}

// Build compiles the document into a builder. The result is renderable with
// any encoder; trust decisions are fixed by the document, not the encoder.
func (d *Document) Build() (*weave.Builder, error) {
	var provider ports.FormatProvider
	if d.Culture != "" {
		p, err := culture.Parse(d.Culture)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	b := weave.New()
	for i, op := range d.Ops {
		if err := buildOp(b, provider, op); err != nil {
			return nil, fmt.Errorf("compiler: op %d: %w", i, err)
		}
	}
	return b, nil
}

type formatOp struct {
	Format string `mapstructure:"format"`
	Args   []any  `mapstructure:"args"`
}

func buildOp(b *weave.Builder, provider ports.FormatProvider, op map[string]any) error {
	key, err := directiveKey(op)
	if err != nil {
		return err
	}

	switch key {
	case "text":
		s, ok := op["text"].(string)
		if !ok {
			return fmt.Errorf("'text' must be a string")
		}
		b.Append(s)

	case "raw":
		s, ok := op["raw"].(string)
		if !ok {
			return fmt.Errorf("'raw' must be a string")
		}
		b.AppendEncoded(s)

	case "line":
		on, ok := op["line"].(bool)
		if !ok {
			return fmt.Errorf("'line' must be a bool")
		}
		if on {
			b.AppendLine()
		}

	case "format":
		var f formatOp
		if err := mapstructure.Decode(op, &f); err != nil {
			return fmt.Errorf("invalid format op: %w", err)
		}
		args := make([]any, len(f.Args))
		for j, raw := range f.Args {
			arg, err := argValue(raw)
			if err != nil {
				return fmt.Errorf("arg %d: %w", j, err)
			}
			args[j] = arg
		}
		b.AppendFormatWith(provider, f.Format, args...)

	case "nested":
		sub, err := nestedDocument(op["nested"])
		if err != nil {
			return err
		}
		b.AppendContent(sub)
	}
	return nil
}

// directiveKey validates that exactly one directive is present and that no
// stray keys ride along. "args" is allowed next to "format" only.
func directiveKey(op map[string]any) (string, error) {
	found := ""
	for _, k := range []string{"text", "raw", "line", "format", "nested"} {
		if _, ok := op[k]; ok {
			if found != "" {
				return "", fmt.Errorf("op mixes %q and %q", found, k)
			}
			found = k
		}
	}
	if found == "" {
		return "", fmt.Errorf("op has no directive (expected one of text, raw, line, format, nested)")
	}
	if _, ok := op["args"]; ok && found != "format" {
		return "", fmt.Errorf("'args' is only valid with 'format'")
	}
	for k := range op {
		if !directives[k] && k != "args" {
			return "", fmt.Errorf("unknown op key %q", k)
		}
	}
	return found, nil
}

var directives = map[string]bool{
	"text":   true,
	"raw":    true,
	"line":   true,
	"format": true,
	"nested": true,
}

// argValue maps a document argument to a format-expression argument. Mapping
// shapes wrap values with trust or formatting capabilities; scalars pass
// through untouched.
func argValue(raw any) (any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return raw, nil
	}
	switch {
	case m["text"] != nil:
		s, ok := m["text"].(string)
		if !ok {
			return nil, fmt.Errorf("'text' must be a string")
		}
		return weave.Text(s), nil
	case m["raw"] != nil:
		s, ok := m["raw"].(string)
		if !ok {
			return nil, fmt.Errorf("'raw' must be a string")
		}
		return weave.Raw(s), nil
	case m["number"] != nil:
		return culture.Number{Value: m["number"]}, nil
	case m["nested"] != nil:
		return nestedDocument(m["nested"])
	}
	return nil, fmt.Errorf("unknown argument shape (expected text, raw, number, or nested)")
}

func nestedDocument(raw any) (*weave.Builder, error) {
	var sub Document
	if err := mapstructure.Decode(raw, &sub); err != nil {
		return nil, fmt.Errorf("invalid nested document: %w", err)
	}
	builder, err := sub.Build()
	if err != nil {
		return nil, err
	}
	return builder, nil
}
