package weave

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/weave/pkg/encoders"
	"github.com/aretw0/weave/pkg/ports"
)

// Builder accumulates an ordered sequence of Content and renders it on
// demand. Untrusted text is escaped exactly once at write time; trusted and
// nested content is never re-escaped, however deeply fragments are composed.
//
// A Builder is itself Content, so builders nest inside other builders and
// inside format expressions without losing their trust decisions.
//
// Builders are plain mutable values: concurrent mutation requires external
// synchronization. Concurrent WriteTo calls on a no-longer-mutated builder
// are safe when the writer and encoder are.
type Builder struct {
	nodes []Content
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Append adds untrusted text. It is encoded exactly once when written.
func (b *Builder) Append(unencoded string) *Builder {
	b.nodes = append(b.nodes, textContent(unencoded))
	return b
}

// AppendEncoded adds trusted text. The caller asserts it requires no further
// escaping; it is emitted verbatim.
func (b *Builder) AppendEncoded(encoded string) *Builder {
	b.nodes = append(b.nodes, rawContent(encoded))
	return b
}

// AppendContent adds nested content, preserving its own trust decisions.
// Panics with an error wrapping ErrInvalidArgument if c is nil.
func (b *Builder) AppendContent(c Content) *Builder {
	mustContent(c)
	b.nodes = append(b.nodes, c)
	return b
}

// AppendFormat adds a composite format expression expanded with plain fmt
// semantics. See AppendFormatWith.
func (b *Builder) AppendFormat(format string, args ...any) *Builder {
	return b.AppendFormatWith(nil, format, args...)
}

// AppendFormatWith adds a composite format expression evaluated under the
// given provider. The format string uses positional placeholders of the form
// {index[,alignment][:spec]}; "{{" and "}}" emit literal braces.
//
// Expansion is deferred to write time: arguments that are Content render with
// the encoder in effect and are inserted without re-encoding, all other
// arguments are encoded exactly once. Literal text in the format string is
// treated as trusted, like AppendEncoded. A nil provider means plain fmt
// semantics.
func (b *Builder) AppendFormatWith(p ports.FormatProvider, format string, args ...any) *Builder {
	b.nodes = append(b.nodes, &formatContent{provider: p, format: format, args: args})
	return b
}

// AppendLine adds the platform line separator as trusted content.
func (b *Builder) AppendLine() *Builder {
	b.nodes = append(b.nodes, Newline)
	return b
}

// AppendLineString adds untrusted text followed by the line separator.
func (b *Builder) AppendLineString(unencoded string) *Builder {
	return b.Append(unencoded).AppendLine()
}

// AppendLineEncoded adds trusted text followed by the line separator.
func (b *Builder) AppendLineEncoded(encoded string) *Builder {
	return b.AppendEncoded(encoded).AppendLine()
}

// AppendLineContent adds nested content followed by the line separator.
func (b *Builder) AppendLineContent(c Content) *Builder {
	return b.AppendContent(c).AppendLine()
}

// Set replaces all prior content with the given untrusted text.
func (b *Builder) Set(unencoded string) *Builder {
	return b.Clear().Append(unencoded)
}

// SetEncoded replaces all prior content with the given trusted text.
func (b *Builder) SetEncoded(encoded string) *Builder {
	return b.Clear().AppendEncoded(encoded)
}

// SetContent replaces all prior content with the given nested content.
func (b *Builder) SetContent(c Content) *Builder {
	mustContent(c)
	return b.Clear().AppendContent(c)
}

// Clear empties the builder. Output already produced by prior WriteTo calls
// is unaffected.
func (b *Builder) Clear() *Builder {
	b.nodes = b.nodes[:0]
	return b
}

// Len returns the number of content nodes currently held.
func (b *Builder) Len() int {
	return len(b.nodes)
}

// WriteTo renders all content into w in insertion order using enc.
// Returns ErrInvalidArgument (wrapped) if w or enc is nil.
func (b *Builder) WriteTo(w io.Writer, enc Encoder) error {
	if w == nil {
		return fmt.Errorf("weave: nil writer: %w", ErrInvalidArgument)
	}
	if enc == nil {
		return fmt.Errorf("weave: nil encoder: %w", ErrInvalidArgument)
	}
	for _, n := range b.nodes {
		if err := n.WriteTo(w, enc); err != nil {
			return err
		}
	}
	return nil
}

// Render returns the builder's content as a string rendered with enc.
func (b *Builder) Render(enc Encoder) (string, error) {
	var sb strings.Builder
	if err := b.WriteTo(&sb, enc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// String renders with the default HTML encoder. It exists for debug display;
// production callers pass their encoder explicitly via WriteTo or Render.
func (b *Builder) String() string {
	s, err := b.Render(encoders.HTML)
	if err != nil {
		return "%!(weave: " + err.Error() + ")"
	}
	return s
}

func mustContent(c Content) {
	if c == nil {
		panic(fmt.Errorf("weave: nil content: %w", ErrInvalidArgument))
	}
}
