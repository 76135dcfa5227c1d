package weave

import (
	"fmt"
	"io"
	"runtime"

	"github.com/aretw0/weave/internal/format"
	"github.com/aretw0/weave/pkg/ports"
)

// Content is the unit of buildable markup. See ports.Content.
type Content = ports.Content

// Encoder makes arbitrary text safe for the target markup. See ports.Encoder.
type Encoder = ports.Encoder

// Raw returns Content that is emitted verbatim. The caller asserts the string
// is already correctly encoded for the target markup; no further escaping is
// ever applied to it.
func Raw(encoded string) Content { return rawContent(encoded) }

// Text returns Content holding untrusted text. It is passed through the
// Encoder exactly once when written.
func Text(unencoded string) Content { return textContent(unencoded) }

// Newline is the platform line separator as trusted content.
var Newline Content = Raw(lineSeparator)

var lineSeparator = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

type rawContent string

func (c rawContent) WriteTo(w io.Writer, _ Encoder) error {
	_, err := io.WriteString(w, string(c))
	return err
}

type textContent string

func (c textContent) WriteTo(w io.Writer, enc Encoder) error {
	if enc == nil {
		return fmt.Errorf("weave: nil encoder: %w", ErrInvalidArgument)
	}
	_, err := io.WriteString(w, enc.Encode(string(c)))
	return err
}

// formatContent captures a deferred composite format expression. Expansion
// happens at write time so the same content can be rendered with different
// encoders, and so Content arguments see the encoder actually in effect.
type formatContent struct {
	provider ports.FormatProvider
	format   string
	args     []any
}

func (c *formatContent) WriteTo(w io.Writer, enc Encoder) error {
	if enc == nil {
		return fmt.Errorf("weave: nil encoder: %w", ErrInvalidArgument)
	}
	// The expander has already applied encoding at the right granularity;
	// its result is written verbatim.
	s, err := format.Expand(enc, c.provider, c.format, c.args)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}
