// Package format implements the encoding-aware composite format expander used
// by weave format expressions.
//
// A composite format string contains positional placeholders of the form
// {index[,alignment][:spec]}, with "{{" and "}}" as brace escapes. Expansion
// intercepts only the value-substitution step: parsing, alignment and padding
// are handled here, while each argument is rendered through a fallback chain
// that applies the Encoder exactly once to unsafe text and never to text that
// is already safe.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/weave/pkg/ports"
)

// Expand renders a composite format string against args, returning a string
// that is already safe for the target markup. The provider may be nil.
//
// Per placeholder, the argument is rendered by the first matching strategy:
//
//  1. A ports.Content argument writes itself with enc into a scratch buffer;
//     the result is inserted without further encoding.
//  2. The provider's custom formatter, when present and willing, produces a
//     string which is then encoded.
//  3. A ports.Formattable argument renders itself with the spec and provider;
//     the result is encoded.
//  4. Any other non-nil argument is stringified and encoded.
//  5. A nil argument inserts the empty string.
func Expand(enc ports.Encoder, p ports.FormatProvider, format string, args []any) (string, error) {
	var out strings.Builder
	out.Grow(len(format))

	i := 0
	for i < len(format) {
		switch format[i] {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				out.WriteByte('{')
				i += 2
				continue
			}
			ph, next, err := parsePlaceholder(format, i)
			if err != nil {
				return "", err
			}
			if ph.index >= len(args) {
				return "", fmt.Errorf("format: placeholder {%d} out of range for %d argument(s)", ph.index, len(args))
			}
			rendered, err := renderArg(enc, p, ph.spec, args[ph.index])
			if err != nil {
				return "", err
			}
			writeAligned(&out, rendered, ph.width)
			i = next
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				out.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("format: unmatched '}' at offset %d", i)
		default:
			out.WriteByte(format[i])
			i++
		}
	}
	return out.String(), nil
}

type placeholder struct {
	index int
	width int // 0 = no alignment, negative = left-align
	spec  string
}

// parsePlaceholder reads a placeholder starting at the '{' at offset start.
// It returns the parsed placeholder and the offset just past the closing '}'.
func parsePlaceholder(format string, start int) (placeholder, int, error) {
	var ph placeholder
	i := start + 1

	j := i
	for j < len(format) && format[j] >= '0' && format[j] <= '9' {
		j++
	}
	if j == i {
		return ph, 0, fmt.Errorf("format: expected argument index at offset %d", i)
	}
	idx, err := strconv.Atoi(format[i:j])
	if err != nil {
		return ph, 0, fmt.Errorf("format: invalid argument index at offset %d: %w", i, err)
	}
	ph.index = idx
	i = j

	if i < len(format) && format[i] == ',' {
		i++
		j = i
		if j < len(format) && format[j] == '-' {
			j++
		}
		for j < len(format) && format[j] >= '0' && format[j] <= '9' {
			j++
		}
		width, err := strconv.Atoi(format[i:j])
		if err != nil {
			return ph, 0, fmt.Errorf("format: invalid alignment at offset %d", i)
		}
		ph.width = width
		i = j
	}

	if i < len(format) && format[i] == ':' {
		i++
		j = strings.IndexByte(format[i:], '}')
		if j < 0 {
			return ph, 0, fmt.Errorf("format: unterminated placeholder at offset %d", start)
		}
		ph.spec = format[i : i+j]
		i += j
	}

	if i >= len(format) || format[i] != '}' {
		return ph, 0, fmt.Errorf("format: unterminated placeholder at offset %d", start)
	}
	return ph, i + 1, nil
}

// renderArg applies the substitution fallback chain for a single argument.
// The returned string is safe for direct insertion into the result.
func renderArg(enc ports.Encoder, p ports.FormatProvider, spec string, arg any) (string, error) {
	if c, ok := arg.(ports.Content); ok {
		// Scratch buffer scoped to this placeholder. The nested content
		// applies its own trust decisions; its output must not be
		// encoded again.
		var buf strings.Builder
		if err := c.WriteTo(&buf, enc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	if p != nil {
		if f := p.Formatter(); f != nil {
			if s, ok := f.Format(spec, arg); ok {
				return enc.Encode(s), nil
			}
		}
	}

	if fa, ok := arg.(ports.Formattable); ok {
		return enc.Encode(fa.Format(spec, p)), nil
	}

	if arg != nil {
		return enc.Encode(stringify(p, arg)), nil
	}
	return "", nil
}

// stringify is the last-resort rendering for plain values. The format spec is
// an instruction to the Formatter/Formattable layers and is not applied here.
func stringify(p ports.FormatProvider, v any) string {
	if p != nil {
		return p.Sprintf("%v", v)
	}
	return fmt.Sprint(v)
}

// writeAligned pads s with spaces to the absolute alignment width. Negative
// widths left-align. Padding happens after encoding; spaces are markup-safe.
func writeAligned(out *strings.Builder, s string, width int) {
	if width == 0 {
		out.WriteString(s)
		return
	}
	pad := width
	left := false
	if pad < 0 {
		pad = -pad
		left = true
	}
	pad -= utf8.RuneCountInString(s)
	if pad <= 0 {
		out.WriteString(s)
		return
	}
	if left {
		out.WriteString(s)
	}
	for range pad {
		out.WriteByte(' ')
	}
	if !left {
		out.WriteString(s)
	}
}
