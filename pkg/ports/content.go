package ports

import "io"

// Content is the unit of buildable markup. Implementations decide for
// themselves whether their text is trusted (emitted verbatim) or untrusted
// (passed through the Encoder), so composing Content values never re-encodes
// text that is already safe.
type Content interface {
	// WriteTo renders the content into w. The encoder must be applied to
	// untrusted text exactly once; trusted text bypasses it entirely.
	WriteTo(w io.Writer, enc Encoder) error
}

// Encoder converts arbitrary text into text that is safe to embed directly in
// the output markup. Implementations must be pure: stateless, total over all
// string inputs, and safe for concurrent use.
type Encoder interface {
	Encode(s string) string
}

// EncoderFunc adapts a plain function to the Encoder interface.
type EncoderFunc func(string) string

// Encode calls f(s).
func (f EncoderFunc) Encode(s string) string { return f(s) }
