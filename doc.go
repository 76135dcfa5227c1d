/*
Package weave is a composable, encoding-safe builder for markup fragments.

It assembles HTML (or any other markup) from a mix of untrusted text,
pre-encoded text, nested fragments, and composite format expressions, and
guarantees that untrusted text is escaped exactly once and trusted text is
never re-escaped, regardless of how deeply fragments are nested.

# Concept

Weave separates the decision "is this text safe?" from the decision "which
markup am I targeting?". Content carries its trust, the Encoder carries the
markup rules, and the two only meet at write time. This makes fragments
reusable: the same builder can render as HTML, Markdown, or plain text by
supplying a different encoder, without re-appending anything.

# Key Features

  - Single-encode guarantee: untrusted text passes through the encoder exactly once.
  - Composable fragments: a Builder is itself Content and nests without re-encoding.
  - Deferred composite formatting: {0}-style placeholders with alignment and
    format specifiers, expanded at write time with encoding applied per argument.
  - Culture-aware rendering via pluggable format providers (see pkg/adapters/culture).

# Usage

	b := weave.New().
		AppendEncoded("<p>").
		AppendFormat("Hello, {0}!", userName). // userName is escaped once
		AppendEncoded("</p>")

	var out strings.Builder
	if err := b.WriteTo(&out, encoders.HTML); err != nil {
		log.Fatal(err)
	}
*/
package weave
