// Package encoders provides stock Encoder implementations for common markup
// targets. All encoders are stateless values safe for concurrent use.
package encoders

import (
	"strings"

	"github.com/aretw0/weave/pkg/ports"
)

// HTML escapes text for embedding in HTML element content and quoted
// attribute values. It neutralizes &, <, >, " and ' to prevent markup
// injection.
var HTML ports.Encoder = ports.EncoderFunc(htmlReplacer.Replace)

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Markdown backslash-escapes Markdown-significant punctuation so arbitrary
// text renders literally inside a Markdown document.
var Markdown ports.Encoder = ports.EncoderFunc(markdownReplacer.Replace)

var markdownReplacer = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
	"#", `\#`,
	"+", `\+`,
	"-", `\-`,
	"!", `\!`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
)

// Nop passes text through unchanged. Intended for pre-sanitized pipelines
// and tests; it offers no injection protection.
var Nop ports.Encoder = ports.EncoderFunc(func(s string) string { return s })

// ByName resolves an encoder from its wire name, also returning the canonical
// name. The empty name defaults to "html"; "md" and "nop" are aliases.
func ByName(name string) (ports.Encoder, string, bool) {
	switch name {
	case "html", "":
		return HTML, "html", true
	case "markdown", "md":
		return Markdown, "markdown", true
	case "none", "nop":
		return Nop, "none", true
	}
	return nil, "", false
}
