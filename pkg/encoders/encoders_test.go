package encoders_test

import (
	"testing"

	"github.com/aretw0/weave/pkg/encoders"
)

func TestHTML(t *testing.T) {
	cases := []struct{ in, want string }{
		{`<script>`, `&lt;script&gt;`},
		{`a & b`, `a &amp; b`},
		{`"quoted" 'single'`, `&quot;quoted&quot; &#39;single&#39;`},
		{`plain`, `plain`},
		{``, ``},
	}
	for _, tc := range cases {
		if got := encoders.HTML.Encode(tc.in); got != tc.want {
			t.Errorf("HTML.Encode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHTML_Idempotent(t *testing.T) {
	// Encoding already-encoded text must change it (this is exactly why the
	// builder guarantees a single pass): document the double-encode shape.
	once := encoders.HTML.Encode("<")
	twice := encoders.HTML.Encode(once)
	if once == twice {
		t.Errorf("Expected double-encoding to differ: %q vs %q", once, twice)
	}
	if twice != "&amp;lt;" {
		t.Errorf("Unexpected double-encoded form: %q", twice)
	}
}

func TestMarkdown(t *testing.T) {
	cases := []struct{ in, want string }{
		{`*bold*`, `\*bold\*`},
		{"`code`", "\\`code\\`"},
		{`[link](url)`, `\[link\]\(url\)`},
		{`back\slash`, `back\\slash`},
		{`plain text`, `plain text`},
	}
	for _, tc := range cases {
		if got := encoders.Markdown.Encode(tc.in); got != tc.want {
			t.Errorf("Markdown.Encode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNop(t *testing.T) {
	if got := encoders.Nop.Encode(`<anything & everything>`); got != `<anything & everything>` {
		t.Errorf("Nop changed its input: %q", got)
	}
}

func TestByName(t *testing.T) {
	cases := []struct {
		in        string
		canonical string
		ok        bool
	}{
		{"html", "html", true},
		{"", "html", true},
		{"markdown", "markdown", true},
		{"md", "markdown", true},
		{"none", "none", true},
		{"nop", "none", true},
		{"latex", "", false},
	}
	for _, tc := range cases {
		enc, name, ok := encoders.ByName(tc.in)
		if ok != tc.ok || name != tc.canonical {
			t.Errorf("ByName(%q) = (%v, %q), want (%v, %q)", tc.in, ok, name, tc.ok, tc.canonical)
		}
		if ok && enc == nil {
			t.Errorf("ByName(%q) returned nil encoder", tc.in)
		}
	}
}
