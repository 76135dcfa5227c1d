package format_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/weave/internal/format"
	"github.com/aretw0/weave/pkg/ports"
)

var htmlEnc = ports.EncoderFunc(strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;",
).Replace)

// trusted is a Content emitting pre-encoded text.
type trusted string

func (c trusted) WriteTo(w io.Writer, _ ports.Encoder) error {
	_, err := io.WriteString(w, string(c))
	return err
}

// upperFormattable renders itself uppercased, tagged with the spec it saw.
type upperFormattable string

func (f upperFormattable) Format(spec string, _ ports.FormatProvider) string {
	if spec != "" {
		return strings.ToUpper(string(f)) + "[" + spec + "]"
	}
	return strings.ToUpper(string(f))
}

// provider is a minimal FormatProvider for tests.
type provider struct {
	hook ports.Formatter
}

func (p *provider) Formatter() ports.Formatter { return p.hook }

func (p *provider) Sprintf(f string, args ...any) string { return fmt.Sprintf(f, args...) }

func TestExpand_Literals(t *testing.T) {
	cases := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{"plain text", "hello", nil, "hello"},
		{"escaped braces", "{{0}} and }}{{", nil, "{0} and }{"},
		{"positional", "{1}-{0}", []any{"a", "b"}, "b-a"},
		{"repeated", "{0}{0}", []any{"x"}, "xx"},
		{"nil argument", "[{0}]", []any{nil}, "[]"},
		{"right align", "[{0,5}]", []any{"ab"}, "[   ab]"},
		{"left align", "[{0,-5}]", []any{"ab"}, "[ab   ]"},
		{"align overflow", "[{0,2}]", []any{"abcdef"}, "[abcdef]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := format.Expand(htmlEnc, nil, tc.format, tc.args)
			if err != nil {
				t.Fatalf("Expand failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestExpand_Errors(t *testing.T) {
	cases := []struct {
		name   string
		format string
		args   []any
	}{
		{"out of range", "{1}", []any{"only"}},
		{"unmatched close", "a } b", nil},
		{"unterminated", "{0", []any{"x"}},
		{"missing index", "{}", []any{"x"}},
		{"bad alignment", "{0,x}", []any{"x"}},
		{"unterminated spec", "{0:d", []any{"x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := format.Expand(htmlEnc, nil, tc.format, tc.args); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestExpand_PlainArgumentsEncoded(t *testing.T) {
	got, err := format.Expand(htmlEnc, nil, "Hello {0}", []any{"<world>"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello &lt;world&gt;" {
		t.Errorf("Expected escaped argument, got %q", got)
	}
}

func TestExpand_ContentArgumentsVerbatim(t *testing.T) {
	got, err := format.Expand(htmlEnc, nil, "{0}", []any{trusted("<i>safe</i>")})
	if err != nil {
		t.Fatal(err)
	}
	if got != "<i>safe</i>" {
		t.Errorf("Content argument was re-encoded: %q", got)
	}
}

func TestExpand_FormattableReceivesSpec(t *testing.T) {
	got, err := format.Expand(htmlEnc, nil, "{0:x}", []any{upperFormattable("<hi>")})
	if err != nil {
		t.Fatal(err)
	}
	// Formattable output is still untrusted and must be encoded once.
	if got != "&lt;HI&gt;[x]" {
		t.Errorf("Expected encoded formattable output, got %q", got)
	}
}

func TestExpand_CustomFormatterPrecedesFormattable(t *testing.T) {
	p := &provider{
		hook: ports.FormatterFunc(func(spec string, v any) (string, bool) {
			return "hooked:" + spec, true
		}),
	}

	// The provider hook wins even when the argument is itself Formattable.
	got, err := format.Expand(htmlEnc, p, "{0:n}", []any{upperFormattable("hi")})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hooked:n" {
		t.Errorf("Expected hook output, got %q", got)
	}
}

func TestExpand_CustomFormatterFallsThrough(t *testing.T) {
	p := &provider{
		hook: ports.FormatterFunc(func(spec string, v any) (string, bool) {
			return "", false
		}),
	}

	got, err := format.Expand(htmlEnc, p, "{0}", []any{upperFormattable("hi")})
	if err != nil {
		t.Fatal(err)
	}
	if got != "HI" {
		t.Errorf("Expected fall-through to Formattable, got %q", got)
	}
}

func TestExpand_CustomFormatterOutputEncoded(t *testing.T) {
	p := &provider{
		hook: ports.FormatterFunc(func(spec string, v any) (string, bool) {
			return "<em>", true
		}),
	}

	got, err := format.Expand(htmlEnc, p, "{0}", []any{42})
	if err != nil {
		t.Fatal(err)
	}
	if got != "&lt;em&gt;" {
		t.Errorf("Hook output must be encoded, got %q", got)
	}
}

func TestExpand_ContentSkipsCustomFormatter(t *testing.T) {
	p := &provider{
		hook: ports.FormatterFunc(func(spec string, v any) (string, bool) {
			return "should not run", true
		}),
	}

	got, err := format.Expand(htmlEnc, p, "{0}", []any{trusted("<b>")})
	if err != nil {
		t.Fatal(err)
	}
	if got != "<b>" {
		t.Errorf("Content arguments bypass the hook, got %q", got)
	}
}

func TestExpand_AlignmentAppliedAfterEncoding(t *testing.T) {
	// "<" encodes to "&lt;" (4 runes); width counts the encoded text.
	got, err := format.Expand(htmlEnc, nil, "[{0,6}]", []any{"<"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "[  &lt;]" {
		t.Errorf("Expected padding around encoded text, got %q", got)
	}
}

func TestExpand_ProviderSprintfUsedForPlainValues(t *testing.T) {
	calls := 0
	p := &countingProvider{calls: &calls}

	got, err := format.Expand(htmlEnc, p, "{0}", []any{3.5})
	if err != nil {
		t.Fatal(err)
	}
	if got != "3.5" {
		t.Errorf("Expected provider stringification, got %q", got)
	}
	if calls != 1 {
		t.Errorf("Expected provider Sprintf to be used, calls=%d", calls)
	}
}

type countingProvider struct {
	calls *int
}

func (p *countingProvider) Formatter() ports.Formatter { return nil }

func (p *countingProvider) Sprintf(f string, args ...any) string {
	*p.calls++
	return fmt.Sprintf(f, args...)
}
