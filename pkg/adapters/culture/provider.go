// Package culture implements ports.FormatProvider on top of golang.org/x/text,
// giving weave format expressions locale-aware number and message rendering.
package culture

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/aretw0/weave/pkg/ports"
)

// Provider is a FormatProvider bound to a BCP 47 language tag. Its Sprintf
// applies the tag's locale conventions (digit grouping, decimal separators).
type Provider struct {
	tag     language.Tag
	printer *message.Printer
	custom  ports.Formatter
}

// Option configures a Provider.
type Option func(*Provider)

// WithFormatter replaces the built-in hook. The hook is consulted per
// placeholder before any Formattable argument renders itself.
func WithFormatter(f ports.Formatter) Option {
	return func(p *Provider) {
		p.custom = f
	}
}

// New creates a Provider for the given tag. The provider carries a built-in
// custom-formatter hook for the "n" spec (locale-aware number rendering);
// WithFormatter replaces it.
func New(tag language.Tag, opts ...Option) *Provider {
	p := &Provider{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
	p.custom = numberHook(p.printer)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// numberHook handles the "n" spec for numeric values, rendering them with the
// printer's digit grouping. Other specs and non-numeric values fall through.
func numberHook(printer *message.Printer) ports.Formatter {
	return ports.FormatterFunc(func(spec string, v any) (string, bool) {
		if spec != "n" {
			return "", false
		}
		switch v.(type) {
		case int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64:
			return printer.Sprintf("%d", v), true
		case float32, float64:
			return printer.Sprintf("%v", number.Decimal(v)), true
		}
		return "", false
	})
}

// Parse creates a Provider from a BCP 47 tag name like "en-US" or "pt-BR".
func Parse(name string, opts ...Option) (*Provider, error) {
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("culture: invalid tag %q: %w", name, err)
	}
	return New(tag, opts...), nil
}

// Tag returns the provider's language tag.
func (p *Provider) Tag() language.Tag {
	return p.tag
}

// Formatter returns the custom-formatter hook: the built-in number hook, or
// the one installed via WithFormatter.
func (p *Provider) Formatter() ports.Formatter {
	return p.custom
}

// Sprintf formats using the tag's locale rules.
func (p *Provider) Sprintf(format string, args ...any) string {
	return p.printer.Sprintf(format, args...)
}
