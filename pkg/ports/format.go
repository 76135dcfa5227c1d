package ports

// Formatter is the custom-formatter hook of a FormatProvider. It is consulted
// once per placeholder during composite formatting, before any other rendering
// strategy. Returning ok=false passes the value down the fallback chain
// (Formattable, then default stringification).
type Formatter interface {
	Format(spec string, v any) (string, bool)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc func(spec string, v any) (string, bool)

// Format calls f(spec, v).
func (f FormatterFunc) Format(spec string, v any) (string, bool) { return f(spec, v) }

// FormatProvider supplies culture/locale rules for composite formatting.
// A nil FormatProvider is valid everywhere one is accepted and means
// "no custom hook, plain fmt semantics".
type FormatProvider interface {
	// Formatter returns the provider's custom-formatter hook, or nil if the
	// provider does not intercept values.
	Formatter() Formatter

	// Sprintf formats according to the provider's locale rules.
	Sprintf(format string, args ...any) string
}

// Formattable is implemented by values that know how to render themselves for
// a format specifier under a given provider. The provider may be nil.
type Formattable interface {
	Format(spec string, p FormatProvider) string
}
