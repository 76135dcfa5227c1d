package culture

import (
	"fmt"
	"time"

	"github.com/aretw0/weave/pkg/ports"
)

// Number wraps a numeric value as a ports.Formattable. The format spec is a
// fmt verb without the leading '%' (default "v"); under a culture Provider the
// verb renders with locale digit grouping.
type Number struct {
	Value any
}

// Format implements ports.Formattable.
func (n Number) Format(spec string, p ports.FormatProvider) string {
	verb := "%v"
	if spec != "" {
		verb = "%" + spec
	}
	if p != nil {
		return p.Sprintf(verb, n.Value)
	}
	return fmt.Sprintf(verb, n.Value)
}

// Date wraps a time.Time as a ports.Formattable. The format spec is a Go time
// layout (default time.RFC3339).
type Date struct {
	Value time.Time
}

// Format implements ports.Formattable.
func (d Date) Format(spec string, _ ports.FormatProvider) string {
	layout := time.RFC3339
	if spec != "" {
		layout = spec
	}
	return d.Value.Format(layout)
}
