package msg

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/lore/object"
)

// fallbackText substitutes for an argument whose conversion failed or
// produced a non-textual result.
const fallbackText = "<error>"

// maxArgs is the most positional arguments any template consumes.
const maxArgs = 3

// Format renders the template registered for id, substituting up to three
// positional arguments in order. Each "%" in the template consumes the next
// argument regardless of its syntactic position; "%%" renders a literal
// percent sign. Missing arguments render as empty strings.
func Format(id TemplateID, args ...string) (string, error) {
	if len(args) > maxArgs {
		return "", fmt.Errorf("message template takes at most %d arguments, got %d", maxArgs, len(args))
	}
	tmpl, err := TemplateString(id)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(tmpl))
	argIdx := 0
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(tmpl) && tmpl[i+1] == '%' {
			b.WriteByte('%')
			i++
			continue
		}
		if argIdx < len(args) {
			b.WriteString(args[argIdx])
		}
		argIdx++
	}
	return b.String(), nil
}

// FormatValue renders the template with a single dynamic argument. Textual
// arguments substitute verbatim; anything else runs through the given
// converter, falling back to a literal "<error>" if the conversion fails or
// yields a non-textual result. A nil converter uses the restricted
// conversion, which never invokes user code.
func FormatValue(id TemplateID, arg object.Object, conv object.TextConverter) (string, error) {
	if arg == nil {
		return Format(id)
	}
	if conv == nil {
		conv = object.RestrictedToText
	}
	text := fallbackText
	if str, ok := arg.(*object.String); ok {
		text = str.Value()
	} else if str, err := conv(arg); err == nil && str != nil {
		text = str.Value()
	}
	return Format(id, text)
}
