package trace

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/deepnoodle-ai/lore/object"
)

// Formatter renders a captured stack into the text blob stored on error
// objects. The runtime installs its own hook; TextFormatter is the default.
type Formatter interface {
	FormatStackTrace(errObj object.Object, frames []Frame) (string, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(errObj object.Object, frames []Frame) (string, error)

func (f FormatterFunc) FormatStackTrace(errObj object.Object, frames []Frame) (string, error) {
	return f(errObj, frames)
}

// TextFormatter renders frames as indented "at function (location)" lines,
// innermost-first, optionally colorized.
type TextFormatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

var (
	colorFunction = color.New(color.FgWhite, color.Bold)
	colorLocation = color.New(color.FgCyan)
)

func (f *TextFormatter) FormatStackTrace(errObj object.Object, frames []Frame) (string, error) {
	if len(frames) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.WriteString("Stack trace:\n")
	for _, frame := range frames {
		site := NewCallSite(frame)
		b.WriteString("  at ")
		f.writeFunction(&b, site)
		b.WriteString(" (")
		f.writeLocation(&b, site)
		b.WriteString(")\n")
	}
	return b.String(), nil
}

func (f *TextFormatter) writeFunction(b *strings.Builder, site *CallSite) {
	name, ok := site.FunctionName()
	if !ok {
		name = "<anonymous>"
	}
	if method, ok := site.MethodName(); ok && method != name {
		name = fmt.Sprintf("%s [as %s]", name, method)
	}
	if f.UseColor {
		b.WriteString(colorFunction.Sprint(name))
	} else {
		b.WriteString(name)
	}
}

func (f *TextFormatter) writeLocation(b *strings.Builder, site *CallSite) {
	var loc string
	switch {
	case site.IsWasm():
		loc = fmt.Sprintf("<wasm>[%d]", site.wasmIndex)
		if site.wasmMod != nil && site.wasmMod.Name() != "" {
			loc = fmt.Sprintf("%s[%d]", site.wasmMod.Name(), site.wasmIndex)
		}
	case site.IsNative():
		loc = "<native>"
	default:
		file, ok := site.FileName()
		if !ok || file == "" {
			file = "<unknown>"
		}
		if line := site.LineNumber(); line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", file, line, site.ColumnNumber())
		} else {
			loc = file
		}
	}
	if f.UseColor {
		b.WriteString(colorLocation.Sprint(loc))
	} else {
		b.WriteString(loc)
	}
}
