package msg

import (
	"github.com/deepnoodle-ai/lore/object"
	"github.com/deepnoodle-ai/lore/trace"
)

// Location is a position in a script, optionally with the function whose
// execution triggered the diagnostic.
type Location struct {
	Script   *object.Script
	StartPos int
	EndPos   int
	Function *object.Function
}

func NewLocation(script *object.Script, startPos, endPos int) *Location {
	return &Location{Script: script, StartPos: startPos, EndPos: endPos}
}

// LineNumber returns the 1-based line of the location's start position, or
// -1 when the location has no script.
func (l *Location) LineNumber() int {
	if l.Script == nil {
		return -1
	}
	return l.Script.LineNumber(l.StartPos)
}

// Message is one diagnostic: a template id, a single argument, the source
// range it refers to, and optionally the stack captured when it was
// created. A message is immutable after creation except for the one-time
// normalization of its argument during reporting.
type Message struct {
	template   TemplateID
	argument   object.Object
	startPos   int
	endPos     int
	script     *object.Script
	frames     []trace.Frame
	normalized bool
}

// NewMessage creates a message for the given template, location, and
// argument. The location and the captured frames may be nil.
func NewMessage(template TemplateID, loc *Location, argument object.Object, frames []trace.Frame) *Message {
	m := &Message{
		template: template,
		argument: argument,
		startPos: -1,
		endPos:   -1,
		frames:   frames,
	}
	if loc != nil {
		m.startPos = loc.StartPos
		m.endPos = loc.EndPos
		m.script = loc.Script
	}
	return m
}

func (m *Message) Template() TemplateID {
	return m.template
}

func (m *Message) Argument() object.Object {
	return m.argument
}

func (m *Message) StartPosition() int {
	return m.startPos
}

func (m *Message) EndPosition() int {
	return m.endPos
}

func (m *Message) Script() *object.Script {
	return m.script
}

func (m *Message) StackFrames() []trace.Frame {
	return m.frames
}

// NormalizeArgument replaces the message argument with its textual form.
// Only the first call has an effect.
func (m *Message) NormalizeArgument(text *object.String) {
	if m.normalized {
		return
	}
	m.argument = text
	m.normalized = true
}

// Text renders the message through the catalog using the given converter
// for a non-textual argument.
func (m *Message) Text(conv object.TextConverter) (string, error) {
	return FormatValue(m.template, m.argument, conv)
}
