package lore

import (
	"fmt"

	"github.com/deepnoodle-ai/lore/object"
	"github.com/deepnoodle-ai/lore/trace"
)

// ErrorObject is a constructed error value: an ordinary object carrying a
// message property, the raw frames captured at construction, and a stack
// text rendered lazily on first access.
type ErrorObject struct {
	*object.PlainObject
	detailed  []trace.Frame
	frames    []trace.Frame
	formatter trace.Formatter
	stackText string
	rendered  bool
}

func (e *ErrorObject) Type() object.Type {
	return object.ERROR
}

func (e *ErrorObject) Inspect() string {
	if message, ok := e.Message(); ok {
		return "Error: " + message
	}
	return "Error"
}

// Message returns the installed message text, if any.
func (e *ErrorObject) Message() (string, bool) {
	prop, ok := e.OwnProperty("message")
	if !ok {
		return "", false
	}
	str, ok := prop.Value.(*object.String)
	if !ok {
		return "", false
	}
	return str.Value(), true
}

// StackFrames returns the raw frames captured under the construction-time
// skip mode, innermost-first.
func (e *ErrorObject) StackFrames() []trace.Frame {
	return e.frames
}

// DetailedFrames returns the structured trace captured for programmatic
// introspection, or nil if detailed capture was suppressed.
func (e *ErrorObject) DetailedFrames() []trace.Frame {
	return e.detailed
}

// Stack renders the captured frames through the formatting hook. The text
// is computed once and cached.
func (e *ErrorObject) Stack() (string, error) {
	if e.rendered {
		return e.stackText, nil
	}
	text, err := e.formatter.FormatStackTrace(e, e.frames)
	if err != nil {
		return "", err
	}
	e.stackText = text
	e.rendered = true
	return e.stackText, nil
}

// CaptureError indicates that a stack capture failed while constructing an
// error object. Construction fails whole; no partial object is returned.
type CaptureError struct {
	Op  string
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture error: %s: %s", e.Op, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

func (e *CaptureError) IsFatal() bool {
	return true
}

// ConstructError builds an error object through the given constructor.
//
// The prototype lineage comes from newTarget when it is a proper receiver
// (subclassing), else from target. A present message is coerced to text and
// installed as a non-enumerable, writable, configurable "message" property;
// coercion failure fails the construction. A detailed trace is captured
// unless suppressed, and a simple trace is always captured under the given
// skip mode. When newTarget is itself a function and the mode asks to skip
// the first frame, the mode is refined to skip until newTarget is seen, so
// subclass constructors hide exactly their own frames.
func (r *Runtime) ConstructError(target *object.Function, newTarget, message object.Object,
	mode trace.SkipMode, suppressDetailed bool) (*ErrorObject, error) {

	ctor := object.Object(target)
	if isProperReceiver(newTarget) {
		ctor = newTarget
	}
	errObj := &ErrorObject{
		PlainObject: object.NewPlainObject(resolvePrototype(ctor)),
		formatter:   r.formatter,
	}

	if !object.IsAbsent(message) {
		text, err := r.converter(message)
		if err != nil {
			return nil, err
		}
		errObj.Define("message", text, object.PropertyAttrs{
			Writable:     true,
			Enumerable:   false,
			Configurable: true,
		})
	}

	if !suppressDetailed {
		frames, err := captureFrames("detailed trace", r.capturer.CaptureDetailed)
		if err != nil {
			return nil, err
		}
		errObj.detailed = frames
	}

	var caller *object.Function
	if mode == trace.SkipFirst {
		if fn, ok := newTarget.(*object.Function); ok {
			mode = trace.SkipUntilSeen
			caller = fn
		}
	}
	frames, err := captureFrames("simple trace", func() []trace.Frame {
		return r.capturer.CaptureSimple(mode, caller)
	})
	if err != nil {
		return nil, err
	}
	errObj.frames = frames

	return errObj, nil
}

// captureFrames guards a stack walk against a faulting provider so that a
// failed capture surfaces as a CaptureError rather than unwinding the
// runtime.
func captureFrames(op string, walk func() []trace.Frame) (frames []trace.Frame, err error) {
	defer func() {
		if p := recover(); p != nil {
			frames = nil
			err = &CaptureError{Op: op, Err: fmt.Errorf("%v", p)}
		}
	}()
	return walk(), nil
}

func isProperReceiver(obj object.Object) bool {
	switch obj.(type) {
	case *object.Function, *object.PlainObject:
		return true
	default:
		return false
	}
}

func resolvePrototype(ctor object.Object) *object.PlainObject {
	switch c := ctor.(type) {
	case *object.Function:
		return c.Prototype()
	case *object.PlainObject:
		if value, ok := c.GetDataProperty("prototype"); ok {
			if proto, ok := value.(*object.PlainObject); ok {
				return proto
			}
		}
	}
	return nil
}
