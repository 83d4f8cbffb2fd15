package trace

import (
	"strings"

	"github.com/deepnoodle-ai/lore/object"
)

// Kind classifies a call site. Classification happens exactly once, when
// the call site is constructed, and is never re-probed.
type Kind int

const (
	// KindInvalid marks a frame carrying neither marker. All accessors on
	// an invalid call site report absent values and never fail.
	KindInvalid Kind = iota
	// KindScript marks a script activation.
	KindScript
	// KindWasm marks a wasm activation.
	KindWasm
)

// CallSite resolves the externally visible metadata of a single captured
// frame: file name, function name, method name, position, and the boolean
// classifiers exposed on stack-trace objects.
type CallSite struct {
	kind      Kind
	fn        *object.Function
	receiver  object.Object
	wasmMod   *WasmModule
	wasmIndex int
	pos       int
}

// NewCallSite classifies the given frame into a call site. A frame with
// neither a function nor a wasm function index yields an invalid call site
// rather than an error.
func NewCallSite(frame Frame) *CallSite {
	site := &CallSite{kind: KindInvalid, wasmIndex: -1, pos: -1}
	switch {
	case frame.Function != nil:
		site.kind = KindScript
		site.fn = frame.Function
		site.receiver = frame.Receiver
		site.pos = frame.Position
	case frame.WasmFuncIndex >= 0:
		site.kind = KindWasm
		site.wasmMod = frame.WasmModule
		site.wasmIndex = frame.WasmFuncIndex
		site.pos = frame.Position
	}
	return site
}

func (c *CallSite) Kind() Kind {
	return c.kind
}

func (c *CallSite) IsScript() bool {
	return c.kind == KindScript
}

func (c *CallSite) IsWasm() bool {
	return c.kind == KindWasm
}

// FileName returns the declared name of the script the frame's function was
// compiled from. Wasm and invalid call sites have no file name.
func (c *CallSite) FileName() (string, bool) {
	if c.kind != KindScript {
		return "", false
	}
	script := c.fn.Script()
	if script == nil {
		return "", false
	}
	return script.Name(), true
}

// FunctionName returns the name of the function executing in the frame.
// Wasm frames resolve through the module's name table. Script functions
// with an empty name report "eval" when they originate from textual eval,
// otherwise absent.
func (c *CallSite) FunctionName() (string, bool) {
	switch c.kind {
	case KindWasm:
		if c.wasmMod == nil {
			return "", false
		}
		return c.wasmMod.FunctionName(c.wasmIndex)
	case KindScript:
		if name := c.fn.Name(); name != "" {
			return name, true
		}
		if script := c.fn.Script(); script != nil && script.Kind() == object.ScriptKindEval {
			return "eval", true
		}
		return "", false
	default:
		return "", false
	}
}

// MethodName resolves the property name through which the frame's function
// was invoked on its receiver. A name is reported only when it is
// unambiguous: if the function is reachable under two or more distinct
// names anywhere on the receiver's prototype chain, the result is absent.
func (c *CallSite) MethodName() (string, bool) {
	if c.kind != KindScript || object.IsAbsent(c.receiver) {
		return "", false
	}
	obj, ok := c.receiver.(*object.PlainObject)
	if !ok {
		return "", false
	}

	// Fast path: accessor functions carry "get "/"set " name prefixes which
	// must be stripped to find the property name.
	if name := c.fn.Name(); name != "" {
		stripped := strings.TrimPrefix(strings.TrimPrefix(name, "get "), "set ")
		if checkMethodName(obj, stripped, c.fn, true) {
			return stripped, true
		}
	}

	// Walk the whole chain top-down and accumulate matches. Halt the walk
	// at any link requiring an access check. Two or more distinct matching
	// names means the answer would be a guess, so report absent.
	var result string
	found := false
	for cur := obj; cur != nil; cur = cur.Prototype() {
		if cur.AccessCheckNeeded() {
			break
		}
		for _, name := range cur.OwnEnumerableNames() {
			if !checkMethodName(cur, name, c.fn, false) {
				continue
			}
			if found && name != result {
				return "", false
			}
			result = name
			found = true
		}
	}
	return result, found
}

// checkMethodName reports whether obj binds fn under the given property
// name, either as a data property or as one side of an accessor pair.
// Interceptors are skipped. With wholeChain set, the lookup follows the
// prototype chain, halting at access-check boundaries.
func checkMethodName(obj *object.PlainObject, name string, fn *object.Function, wholeChain bool) bool {
	for cur := obj; cur != nil; cur = cur.Prototype() {
		if cur.AccessCheckNeeded() {
			return false
		}
		if prop, ok := cur.OwnProperty(name); ok {
			if prop.IsAccessor() {
				return prop.Getter == fn || prop.Setter == fn
			}
			return prop.Value == object.Object(fn)
		}
		if !wholeChain {
			return false
		}
	}
	return false
}

// LineNumber returns the 1-based line of the call site, or -1 when there is
// no position, no script, or the frame is not a script activation.
func (c *CallSite) LineNumber() int {
	if script, ok := c.position(); ok {
		return script.LineNumber(c.pos)
	}
	return -1
}

// ColumnNumber returns the 1-based column of the call site, or -1 when
// absent.
func (c *CallSite) ColumnNumber() int {
	if script, ok := c.position(); ok {
		return script.ColumnNumber(c.pos)
	}
	return -1
}

func (c *CallSite) position() (*object.Script, bool) {
	if c.kind != KindScript || c.pos < 0 {
		return nil, false
	}
	script := c.fn.Script()
	if script == nil {
		return nil, false
	}
	return script, true
}

// IsNative reports whether the frame's function belongs to an internal
// native script.
func (c *CallSite) IsNative() bool {
	if c.kind != KindScript {
		return false
	}
	script := c.fn.Script()
	return script != nil && script.Kind() == object.ScriptKindNative
}

// IsToplevel reports whether the frame ran at top level: on the global
// object or with no receiver at all.
func (c *CallSite) IsToplevel() bool {
	if c.kind != KindScript {
		return false
	}
	if object.IsAbsent(c.receiver) {
		return true
	}
	obj, ok := c.receiver.(*object.PlainObject)
	return ok && obj.IsGlobal()
}

// IsEval reports whether the frame's function originates from textual eval.
func (c *CallSite) IsEval() bool {
	if c.kind != KindScript {
		return false
	}
	script := c.fn.Script()
	return script != nil && script.Kind() == object.ScriptKindEval
}

// IsConstructor reports whether the frame is a construct call. Built-in
// construct frames have no real receiver and mark themselves with the
// constructor sentinel.
func (c *CallSite) IsConstructor() bool {
	if c.receiver == object.Object(object.ConstructorSentinel) {
		return true
	}
	if c.kind != KindScript {
		return false
	}
	obj, ok := c.receiver.(*object.PlainObject)
	if !ok {
		return false
	}
	ctor, ok := obj.GetDataProperty("constructor")
	if !ok {
		return false
	}
	return ctor == object.Object(c.fn)
}
