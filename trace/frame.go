// Package trace captures symbolic snapshots of the live call stack and
// resolves per-frame call-site metadata for diagnostics.
package trace

import (
	"github.com/deepnoodle-ai/lore/object"
)

// Frame is one raw activation record captured from the live call stack.
// A frame is either a script activation (non-nil Function) or a wasm
// activation (non-negative WasmFuncIndex); a frame carrying neither marker
// is invalid and degrades every call-site query to "unknown".
type Frame struct {
	// Function executing in this frame, for script activations.
	Function *object.Function

	// Receiver the function was invoked on. May be nil, the Nil singleton,
	// or the constructor sentinel for built-in construct frames.
	Receiver object.Object

	// WasmModule and WasmFuncIndex identify a wasm activation.
	WasmModule    *WasmModule
	WasmFuncIndex int

	// Position is the source offset of the active instruction, or -1.
	Position int
}

// NewScriptFrame builds a frame for a script activation.
func NewScriptFrame(fn *object.Function, receiver object.Object, position int) Frame {
	return Frame{Function: fn, Receiver: receiver, WasmFuncIndex: -1, Position: position}
}

// NewWasmFrame builds a frame for a wasm activation.
func NewWasmFrame(module *WasmModule, funcIndex, position int) Frame {
	return Frame{WasmModule: module, WasmFuncIndex: funcIndex, Position: position}
}

// WasmModule is the metadata diagnostics needs from an instantiated wasm
// module: its name and its function name table.
type WasmModule struct {
	name      string
	funcNames map[int]string
}

func NewWasmModule(name string, funcNames map[int]string) *WasmModule {
	return &WasmModule{name: name, funcNames: funcNames}
}

func (m *WasmModule) Name() string {
	return m.name
}

// FunctionName resolves a function index through the module's name table.
func (m *WasmModule) FunctionName(index int) (string, bool) {
	name, ok := m.funcNames[index]
	return name, ok
}
