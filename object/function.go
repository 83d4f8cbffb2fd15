package object

import "fmt"

// FunctionImpl is the Go implementation backing a Function. The runtime
// proper installs compiled closures here; tests and embedders may supply
// plain Go functions.
type FunctionImpl func(receiver Object, args ...Object) (Object, error)

// Function is a callable object with a declared name and an owning script.
// Functions participate in constructor lineage via their prototype object.
type Function struct {
	name   string
	script *Script
	impl   FunctionImpl
	proto  *PlainObject
}

func (f *Function) Type() Type {
	return FUNCTION
}

// Name returns the function's declared name, which may be empty for
// anonymous functions. Accessor functions carry "get " or "set " prefixes
// in their declared names.
func (f *Function) Name() string {
	return f.name
}

// Script returns the function's owning compilation unit, or nil for
// functions with no script (such as bare Go builtins).
func (f *Function) Script() *Script {
	return f.script
}

// Prototype returns the object new instances constructed through this
// function inherit from, or nil if none was assigned.
func (f *Function) Prototype() *PlainObject {
	return f.proto
}

func (f *Function) SetPrototype(proto *PlainObject) {
	f.proto = proto
}

// Call invokes the function with the given receiver and arguments.
func (f *Function) Call(receiver Object, args ...Object) (Object, error) {
	if f.impl == nil {
		return nil, fmt.Errorf("function %q is not callable from diagnostics", f.name)
	}
	return f.impl(receiver, args...)
}

func (f *Function) Callable() bool {
	return f.impl != nil
}

func (f *Function) Inspect() string {
	if f.name == "" {
		return "func() {}"
	}
	return fmt.Sprintf("func %s() {}", f.name)
}

func (f *Function) Interface() interface{} {
	return f.impl
}

func (f *Function) Equals(other Object) bool {
	return f == other
}

func NewFunction(name string, script *Script) *Function {
	return &Function{name: name, script: script}
}

// NewBuiltinFunction creates a function backed by a Go implementation.
func NewBuiltinFunction(name string, impl FunctionImpl) *Function {
	return &Function{name: name, impl: impl}
}

// WithImpl attaches a Go implementation and returns the same function.
func (f *Function) WithImpl(impl FunctionImpl) *Function {
	f.impl = impl
	return f
}
