// Package object provides the subset of the Lore object model that the
// diagnostics subsystem depends on: plain property-bearing objects with
// prototype chains, functions, scripts, and a few primitive value types.
//
// The full object model lives in the runtime proper. Diagnostics code only
// needs the capabilities defined here: allocating an object along a prototype
// lineage, defining and reading named properties with attribute flags,
// enumerating own enumerable keys, traversing a prototype chain with an
// access-check boundary, and converting values to text.
package object

// Type of an object as a string.
type Type string

// Type constants
const (
	BOOL     Type = "bool"
	ERROR    Type = "error"
	FUNCTION Type = "function"
	INT      Type = "int"
	NIL      Type = "nil"
	OBJECT   Type = "object"
	SENTINEL Type = "sentinel"
	STRING   Type = "string"
)

var (
	Nil   = &NilType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Object is the interface implemented by all values the diagnostics
// subsystem handles.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Returns true if the given object is equal to this object.
	Equals(other Object) bool
}

// IsAbsent returns true if the given object is nil or the Nil singleton.
func IsAbsent(obj Object) bool {
	if obj == nil {
		return true
	}
	_, ok := obj.(*NilType)
	return ok
}
