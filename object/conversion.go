package object

import "errors"

// TextConverter converts an arbitrary object to a string object. The
// diagnostics subsystem is handed two flavors: the restricted converter
// below, and a runtime-supplied converter that may invoke user code.
type TextConverter func(obj Object) (*String, error)

// ErrNotConvertible indicates a value that the restricted conversion
// refuses to stringify.
var ErrNotConvertible = errors.New("value is not convertible to text")

// RestrictedToText converts a value to text without ever invoking user
// code. Strings convert verbatim; other values use their Inspect form.
// The conversion is non-reentrant and has no side effects.
func RestrictedToText(obj Object) (*String, error) {
	if obj == nil {
		return nil, ErrNotConvertible
	}
	if str, ok := obj.(*String); ok {
		return str, nil
	}
	return NewString(obj.Inspect()), nil
}
