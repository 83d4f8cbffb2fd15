// Package msg defines the runtime's diagnostic message catalog and the
// message values reported through it.
package msg

import (
	"fmt"
	"sort"
)

// CatalogVersion identifies the template-id space. Ids are stable within a
// version: embedders may persist them.
const CatalogVersion = 1

// TemplateID identifies a diagnostic message template. The id space is
// closed; an id with no registered template is a defect in the runtime
// itself, not a user error.
type TemplateID int

const (
	ApplyNonFunction TemplateID = iota
	CalledNonCallable
	CannotConvertToPrimitive
	ConstructorNotReceiver
	DefineDisallowed
	DivisionByZero
	IncompatibleReceiver
	IndexOutOfRange
	InvalidArgument
	NotDefined
	PrecisionOutOfRange
	PropertyNotFunction
	ProtoObjectOrNull
	StackOverflow
	UndefinedOrNullToObject
	UnexpectedToken
	UnterminatedString
	WasmTrap
)

// templates maps each id to its format string. A "%%" sequence renders a
// literal percent sign; any other "%" consumes the next positional
// argument. Templates take at most three arguments.
var templates = map[TemplateID]string{
	ApplyNonFunction:         "% is not a function and cannot be applied to %",
	CalledNonCallable:        "% is not a function",
	CannotConvertToPrimitive: "cannot convert object to primitive value",
	ConstructorNotReceiver:   "% is not a constructor",
	DefineDisallowed:         "cannot define property % on %",
	DivisionByZero:           "division by zero",
	IncompatibleReceiver:     "method % called on incompatible receiver %",
	IndexOutOfRange:          "index % is out of range for % of length %",
	InvalidArgument:          "invalid argument: %",
	NotDefined:               "% is not defined",
	PrecisionOutOfRange:      "precision % must be between 0%% and 100%%",
	PropertyNotFunction:      "property % of % is not a function",
	ProtoObjectOrNull:        "object prototype may only be an object or nil, got %",
	StackOverflow:            "maximum call stack size exceeded",
	UndefinedOrNullToObject:  "cannot convert nil to an object",
	UnexpectedToken:          "unexpected token %",
	UnterminatedString:       "unterminated string literal",
	WasmTrap:                 "wasm trap in function at index %",
}

var templateNames = map[TemplateID]string{
	ApplyNonFunction:         "ApplyNonFunction",
	CalledNonCallable:        "CalledNonCallable",
	CannotConvertToPrimitive: "CannotConvertToPrimitive",
	ConstructorNotReceiver:   "ConstructorNotReceiver",
	DefineDisallowed:         "DefineDisallowed",
	DivisionByZero:           "DivisionByZero",
	IncompatibleReceiver:     "IncompatibleReceiver",
	IndexOutOfRange:          "IndexOutOfRange",
	InvalidArgument:          "InvalidArgument",
	NotDefined:               "NotDefined",
	PrecisionOutOfRange:      "PrecisionOutOfRange",
	PropertyNotFunction:      "PropertyNotFunction",
	ProtoObjectOrNull:        "ProtoObjectOrNull",
	StackOverflow:            "StackOverflow",
	UndefinedOrNullToObject:  "UndefinedOrNullToObject",
	UnexpectedToken:          "UnexpectedToken",
	UnterminatedString:       "UnterminatedString",
	WasmTrap:                 "WasmTrap",
}

func (id TemplateID) String() string {
	if name, ok := templateNames[id]; ok {
		return name
	}
	return fmt.Sprintf("TemplateID(%d)", int(id))
}

// LookupName returns the template id registered under the given name.
func LookupName(name string) (TemplateID, bool) {
	for id, n := range templateNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// ConfigurationError indicates a template id with no registered format
// string. This is a runtime defect and is always fatal.
type ConfigurationError struct {
	ID TemplateID
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: unknown message template id %d", e.ID)
}

func (e *ConfigurationError) IsFatal() bool {
	return true
}

// TemplateString returns the format string registered for the given id, or
// a ConfigurationError if the id is unknown.
func TemplateString(id TemplateID) (string, error) {
	tmpl, ok := templates[id]
	if !ok {
		return "", &ConfigurationError{ID: id}
	}
	return tmpl, nil
}

// TemplateIDs returns every registered template id in ascending order.
func TemplateIDs() []TemplateID {
	ids := make([]TemplateID, 0, len(templates))
	for id := range templates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
