package object

import "fmt"

// PropertyAttrs are the attribute flags carried by a named property.
type PropertyAttrs struct {
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// DefaultAttrs returns the attributes of an ordinary assigned property.
func DefaultAttrs() PropertyAttrs {
	return PropertyAttrs{Writable: true, Enumerable: true, Configurable: true}
}

// Property is one named slot on a PlainObject: either a data property with a
// value, or an accessor property with a getter and/or setter.
type Property struct {
	Name   string
	Value  Object
	Getter *Function
	Setter *Function
	Attrs  PropertyAttrs
}

// IsAccessor returns true if the property is an accessor rather than a
// data property.
func (p *Property) IsAccessor() bool {
	return p.Getter != nil || p.Setter != nil
}

// Interceptor is a named-property hook an embedder may install on an object.
// Ordinary property reads consult it; diagnostics lookups skip it.
type Interceptor func(name string) (Object, bool)

// PlainObject is a property-bearing object with an ordered set of own
// properties and a prototype link. It models the capabilities diagnostics
// needs from the runtime's object graph: flagged property definition, own
// enumerable key enumeration, and prototype traversal with an explicit
// access-check boundary per link.
type PlainObject struct {
	props       []*Property
	index       map[string]int
	proto       *PlainObject
	interceptor Interceptor
	accessCheck bool
	global      bool
}

func NewPlainObject(proto *PlainObject) *PlainObject {
	return &PlainObject{proto: proto, index: map[string]int{}}
}

func (o *PlainObject) Type() Type {
	return OBJECT
}

func (o *PlainObject) Inspect() string {
	return fmt.Sprintf("#<object %p>", o)
}

func (o *PlainObject) Interface() interface{} {
	result := make(map[string]interface{}, len(o.props))
	for _, p := range o.props {
		if !p.IsAccessor() && p.Value != nil {
			result[p.Name] = p.Value.Interface()
		}
	}
	return result
}

func (o *PlainObject) Equals(other Object) bool {
	return o == other
}

// Prototype returns the next object on the prototype chain, or nil at the
// chain root.
func (o *PlainObject) Prototype() *PlainObject {
	return o.proto
}

func (o *PlainObject) SetPrototype(proto *PlainObject) {
	o.proto = proto
}

// Define installs a data property with the given attributes, replacing any
// existing property with the same name while keeping its slot order.
func (o *PlainObject) Define(name string, value Object, attrs PropertyAttrs) {
	o.define(&Property{Name: name, Value: value, Attrs: attrs})
}

// DefineAccessor installs an accessor property with the given attributes.
func (o *PlainObject) DefineAccessor(name string, getter, setter *Function, attrs PropertyAttrs) {
	o.define(&Property{Name: name, Getter: getter, Setter: setter, Attrs: attrs})
}

func (o *PlainObject) define(prop *Property) {
	if i, ok := o.index[prop.Name]; ok {
		o.props[i] = prop
		return
	}
	o.index[prop.Name] = len(o.props)
	o.props = append(o.props, prop)
}

// OwnProperty returns the own property with the given name. The interceptor,
// if any, is not consulted.
func (o *PlainObject) OwnProperty(name string) (*Property, bool) {
	if i, ok := o.index[name]; ok {
		return o.props[i], true
	}
	return nil, false
}

// OwnEnumerableNames returns the names of own enumerable properties in
// insertion order.
func (o *PlainObject) OwnEnumerableNames() []string {
	var names []string
	for _, p := range o.props {
		if p.Attrs.Enumerable {
			names = append(names, p.Name)
		}
	}
	return names
}

// Get reads a named property through the prototype chain, consulting each
// object's interceptor before its own properties. Accessor properties
// resolve through their getter.
func (o *PlainObject) Get(name string) (Object, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if cur.interceptor != nil {
			if value, ok := cur.interceptor(name); ok {
				return value, true
			}
		}
		if prop, ok := cur.OwnProperty(name); ok {
			if prop.IsAccessor() {
				if prop.Getter == nil {
					return Nil, true
				}
				value, err := prop.Getter.Call(o)
				if err != nil {
					return nil, false
				}
				return value, true
			}
			return prop.Value, true
		}
	}
	return nil, false
}

// GetDataProperty reads a named data property through the prototype chain,
// skipping interceptors and accessor properties, and halting at any link
// that requires an access check.
func (o *PlainObject) GetDataProperty(name string) (Object, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if cur.accessCheck {
			return nil, false
		}
		if prop, ok := cur.OwnProperty(name); ok {
			if prop.IsAccessor() {
				return nil, false
			}
			return prop.Value, true
		}
	}
	return nil, false
}

// SetInterceptor installs a named-property interceptor on this object.
func (o *PlainObject) SetInterceptor(fn Interceptor) {
	o.interceptor = fn
}

// RequireAccessCheck marks this object as an access-check boundary.
// Diagnostics chain walks halt when they reach such an object.
func (o *PlainObject) RequireAccessCheck() {
	o.accessCheck = true
}

func (o *PlainObject) AccessCheckNeeded() bool {
	return o.accessCheck
}

// MarkGlobal marks this object as a global (or global proxy) object.
func (o *PlainObject) MarkGlobal() {
	o.global = true
}

func (o *PlainObject) IsGlobal() bool {
	return o.global
}
