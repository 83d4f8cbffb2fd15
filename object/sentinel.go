package object

// Sentinel is an internal marker value. Sentinels are compared by identity
// and never escape to user code.
type Sentinel struct {
	name string
}

func (s *Sentinel) Type() Type {
	return SENTINEL
}

func (s *Sentinel) Inspect() string {
	return "<" + s.name + ">"
}

func (s *Sentinel) Interface() interface{} {
	return nil
}

func (s *Sentinel) Equals(other Object) bool {
	return s == other
}

// ConstructorSentinel marks the receiver slot of built-in construct frames,
// which have no real receiver object.
var ConstructorSentinel = &Sentinel{name: "constructor"}
