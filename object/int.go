package object

import "fmt"

// Int wraps a Go int64 and implements Object.
type Int struct {
	value int64
}

func (i *Int) Type() Type {
	return INT
}

func (i *Int) Value() int64 {
	return i.value
}

func (i *Int) Inspect() string {
	return fmt.Sprintf("%d", i.value)
}

func (i *Int) Interface() interface{} {
	return i.value
}

func (i *Int) Equals(other Object) bool {
	otherInt, ok := other.(*Int)
	if !ok {
		return false
	}
	return i.value == otherInt.value
}

func NewInt(value int64) *Int {
	return &Int{value: value}
}
