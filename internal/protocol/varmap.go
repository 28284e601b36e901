package protocol

import "reflect"

// Varmap is a per-instance attachment map keyed by runtime type identity,
// holding at most one value per concrete type. reflect.Type is the key, so
// Clone can produce a new map with shared value cells without re-copying
// values.
type Varmap struct {
	values map[reflect.Type]any
}

// NewVarmap returns an empty Varmap ready for use.
func NewVarmap() Varmap {
	return Varmap{values: make(map[reflect.Type]any)}
}

// Insert stores v, replacing any previous value of the same type.
func (vm *Varmap) Insert(v any) {
	if vm.values == nil {
		vm.values = make(map[reflect.Type]any)
	}
	vm.values[reflect.TypeOf(v)] = v
}

// Get looks up the value registered for type T. The zero value and false
// are returned when no value of that type is attached.
func Get[T any](vm Varmap) (T, bool) {
	var zero T
	if vm.values == nil {
		return zero, false
	}
	v, ok := vm.values[reflect.TypeOf(zero)]
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Remove deletes the value registered for type T, if any.
func Remove[T any](vm *Varmap) {
	if vm.values == nil {
		return
	}
	var zero T
	delete(vm.values, reflect.TypeOf(zero))
}

// Clone returns a new Varmap whose backing map is a fresh copy of the
// key->value pairs, but the values themselves are copied by reference
// (pointers, interfaces, maps, channels keep their identity) exactly as
// cloning an Arc<Box<dyn Any>> shares the underlying cell rather than
// deep-copying it.
func (vm Varmap) Clone() Varmap {
	out := NewVarmap()
	for k, v := range vm.values {
		out.values[k] = v
	}
	return out
}

// Len reports how many distinct types currently have an attached value.
func (vm Varmap) Len() int {
	return len(vm.values)
}
