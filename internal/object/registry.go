package object

import (
	"sort"
	"sync"
)

// ProxyFactory builds the adapter proxy for one runtime type.
type ProxyFactory func(Object) Object

// The process-wide registry: which runtime types never need wrapping, and
// which get a specialized adapter instead of the generic proxy. Selection
// keys on the exact runtime type. Registration normally happens at
// startup, but later registration must not race lookups.
var registry = struct {
	mu        sync.RWMutex
	immutable map[ObjectType]bool
	factories map[ObjectType]ProxyFactory
}{
	immutable: make(map[ObjectType]bool),
	factories: make(map[ObjectType]ProxyFactory),
}

func init() {
	for _, t := range []ObjectType{
		INTEGER_OBJ, FLOAT_OBJ, BOOLEAN_OBJ, STRING_OBJ, BYTES_OBJ,
		NIL_OBJ, UUID_OBJ, TIME_OBJ,
		CLASS_OBJ, METHOD_OBJ, BOUND_METHOD_OBJ, BUILTIN_OBJ, SUPER_OBJ,
	} {
		RegisterImmutable(t)
	}
	RegisterProxy(TUPLE_OBJ, func(obj Object) Object { return &TupleProxy{target: obj.(*Tuple)} })
	RegisterProxy(LIST_OBJ, func(obj Object) Object { return &ListProxy{target: obj.(*List)} })
	RegisterProxy(MAP_OBJ, func(obj Object) Object { return &MapProxy{target: obj.(*Map)} })
	RegisterProxy(MESSAGE_OBJ, func(obj Object) Object { return &MessageProxy{target: obj.(*Message)} })
}

// RegisterImmutable marks a runtime type as inherently immutable: wrapping
// any of its values returns the value itself.
func RegisterImmutable(t ObjectType) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.immutable[t] = true
}

// RegisterProxy installs the adapter factory for a runtime type,
// replacing any previous one.
func RegisterProxy(t ObjectType, f ProxyFactory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.factories[t] = f
}

// IsImmutableType reports whether t is registered inherently immutable.
func IsImmutableType(t ObjectType) bool {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.immutable[t]
}

func proxyFactoryFor(t ObjectType) (ProxyFactory, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	f, ok := registry.factories[t]
	return f, ok
}

// ImmutableTypes lists the registered inherently immutable types, sorted.
func ImmutableTypes() []ObjectType {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	out := make([]ObjectType, 0, len(registry.immutable))
	for t := range registry.immutable {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AdaptedTypes lists the types with a registered adapter factory, sorted.
func AdaptedTypes() []ObjectType {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	out := make([]ObjectType, 0, len(registry.factories))
	for t := range registry.factories {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
