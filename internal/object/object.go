// Package object implements the runtime object model: primitive and
// container values, classes with linearized ancestor chains, write-once
// instances, and the immutability proxies that guard already-constructed
// values.
package object

import (
	"hash/fnv"
)

type ObjectType string

const (
	INTEGER_OBJ        = "INTEGER"
	FLOAT_OBJ          = "FLOAT"
	BOOLEAN_OBJ        = "BOOLEAN"
	STRING_OBJ         = "STRING"
	BYTES_OBJ          = "BYTES"
	NIL_OBJ            = "NIL"
	UUID_OBJ           = "UUID"
	TIME_OBJ           = "TIME"
	LIST_OBJ           = "LIST"
	MAP_OBJ            = "MAP"
	TUPLE_OBJ          = "TUPLE"
	MESSAGE_OBJ        = "MESSAGE"
	CLASS_OBJ          = "CLASS"
	INSTANCE_OBJ       = "INSTANCE"
	METHOD_OBJ         = "METHOD"
	BOUND_METHOD_OBJ   = "BOUND_METHOD"
	BUILTIN_OBJ        = "BUILTIN"
	SUPER_OBJ          = "SUPER"
	PROXY_OBJ          = "PROXY"
	DEEP_PROXY_OBJ     = "DEEP_PROXY"
	TUPLE_PROXY_OBJ    = "TUPLE_PROXY"
	LIST_PROXY_OBJ     = "LIST_PROXY"
	MAP_PROXY_OBJ      = "MAP_PROXY"
	MESSAGE_PROXY_OBJ  = "MESSAGE_PROXY"
	SEQUENCE_PROXY_OBJ = "SEQUENCE_PROXY"
	MAPPING_PROXY_OBJ  = "MAPPING_PROXY"
)

type Object interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
}

// Attributed is the attribute-access capability. Instances, classes,
// proxies and adapters implement it; dispatch goes through this interface
// rather than probing concrete types.
type Attributed interface {
	GetAttr(name string) (Object, error)
	SetAttr(name string, val Object) error
	DelAttr(name string) error
}

// Wrapper marks every proxy. Unwrap returns the wrapped object, which may
// itself be a wrapper.
type Wrapper interface {
	Object
	Unwrap() Object
}

// Sized is implemented by values with a length.
type Sized interface {
	Length() int
}

// Indexable is implemented by values supporting indexed reads.
type Indexable interface {
	Index(key Object) (Object, error)
}

// IndexWriter is implemented by values supporting indexed writes.
type IndexWriter interface {
	SetIndex(key Object, val Object) error
}

// Iterable is implemented by values that can produce their elements.
// The returned slice is a fresh snapshot owned by the caller.
type Iterable interface {
	Iterate() []Object
}

// Unwrap follows Wrapper links down to the raw object.
func Unwrap(obj Object) Object {
	for {
		w, ok := obj.(Wrapper)
		if !ok {
			return obj
		}
		obj = w.Unwrap()
	}
}

// TypeOf returns the runtime type of obj, seeing through proxies.
func TypeOf(obj Object) ObjectType {
	return Unwrap(obj).Type()
}

// ClassOf returns the class of obj, seeing through proxies. Values without
// a class (primitives, containers) yield nil. A class is its own class for
// the purposes of class-receiver dispatch.
func ClassOf(obj Object) *Class {
	switch o := Unwrap(obj).(type) {
	case *Instance:
		return o.class
	case *Class:
		return o
	}
	return nil
}

// IsInstance reports whether obj (or the object it wraps) is an instance
// of class or of one of class's descendants' ancestors, i.e. whether class
// appears in the runtime class's ancestor chain.
func IsInstance(obj Object, class *Class) bool {
	c := ClassOf(obj)
	if c == nil || class == nil {
		return false
	}
	lin, err := c.Linearization()
	if err != nil {
		return false
	}
	for _, a := range lin {
		if a == class {
			return true
		}
	}
	return false
}

// TypeName returns the display name used in error messages. Instances
// report their class name; proxies report a qualified form naming the
// wrapped type.
func TypeName(obj Object) string {
	switch o := obj.(type) {
	case *Instance:
		return o.class.Name
	case *Class:
		return o.Name
	case *Proxy:
		return "Proxy[" + TypeName(o.target) + "]"
	case *DeepProxy:
		return "DeepProxy[" + TypeName(o.target) + "]"
	case *TupleProxy:
		return "Proxy[Tuple]"
	case *ListProxy:
		return "Proxy[List]"
	case *MapProxy:
		return "Proxy[Map]"
	case *MessageProxy:
		return "Proxy[Message]"
	case *SequenceProxy:
		return "Proxy[" + TypeName(o.target) + "]"
	case *MappingProxy:
		return "Proxy[" + TypeName(o.target) + "]"
	}
	switch obj.Type() {
	case INTEGER_OBJ:
		return "Int"
	case FLOAT_OBJ:
		return "Float"
	case BOOLEAN_OBJ:
		return "Bool"
	case STRING_OBJ:
		return "String"
	case BYTES_OBJ:
		return "Bytes"
	case NIL_OBJ:
		return "Nil"
	case UUID_OBJ:
		return "Uuid"
	case TIME_OBJ:
		return "Time"
	case LIST_OBJ:
		return "List"
	case MAP_OBJ:
		return "Map"
	case TUPLE_OBJ:
		return "Tuple"
	case MESSAGE_OBJ:
		return "Message"
	}
	return string(obj.Type())
}

// Truthy reports the truth value of obj under container semantics: nil and
// false are false, zero numbers are false, empty containers are false,
// everything else is true. Proxies delegate to the wrapped object.
func Truthy(obj Object) bool {
	switch o := Unwrap(obj).(type) {
	case *Nil:
		return false
	case *Boolean:
		return o.Value
	case *Integer:
		return o.Value != 0
	case *Float:
		return o.Value != 0
	case *String:
		return o.Value != ""
	case *Bytes:
		return len(o.data) > 0
	case *List:
		return len(o.Elements) > 0
	case *Tuple:
		return len(o.Elements) > 0
	case *Map:
		return o.Len() > 0
	}
	return true
}

// GetAttr resolves an attribute on any object through its Attributed
// capability.
func GetAttr(obj Object, name string) (Object, error) {
	if att, ok := obj.(Attributed); ok {
		return att.GetAttr(name)
	}
	return nil, NewAttributeNotFound(TypeName(obj), name)
}

// SetAttr assigns an attribute through the Attributed capability.
func SetAttr(obj Object, name string, val Object) error {
	if att, ok := obj.(Attributed); ok {
		return att.SetAttr(name, val)
	}
	return NewUnsupportedOperation(TypeName(obj), "attribute assignment")
}

// DelAttr removes an attribute through the Attributed capability.
func DelAttr(obj Object, name string) error {
	if att, ok := obj.(Attributed); ok {
		return att.DelAttr(name)
	}
	return NewUnsupportedOperation(TypeName(obj), "attribute deletion")
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func hashBytes(b []byte) uint32 {
	h := fnv.New32a()
	h.Write(b)
	return h.Sum32()
}
