// Package seal is the embedding facade for the immutability runtime.
//
// It re-exports the object layer so host programs can declare classes,
// construct frozen instances and hand out read-only views without
// importing internal packages:
//
//   - Declare and seal classes: NewClass, Immutable, Construct
//   - Wrap values in proxies: Wrap (shallow), DeepWrap (recursive), Unwrap
//   - Extend the proxy registry: RegisterImmutable, RegisterProxy
//   - Bridge native Go values: FromGo, ToGo, Marshaller
package seal

import (
	"github.com/funvibe/funseal/internal/object"
)

// Aliases into the object layer. Facade callers hold these types directly,
// so they must be aliases rather than wrappers.
type (
	Object     = object.Object
	ObjectType = object.ObjectType
	Class      = object.Class
	Instance   = object.Instance
	Context    = object.Context
	Super      = object.Super
	Fn         = object.Fn
	Method     = object.Method
	MethodKind = object.MethodKind
	Builtin    = object.Builtin

	ProxyFactory = object.ProxyFactory

	Boolean = object.Boolean
	Integer = object.Integer
	Float   = object.Float
	String  = object.String
	Bytes   = object.Bytes
	Nil     = object.Nil
	Uuid    = object.Uuid
	Time    = object.Time
	Tuple   = object.Tuple
	List    = object.List
	Map     = object.Map
	Message = object.Message
)

// Method kinds accepted by the Class.Define* family.
const (
	BoundMethodKind    = object.BoundMethodKind
	ClassMethodKind    = object.ClassMethodKind
	StaticMethodKind   = object.StaticMethodKind
	AccessorMethodKind = object.AccessorMethodKind
)

// Shared singletons of the value layer.
var (
	TRUE  = object.TRUE
	FALSE = object.FALSE
	NIL   = object.NIL
)

// NewClass declares a class with the given parents, in order of
// precedence. It fails when the ancestor linearization is inconsistent.
func NewClass(name string, parents ...*Class) (*Class, error) {
	return object.NewClass(name, parents...)
}

// MustNewClass is NewClass for static hierarchies; it panics on error.
func MustNewClass(name string, parents ...*Class) *Class {
	return object.MustNewClass(name, parents...)
}

// Immutable seals the class in place and returns it, so declarations can
// chain. Instances of a sealed class freeze when their initializer
// returns; sealing is permanent.
func Immutable(c *Class) *Class {
	return c.Seal()
}

// Construct builds an instance of c, running its initializer with args.
// If c is sealed the instance comes back frozen.
func Construct(c *Class, args ...Object) (*Instance, error) {
	return c.Construct(args...)
}

// Wrap returns a shallow read-only view of obj. Inherently immutable
// values pass through unchanged.
func Wrap(obj Object) Object { return object.Wrap(obj) }

// DeepWrap returns a recursively read-only view of obj: everything
// reachable through it comes back wrapped as well.
func DeepWrap(obj Object) Object { return object.DeepWrap(obj) }

// Unwrap follows proxy links down to the raw object.
func Unwrap(obj Object) Object { return object.Unwrap(obj) }

// RegisterImmutable marks a host-defined object type as inherently
// immutable, so Wrap and DeepWrap pass its values through.
func RegisterImmutable(t ObjectType) { object.RegisterImmutable(t) }

// RegisterProxy installs a proxy factory for a host-defined object type.
// NewSequenceProxyFactory and NewMappingProxyFactory cover types that
// expose the sequence and mapping capabilities.
func RegisterProxy(t ObjectType, f ProxyFactory) { object.RegisterProxy(t, f) }

// NewSequenceProxyFactory adapts types with sequence capabilities
// (length, indexing, iteration) into read-only views.
func NewSequenceProxyFactory() ProxyFactory { return object.NewSequenceProxyFactory() }

// NewMappingProxyFactory adapts types with mapping capabilities
// (keyed lookup, iteration over keys) into read-only views.
func NewMappingProxyFactory() ProxyFactory { return object.NewMappingProxyFactory() }

// ClassOf returns the class of obj, seeing through proxies. Values
// without a class return nil.
func ClassOf(obj Object) *Class { return object.ClassOf(obj) }

// IsInstance reports whether obj's class has class in its ancestor chain,
// seeing through proxies.
func IsInstance(obj Object, class *Class) bool { return object.IsInstance(obj, class) }

// TypeOf returns the runtime type of obj, seeing through proxies.
func TypeOf(obj Object) ObjectType { return object.TypeOf(obj) }

// TypeName names obj for error messages; proxies qualify the target's
// name, as in "Proxy[Box]".
func TypeName(obj Object) string { return object.TypeName(obj) }

// Copy returns a shallow copy of obj with any proxy layer removed.
func Copy(obj Object) Object { return object.Copy(obj) }

// DeepCopy returns a recursive copy of obj with every proxy layer
// removed. Shared structure and cycles are preserved.
func DeepCopy(obj Object) Object { return object.DeepCopy(obj) }

// GetAttr reads an attribute of obj by name.
func GetAttr(obj Object, name string) (Object, error) { return object.GetAttr(obj, name) }

// SetAttr writes an attribute of obj by name. Frozen instances and
// proxies reject the write.
func SetAttr(obj Object, name string, val Object) error { return object.SetAttr(obj, name, val) }

// DelAttr removes an attribute of obj by name, under the same rules as
// SetAttr.
func DelAttr(obj Object, name string) error { return object.DelAttr(obj, name) }

// Call invokes a callable object (bound method or builtin) with args.
func Call(callee Object, args ...Object) (Object, error) { return object.Call(callee, args...) }

// SuperFor returns an ancestor dispatch handle rooted strictly after
// class in the receiver's linearization. Method bodies normally use
// ctx.Super instead.
func SuperFor(class *Class, receiver Object) (*Super, error) {
	return object.SuperFor(class, receiver)
}

// SuperUnbound returns an ancestor lookup over class's own linearization
// with no receiver bound, for class and static delegation.
func SuperUnbound(class *Class) (*Super, error) {
	return object.SuperUnbound(class)
}

// Truthy reports obj's truth value: nil, false, zero numbers and empty
// containers are false. Proxies delegate to the wrapped object.
func Truthy(obj Object) bool { return object.Truthy(obj) }

// Value constructors, re-exported for hosts that build objects directly
// rather than through FromGo.
var (
	NewList   = object.NewList
	NewTuple  = object.NewTuple
	NewMap    = object.NewMap
	NewBytes  = object.NewBytes
	NewUuid   = object.NewUuid
	ParseUuid = object.ParseUuid

	NewMessage             = object.NewMessage
	WrapDynamic            = object.WrapDynamic
	ParseMessageDescriptor = object.ParseMessageDescriptor
)

// Error predicates for the failure taxonomy. Each matches its error kind
// anywhere in a wrap chain.
var (
	IsImmutabilityViolation = object.IsImmutabilityViolation
	IsAttributeNotFound     = object.IsAttributeNotFound
	IsUnsupportedOperation  = object.IsUnsupportedOperation
	IsResolverUnavailable   = object.IsResolverUnavailable
	IsUsageError            = object.IsUsageError
)
