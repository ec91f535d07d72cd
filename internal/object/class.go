package object

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// InitMethod is the initializer name looked up on construction.
const InitMethod = "init"

// MethodKind classifies an entry of a class's method table. The kind is
// fixed when the method is defined, so attribute access never has to probe
// the value to decide how to bind it.
type MethodKind int

const (
	BoundMethodKind MethodKind = iota
	ClassMethodKind
	StaticMethodKind
	AccessorMethodKind
)

func (k MethodKind) String() string {
	switch k {
	case BoundMethodKind:
		return "bound"
	case ClassMethodKind:
		return "class"
	case StaticMethodKind:
		return "static"
	case AccessorMethodKind:
		return "accessor"
	}
	return "unknown"
}

// Fn is the shape of every method implementation. The context carries the
// defining class and the receiver for ancestor dispatch; bodies read the
// receiver from it.
type Fn func(ctx *Context, args ...Object) (Object, error)

// Method is one entry of a class's method table. Bound, class and static
// methods use Fn; accessors use Get and optionally Set.
type Method struct {
	Name string
	Kind MethodKind
	Fn   Fn
	Get  Fn
	Set  Fn
}

func (m *Method) Type() ObjectType { return METHOD_OBJ }
func (m *Method) Inspect() string  { return fmt.Sprintf("%s method %s", m.Kind, m.Name) }
func (m *Method) Hash() uint32     { return hashString(m.Name) }

// BoundMethod pairs a resolved method with the receiver it was resolved
// against. The receiver is whatever the lookup saw, proxy included; class
// methods carry the class, static methods carry nil.
type BoundMethod struct {
	Receiver Object
	Defining *Class
	Method   *Method
}

func (bm *BoundMethod) Type() ObjectType { return BOUND_METHOD_OBJ }
func (bm *BoundMethod) Inspect() string  { return fmt.Sprintf("bound method %s", bm.Method.Name) }
func (bm *BoundMethod) Hash() uint32     { return hashString(bm.Method.Name) }

// BuiltinFunction is a native operation that needs no dispatch context.
type BuiltinFunction func(args ...Object) (Object, error)

// Builtin is a named native function. Adapter operations are builtins.
type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function" }
func (b *Builtin) Hash() uint32     { return hashString(b.Name) }

// Class describes a runtime type: its parents, its method table and
// whether instances freeze after construction. The table is populated at
// registration time and consulted on every attribute access.
type Class struct {
	Name    string
	Parents []*Class

	methods map[string]*Method
	sealed  atomic.Bool

	linOnce sync.Once
	lin     []*Class
	linErr  error
}

// NewClass declares a class. The ancestor linearization is computed
// immediately so an inconsistent hierarchy fails here, not at first
// dispatch.
func NewClass(name string, parents ...*Class) (*Class, error) {
	if name == "" {
		return nil, fmt.Errorf("class name must not be empty")
	}
	for i, p := range parents {
		if p == nil {
			return nil, fmt.Errorf("class '%s': parent %d is nil", name, i)
		}
	}
	c := &Class{Name: name, Parents: parents, methods: make(map[string]*Method)}
	if _, err := c.Linearization(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewClass is NewClass for statically known hierarchies.
func MustNewClass(name string, parents ...*Class) *Class {
	c, err := NewClass(name, parents...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string  { return "class " + c.Name }
func (c *Class) Hash() uint32     { return hashString(c.Name) }

// Seal opts instances of c into freeze-after-construction. Sealing is
// idempotent and monotonic.
func (c *Class) Seal() *Class {
	c.sealed.Store(true)
	return c
}

// Sealed reports whether instances of c freeze after construction. The
// flag is inherited: a sealed ancestor anywhere in the linearization seals
// every descendant. The chain is walked on each call because a parent may
// be sealed after the subclass was declared.
func (c *Class) Sealed() bool {
	lin, err := c.Linearization()
	if err != nil {
		return c.sealed.Load()
	}
	for _, a := range lin {
		if a.sealed.Load() {
			return true
		}
	}
	return false
}

// Define adds a method to the table, replacing any previous entry of the
// same name.
func (c *Class) Define(m *Method) *Class {
	c.methods[m.Name] = m
	return c
}

func (c *Class) DefineMethod(name string, fn Fn) *Class {
	return c.Define(&Method{Name: name, Kind: BoundMethodKind, Fn: fn})
}

func (c *Class) DefineClassMethod(name string, fn Fn) *Class {
	return c.Define(&Method{Name: name, Kind: ClassMethodKind, Fn: fn})
}

func (c *Class) DefineStatic(name string, fn Fn) *Class {
	return c.Define(&Method{Name: name, Kind: StaticMethodKind, Fn: fn})
}

// DefineAccessor adds a get/set pair. set may be nil for a read-only
// accessor.
func (c *Class) DefineAccessor(name string, get, set Fn) *Class {
	return c.Define(&Method{Name: name, Kind: AccessorMethodKind, Get: get, Set: set})
}

// lookupLocal consults only c's own table.
func (c *Class) lookupLocal(name string) (*Method, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// FindMethod searches the full linearization, c first, and returns the
// method together with the ancestor defining it.
func (c *Class) FindMethod(name string) (*Method, *Class, bool) {
	lin, err := c.Linearization()
	if err != nil {
		return nil, nil, false
	}
	for _, a := range lin {
		if m, ok := a.lookupLocal(name); ok {
			return m, a, true
		}
	}
	return nil, nil, false
}

// MethodNames lists the table of c alone, sorted.
func (c *Class) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Methods returns c's own table entries sorted by name.
func (c *Class) Methods() []*Method {
	out := make([]*Method, 0, len(c.methods))
	for _, name := range c.MethodNames() {
		out = append(out, c.methods[name])
	}
	return out
}

// GetAttr resolves class-level attribute access: class methods bind the
// class, static methods stay unbound. Plain methods need an instance and
// resolve to an unbound form whose call rejects a missing receiver.
func (c *Class) GetAttr(name string) (Object, error) {
	m, defining, ok := c.FindMethod(name)
	if !ok {
		return nil, NewAttributeNotFound(c.Name, name)
	}
	switch m.Kind {
	case ClassMethodKind:
		return &BoundMethod{Receiver: c, Defining: defining, Method: m}, nil
	case AccessorMethodKind:
		return nil, NewUsageError("accessor '%s' requires an instance", name)
	default:
		return &BoundMethod{Receiver: nil, Defining: defining, Method: m}, nil
	}
}

func (c *Class) SetAttr(name string, _ Object) error {
	return NewUsageError("cannot assign attribute '%s' on class '%s' after registration", name, c.Name)
}

func (c *Class) DelAttr(name string) error {
	return NewUsageError("cannot delete attribute '%s' on class '%s' after registration", name, c.Name)
}

// Construct creates an instance, runs the initializer resolved through the
// linearization with the freeze flag off, and freezes sealed instances on
// every exit path.
func (c *Class) Construct(args ...Object) (*Instance, error) {
	inst := newInstance(c)
	m, defining, ok := c.FindMethod(InitMethod)
	if !ok {
		inst.freeze()
		return inst, nil
	}
	if m.Kind != BoundMethodKind {
		return nil, NewUsageError("initializer of class '%s' must be a bound method", c.Name)
	}
	defer inst.freeze()
	ctx := &Context{Class: defining, Receiver: inst}
	if _, err := m.Fn(ctx, args...); err != nil {
		return nil, err
	}
	return inst, nil
}
