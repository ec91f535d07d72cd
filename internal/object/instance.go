package object

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// Instance is an object of a class. Instances of sealed classes accept
// attribute writes only until construction finishes; the freeze flag is
// monotonic and never reverts.
type Instance struct {
	class  *Class
	attrs  map[string]Object
	frozen atomic.Bool
}

func newInstance(c *Class) *Instance {
	return &Instance{class: c, attrs: make(map[string]Object)}
}

func (i *Instance) Type() ObjectType { return INSTANCE_OBJ }

func (i *Instance) Inspect() string {
	names := make([]string, 0, len(i.attrs))
	for name := range i.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	var out strings.Builder
	out.WriteString(i.class.Name)
	out.WriteString("{")
	for n, name := range names {
		if n > 0 {
			out.WriteString(", ")
		}
		fmt.Fprintf(&out, "%s: %s", name, i.attrs[name].Inspect())
	}
	out.WriteString("}")
	return out.String()
}

func (i *Instance) Hash() uint32 {
	h := hashString(i.class.Name)
	for name, val := range i.attrs {
		h ^= hashString(name) * 16777619
		h ^= val.Hash()
	}
	return h
}

func (i *Instance) Class() *Class { return i.class }
func (i *Instance) Frozen() bool  { return i.frozen.Load() }

func (i *Instance) freeze() {
	if i.class.Sealed() {
		i.frozen.Store(true)
	}
}

// AttrNames lists the instance's own attributes, sorted.
func (i *Instance) AttrNames() []string {
	names := make([]string, 0, len(i.attrs))
	for name := range i.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAttr resolves an attribute against the instance. Accessors take
// precedence over stored attributes, then stored attributes over plain
// methods, as the classification table dictates.
func (i *Instance) GetAttr(name string) (Object, error) {
	if m, defining, ok := i.class.FindMethod(name); ok && m.Kind == AccessorMethodKind {
		return m.Get(&Context{Class: defining, Receiver: i})
	}
	if val, ok := i.attrs[name]; ok {
		return val, nil
	}
	m, defining, ok := i.class.FindMethod(name)
	if !ok {
		return nil, NewAttributeNotFound(i.class.Name, name)
	}
	switch m.Kind {
	case ClassMethodKind:
		return &BoundMethod{Receiver: i.class, Defining: defining, Method: m}, nil
	case StaticMethodKind:
		return &BoundMethod{Receiver: nil, Defining: defining, Method: m}, nil
	default:
		return &BoundMethod{Receiver: i, Defining: defining, Method: m}, nil
	}
}

// SetAttr stores an attribute. On a frozen instance it fails regardless of
// the attribute; before freezing, accessor setters are routed through the
// setter.
func (i *Instance) SetAttr(name string, val Object) error {
	if i.frozen.Load() {
		return NewImmutabilityViolation(i.class.Name, name, ActionChange)
	}
	if m, defining, ok := i.class.FindMethod(name); ok && m.Kind == AccessorMethodKind {
		if m.Set == nil {
			return NewUsageError("accessor '%s' of '%s' is read-only", name, i.class.Name)
		}
		_, err := m.Set(&Context{Class: defining, Receiver: i}, val)
		return err
	}
	i.attrs[name] = val
	return nil
}

// DelAttr removes an attribute. Legal inside the initializer; a frozen
// instance rejects it, and deleting a missing attribute is an error.
func (i *Instance) DelAttr(name string) error {
	if i.frozen.Load() {
		return NewImmutabilityViolation(i.class.Name, name, ActionDelete)
	}
	if _, ok := i.attrs[name]; !ok {
		return NewAttributeNotFound(i.class.Name, name)
	}
	delete(i.attrs, name)
	return nil
}
