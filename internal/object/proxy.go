package object

// Proxy wraps an object and enforces immutability on it: reads delegate,
// method calls run with the proxy substituted as receiver, writes and
// deletes fail. The wrapped object is held by reference and never copied.
type Proxy struct {
	target Object
}

// Wrap returns the immutability proxy for obj. Inherently immutable
// values come back unchanged, as does anything already wrapped: a shallow
// wrap never downgrades a deep proxy. Registered container types get
// their adapter instead of the generic proxy.
func Wrap(obj Object) Object {
	if obj == nil {
		return NIL
	}
	if IsImmutableType(obj.Type()) {
		return obj
	}
	if _, ok := obj.(Wrapper); ok {
		return obj
	}
	if f, ok := proxyFactoryFor(obj.Type()); ok {
		return f(obj)
	}
	return &Proxy{target: obj}
}

func (p *Proxy) Type() ObjectType { return PROXY_OBJ }
func (p *Proxy) Inspect() string  { return p.target.Inspect() }
func (p *Proxy) Hash() uint32     { return p.target.Hash() }
func (p *Proxy) Unwrap() Object   { return p.target }

func (p *Proxy) GetAttr(name string) (Object, error) {
	return proxyAttr(p, p.target, name, false)
}

func (p *Proxy) SetAttr(name string, _ Object) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionChange)
}

func (p *Proxy) DelAttr(name string) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionDelete)
}

func (p *Proxy) Length() int {
	if s, ok := p.target.(Sized); ok {
		return s.Length()
	}
	return 0
}

func (p *Proxy) Index(key Object) (Object, error) {
	return delegateIndex(p.target, key, false)
}

func (p *Proxy) SetIndex(key Object, _ Object) error {
	return NewUnsupportedOperation(TypeName(p), "item assignment")
}

func (p *Proxy) Iterate() []Object {
	return delegateIterate(p.target, false)
}

// proxyAttr classifies an attribute read through a proxy. self is the
// proxy itself and becomes the receiver of plain methods; accessors run
// against the raw target; class methods bind the runtime class. With deep
// set, every non-callable result is deep-wrapped on the way out.
func proxyAttr(self Object, target Object, name string, deep bool) (Object, error) {
	inst, ok := target.(*Instance)
	if !ok {
		att, ok := target.(Attributed)
		if !ok {
			return nil, NewAttributeNotFound(TypeName(target), name)
		}
		val, err := att.GetAttr(name)
		if err != nil {
			return nil, err
		}
		return wrapResult(val, deep), nil
	}

	if m, defining, ok := inst.class.FindMethod(name); ok && m.Kind == AccessorMethodKind {
		val, err := m.Get(&Context{Class: defining, Receiver: target})
		if err != nil {
			return nil, err
		}
		return wrapResult(val, deep), nil
	}
	if val, ok := inst.attrs[name]; ok {
		return wrapResult(val, deep), nil
	}
	m, defining, ok := inst.class.FindMethod(name)
	if !ok {
		return nil, NewAttributeNotFound(inst.class.Name, name)
	}
	switch m.Kind {
	case ClassMethodKind:
		return &BoundMethod{Receiver: inst.class, Defining: defining, Method: m}, nil
	case StaticMethodKind:
		return &BoundMethod{Receiver: nil, Defining: defining, Method: m}, nil
	default:
		return &BoundMethod{Receiver: self, Defining: defining, Method: m}, nil
	}
}

func wrapResult(val Object, deep bool) Object {
	if deep {
		return DeepWrap(val)
	}
	return val
}

func delegateIndex(target Object, key Object, deep bool) (Object, error) {
	idx, ok := target.(Indexable)
	if !ok {
		return nil, NewUnsupportedOperation(TypeName(target), "indexing")
	}
	val, err := idx.Index(key)
	if err != nil {
		return nil, err
	}
	return wrapResult(val, deep), nil
}

func delegateIterate(target Object, deep bool) []Object {
	it, ok := target.(Iterable)
	if !ok {
		return nil
	}
	els := it.Iterate()
	if deep {
		for i, el := range els {
			els[i] = DeepWrap(el)
		}
	}
	return els
}
