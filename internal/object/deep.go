package object

// DeepProxy is the recursive proxy: every value it returns is itself a
// leaf immutable value or another deep proxy, so no mutable alias of the
// wrapped object graph can escape through it.
type DeepProxy struct {
	target Object
}

// DeepWrap returns the deep immutability proxy for obj. Deep wrapping
// beats shallow: a shallow proxy is replaced by a deep proxy of its own
// target. A value that is already deeply wrapped comes back unchanged.
func DeepWrap(obj Object) Object {
	if obj == nil {
		return NIL
	}
	if IsImmutableType(obj.Type()) {
		return obj
	}
	if p, ok := obj.(*Proxy); ok {
		return DeepWrap(p.target)
	}
	if _, ok := obj.(Wrapper); ok {
		return obj
	}
	if f, ok := proxyFactoryFor(obj.Type()); ok {
		return f(obj)
	}
	return &DeepProxy{target: obj}
}

func (p *DeepProxy) Type() ObjectType { return DEEP_PROXY_OBJ }
func (p *DeepProxy) Inspect() string  { return p.target.Inspect() }
func (p *DeepProxy) Hash() uint32     { return p.target.Hash() }
func (p *DeepProxy) Unwrap() Object   { return p.target }

// GetAttr resolves like the shallow proxy but deep-wraps every data and
// accessor result. Plain methods still bind the deep proxy itself as
// receiver, so values a method body reads off its receiver are wrapped
// transitively.
func (p *DeepProxy) GetAttr(name string) (Object, error) {
	return proxyAttr(p, p.target, name, true)
}

func (p *DeepProxy) SetAttr(name string, _ Object) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionChange)
}

func (p *DeepProxy) DelAttr(name string) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionDelete)
}

func (p *DeepProxy) Length() int {
	if s, ok := p.target.(Sized); ok {
		return s.Length()
	}
	return 0
}

func (p *DeepProxy) Index(key Object) (Object, error) {
	return delegateIndex(p.target, key, true)
}

func (p *DeepProxy) SetIndex(key Object, _ Object) error {
	return NewUnsupportedOperation(TypeName(p), "item assignment")
}

func (p *DeepProxy) Iterate() []Object {
	return delegateIterate(p.target, true)
}
