package object

import "fmt"

// Capability-based adapters for host-defined container types. Unlike the
// builtin adapters they key on what the target can do, not on its concrete
// type: any object implementing the sequence or mapping capabilities can be
// registered with one of these factories. Operations the target lacks the
// capability for fail at call time, not at wrap time.

// NewSequenceProxyFactory returns the factory registering a type as a
// read-only sequence. The target should implement Sized, Indexable and
// Iterable.
func NewSequenceProxyFactory() ProxyFactory {
	return func(obj Object) Object { return &SequenceProxy{target: obj} }
}

// NewMappingProxyFactory returns the factory registering a type as a
// read-only mapping. The target should implement Sized, Indexable and
// Iterable, with Iterate producing keys. Index must signal a missing key
// with AttributeNotFound; any other error passes through to the caller.
func NewMappingProxyFactory() ProxyFactory {
	return func(obj Object) Object { return &MappingProxy{target: obj} }
}

// SequenceProxy adapts any sequence-capable object: index and count,
// nothing that mutates, every read deep-wrapped.
type SequenceProxy struct {
	target Object
}

func (p *SequenceProxy) Type() ObjectType { return SEQUENCE_PROXY_OBJ }
func (p *SequenceProxy) Inspect() string  { return p.target.Inspect() }
func (p *SequenceProxy) Hash() uint32     { return p.target.Hash() }
func (p *SequenceProxy) Unwrap() Object   { return p.target }

func (p *SequenceProxy) Length() int {
	if s, ok := p.target.(Sized); ok {
		return s.Length()
	}
	return 0
}

func (p *SequenceProxy) GetAttr(name string) (Object, error) {
	switch name {
	case "index":
		it, ok := p.target.(Iterable)
		if !ok {
			return nil, NewUnsupportedOperation(TypeName(p), name)
		}
		return sequenceIndexOp(it.Iterate(), TypeName(p.target)), nil
	case "count":
		it, ok := p.target.(Iterable)
		if !ok {
			return nil, NewUnsupportedOperation(TypeName(p), name)
		}
		return sequenceCountOp(it.Iterate()), nil
	}
	if listMutators[name] {
		return nil, NewUnsupportedOperation(TypeName(p), name)
	}
	return nil, NewAttributeNotFound(TypeName(p), name)
}

func (p *SequenceProxy) SetAttr(name string, _ Object) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionChange)
}

func (p *SequenceProxy) DelAttr(name string) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionDelete)
}

func (p *SequenceProxy) Index(key Object) (Object, error) {
	return delegateIndex(p.target, key, true)
}

func (p *SequenceProxy) SetIndex(key Object, _ Object) error {
	return NewUnsupportedOperation(TypeName(p), "item assignment")
}

func (p *SequenceProxy) Iterate() []Object {
	return delegateIterate(p.target, true)
}

func (p *SequenceProxy) Contains(val Object) bool {
	it, ok := p.target.(Iterable)
	if !ok {
		return false
	}
	return containsEqual(it.Iterate(), val)
}

// MappingProxy adapts any mapping-capable object: lookup with default and
// the three entry views, all built from iterated keys and indexed reads.
type MappingProxy struct {
	target Object
}

func (p *MappingProxy) Type() ObjectType { return MAPPING_PROXY_OBJ }
func (p *MappingProxy) Inspect() string  { return p.target.Inspect() }
func (p *MappingProxy) Hash() uint32     { return p.target.Hash() }
func (p *MappingProxy) Unwrap() Object   { return p.target }

func (p *MappingProxy) Length() int {
	if s, ok := p.target.(Sized); ok {
		return s.Length()
	}
	return 0
}

func (p *MappingProxy) GetAttr(name string) (Object, error) {
	switch name {
	case "get":
		return &Builtin{Name: "get", Fn: p.get}, nil
	case "items":
		return &Builtin{Name: "items", Fn: p.items}, nil
	case "keys":
		return &Builtin{Name: "keys", Fn: p.keys}, nil
	case "values":
		return &Builtin{Name: "values", Fn: p.values}, nil
	}
	if mapMutators[name] {
		return nil, NewUnsupportedOperation(TypeName(p), name)
	}
	return nil, NewAttributeNotFound(TypeName(p), name)
}

func (p *MappingProxy) SetAttr(name string, _ Object) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionChange)
}

func (p *MappingProxy) DelAttr(name string) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionDelete)
}

func (p *MappingProxy) Index(key Object) (Object, error) {
	return delegateIndex(p.target, key, true)
}

func (p *MappingProxy) SetIndex(key Object, _ Object) error {
	return NewUnsupportedOperation(TypeName(p), "item assignment")
}

func (p *MappingProxy) Iterate() []Object {
	return delegateIterate(p.target, true)
}

func (p *MappingProxy) Contains(key Object) bool {
	it, ok := p.target.(Iterable)
	if !ok {
		return false
	}
	return containsEqual(it.Iterate(), Unwrap(key))
}

func (p *MappingProxy) get(args ...Object) (Object, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("wrong number of arguments. got=%d, want=1 or 2", len(args))
	}
	idx, ok := p.target.(Indexable)
	if !ok {
		return nil, NewUnsupportedOperation(TypeName(p), "get")
	}
	val, err := idx.Index(Unwrap(args[0]))
	if err == nil {
		return DeepWrap(val), nil
	}
	// Only a signaled miss falls back to the default.
	if !IsAttributeNotFound(err) {
		return nil, err
	}
	if len(args) == 2 {
		return DeepWrap(args[1]), nil
	}
	return NIL, nil
}

func (p *MappingProxy) items(args ...Object) (Object, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("wrong number of arguments. got=%d, want=0", len(args))
	}
	it, ok := p.target.(Iterable)
	if !ok {
		return nil, NewUnsupportedOperation(TypeName(p), "items")
	}
	idx, ok := p.target.(Indexable)
	if !ok {
		return nil, NewUnsupportedOperation(TypeName(p), "items")
	}
	keys := it.Iterate()
	pairs := make([]Object, len(keys))
	for i, k := range keys {
		v, err := idx.Index(k)
		if err != nil {
			return nil, err
		}
		pairs[i] = NewTuple(k, v)
	}
	return DeepWrap(NewList(pairs...)), nil
}

func (p *MappingProxy) keys(args ...Object) (Object, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("wrong number of arguments. got=%d, want=0", len(args))
	}
	it, ok := p.target.(Iterable)
	if !ok {
		return nil, NewUnsupportedOperation(TypeName(p), "keys")
	}
	return DeepWrap(NewList(it.Iterate()...)), nil
}

func (p *MappingProxy) values(args ...Object) (Object, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("wrong number of arguments. got=%d, want=0", len(args))
	}
	it, ok := p.target.(Iterable)
	if !ok {
		return nil, NewUnsupportedOperation(TypeName(p), "values")
	}
	idx, ok := p.target.(Indexable)
	if !ok {
		return nil, NewUnsupportedOperation(TypeName(p), "values")
	}
	keys := it.Iterate()
	vals := make([]Object, len(keys))
	for i, k := range keys {
		v, err := idx.Index(k)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return DeepWrap(NewList(vals...)), nil
}
