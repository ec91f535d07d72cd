package object

import "fmt"

// The container adapters. Each exposes the read-only slice of its
// family's operations and deep-wraps everything it hands out, including
// iteration elements and indexed reads. Operations the family supports
// only mutably are rejected with UnsupportedOperation; names the family
// does not know at all are a plain attribute miss.

var listMutators = map[string]bool{
	"append":  true,
	"extend":  true,
	"insert":  true,
	"remove":  true,
	"pop":     true,
	"clear":   true,
	"sort":    true,
	"reverse": true,
}

var mapMutators = map[string]bool{
	"update":     true,
	"pop":        true,
	"popitem":    true,
	"clear":      true,
	"setdefault": true,
}

// TupleProxy adapts a tuple. Tuples have no mutating operations, so every
// operation of the family is available.
type TupleProxy struct {
	target *Tuple
}

func (p *TupleProxy) Type() ObjectType { return TUPLE_PROXY_OBJ }
func (p *TupleProxy) Inspect() string  { return p.target.Inspect() }
func (p *TupleProxy) Hash() uint32     { return p.target.Hash() }
func (p *TupleProxy) Unwrap() Object   { return p.target }
func (p *TupleProxy) Length() int      { return p.target.Length() }

func (p *TupleProxy) GetAttr(name string) (Object, error) {
	switch name {
	case "index":
		return sequenceIndexOp(p.target.Elements, "Tuple"), nil
	case "count":
		return sequenceCountOp(p.target.Elements), nil
	}
	return nil, NewAttributeNotFound(TypeName(p), name)
}

func (p *TupleProxy) SetAttr(name string, _ Object) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionChange)
}

func (p *TupleProxy) DelAttr(name string) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionDelete)
}

func (p *TupleProxy) Index(key Object) (Object, error) {
	return delegateIndex(p.target, key, true)
}

func (p *TupleProxy) SetIndex(key Object, _ Object) error {
	return NewUnsupportedOperation(TypeName(p), "item assignment")
}

func (p *TupleProxy) Iterate() []Object {
	return delegateIterate(p.target, true)
}

func (p *TupleProxy) Contains(val Object) bool {
	return containsEqual(p.target.Elements, val)
}

// ListProxy adapts a list: index and count, nothing that mutates.
type ListProxy struct {
	target *List
}

func (p *ListProxy) Type() ObjectType { return LIST_PROXY_OBJ }
func (p *ListProxy) Inspect() string  { return p.target.Inspect() }
func (p *ListProxy) Hash() uint32     { return p.target.Hash() }
func (p *ListProxy) Unwrap() Object   { return p.target }
func (p *ListProxy) Length() int      { return p.target.Length() }

func (p *ListProxy) GetAttr(name string) (Object, error) {
	switch name {
	case "index":
		return sequenceIndexOp(p.target.Elements, "List"), nil
	case "count":
		return sequenceCountOp(p.target.Elements), nil
	}
	if listMutators[name] {
		return nil, NewUnsupportedOperation(TypeName(p), name)
	}
	return nil, NewAttributeNotFound(TypeName(p), name)
}

func (p *ListProxy) SetAttr(name string, _ Object) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionChange)
}

func (p *ListProxy) DelAttr(name string) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionDelete)
}

func (p *ListProxy) Index(key Object) (Object, error) {
	return delegateIndex(p.target, key, true)
}

func (p *ListProxy) SetIndex(key Object, _ Object) error {
	return NewUnsupportedOperation(TypeName(p), "item assignment")
}

func (p *ListProxy) Iterate() []Object {
	return delegateIterate(p.target, true)
}

func (p *ListProxy) Contains(val Object) bool {
	return containsEqual(p.target.Elements, val)
}

// MapProxy adapts a map: lookup with default and the three entry views.
type MapProxy struct {
	target *Map
}

func (p *MapProxy) Type() ObjectType { return MAP_PROXY_OBJ }
func (p *MapProxy) Inspect() string  { return p.target.Inspect() }
func (p *MapProxy) Hash() uint32     { return p.target.Hash() }
func (p *MapProxy) Unwrap() Object   { return p.target }
func (p *MapProxy) Length() int      { return p.target.Len() }

func (p *MapProxy) GetAttr(name string) (Object, error) {
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

func (p *MapProxy) SetAttr(name string, _ Object) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionChange)
}

func (p *MapProxy) DelAttr(name string) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionDelete)
}

func (p *MapProxy) Index(key Object) (Object, error) {
	return delegateIndex(p.target, key, true)
}

func (p *MapProxy) SetIndex(key Object, _ Object) error {
	return NewUnsupportedOperation(TypeName(p), "item assignment")
}

func (p *MapProxy) Iterate() []Object {
	return delegateIterate(p.target, true)
}

func (p *MapProxy) Contains(key Object) bool {
	return p.target.Contains(Unwrap(key))
}

func (p *MapProxy) get(args ...Object) (Object, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("wrong number of arguments. got=%d, want=1 or 2", len(args))
	}
	if val, ok := p.target.Get(Unwrap(args[0])); ok {
		return DeepWrap(val), nil
	}
	if len(args) == 2 {
		return DeepWrap(args[1]), nil
	}
	return NIL, nil
}

func (p *MapProxy) items(args ...Object) (Object, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("wrong number of arguments. got=%d, want=0", len(args))
	}
	entries := p.target.Entries()
	tuples := make([]Object, len(entries))
	for i, e := range entries {
		tuples[i] = NewTuple(e.Key, e.Value)
	}
	return DeepWrap(NewList(tuples...)), nil
}

func (p *MapProxy) keys(args ...Object) (Object, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("wrong number of arguments. got=%d, want=0", len(args))
	}
	return DeepWrap(NewList(p.target.Keys()...)), nil
}

func (p *MapProxy) values(args ...Object) (Object, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("wrong number of arguments. got=%d, want=0", len(args))
	}
	return DeepWrap(NewList(p.target.Values()...)), nil
}

func sequenceIndexOp(elements []Object, typeName string) *Builtin {
	return &Builtin{Name: "index", Fn: func(args ...Object) (Object, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("wrong number of arguments. got=%d, want=1", len(args))
		}
		for i, el := range elements {
			if ObjectsEqual(el, args[0]) {
				return &Integer{Value: int64(i)}, nil
			}
		}
		return nil, fmt.Errorf("%s is not in %s", args[0].Inspect(), typeName)
	}}
}

func sequenceCountOp(elements []Object) *Builtin {
	return &Builtin{Name: "count", Fn: func(args ...Object) (Object, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("wrong number of arguments. got=%d, want=1", len(args))
		}
		var n int64
		for _, el := range elements {
			if ObjectsEqual(el, args[0]) {
				n++
			}
		}
		return &Integer{Value: n}, nil
	}}
}

func containsEqual(elements []Object, val Object) bool {
	for _, el := range elements {
		if ObjectsEqual(el, val) {
			return true
		}
	}
	return false
}
