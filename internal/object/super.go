package object

import "fmt"

// Super resolves attribute lookups against the slice of the receiver's
// ancestor chain strictly after a given class. The receiver travels into
// every resolved method untouched: a proxy stays a proxy.
type Super struct {
	start *Class
	chain []*Class
	recv  Object
}

func newSuper(start *Class, recv Object) (*Super, error) {
	runtime := ClassOf(recv)
	if runtime == nil {
		return nil, NewResolverUnavailable("receiver of type %s has no class", TypeName(recv))
	}
	lin, err := runtime.Linearization()
	if err != nil {
		return nil, err
	}
	idx := -1
	for n, a := range lin {
		if a == start {
			idx = n
			break
		}
	}
	if idx < 0 {
		return nil, NewResolverUnavailable("%s is not in the ancestor chain of %s", start.Name, runtime.Name)
	}
	return &Super{start: start, chain: lin[idx+1:], recv: recv}, nil
}

// newUnboundSuper slices start's own order. recv stays nil: lookups
// resolve but carry no receiver.
func newUnboundSuper(start *Class) (*Super, error) {
	lin, err := start.Linearization()
	if err != nil {
		return nil, err
	}
	return &Super{start: start, chain: lin[1:]}, nil
}

func (s *Super) Type() ObjectType { return SUPER_OBJ }
func (s *Super) Inspect() string {
	if s.recv == nil {
		return fmt.Sprintf("super(%s)", s.start.Name)
	}
	return fmt.Sprintf("super(%s, %s)", s.start.Name, TypeName(s.recv))
}
func (s *Super) Hash() uint32 { return hashString(s.start.Name) }

// Attr finds the first ancestor after the starting class that defines
// name and binds it. Accessors bypass callable wrapping: the getter runs
// immediately against the receiver. A miss names the starting class, not
// the receiver's class.
func (s *Super) Attr(name string) (Object, error) {
	for _, a := range s.chain {
		m, ok := a.lookupLocal(name)
		if !ok {
			continue
		}
		switch m.Kind {
		case AccessorMethodKind:
			if s.recv == nil {
				return nil, NewUsageError("accessor '%s' requires an instance", name)
			}
			return m.Get(&Context{Class: a, Receiver: s.recv})
		case ClassMethodKind:
			if s.recv == nil {
				return &BoundMethod{Receiver: s.start, Defining: a, Method: m}, nil
			}
			return &BoundMethod{Receiver: ClassOf(s.recv), Defining: a, Method: m}, nil
		case StaticMethodKind:
			return &BoundMethod{Receiver: nil, Defining: a, Method: m}, nil
		default:
			return &BoundMethod{Receiver: s.recv, Defining: a, Method: m}, nil
		}
	}
	return nil, NewAttributeNotFound(s.start.Name, name)
}

// Call resolves name and invokes it. The callee gets a fresh context for
// its own ancestor calls, so nested dispatch recomputes its slice from its
// own defining class rather than continuing this one.
func (s *Super) Call(name string, args ...Object) (Object, error) {
	attr, err := s.Attr(name)
	if err != nil {
		return nil, err
	}
	return Call(attr, args...)
}
