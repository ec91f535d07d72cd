package object

// Context is the per-call dispatch state: the class in whose body the
// running method was defined and the receiver it was invoked on. Every
// method invocation gets its own context; nothing is installed globally,
// so concurrent calls and suspended methods cannot observe each other's
// state.
type Context struct {
	// Class is the defining class of the running method, not the
	// receiver's runtime class.
	Class *Class

	// Receiver is the value the method was resolved against: a raw
	// instance, a proxy, or a class for class methods. Static methods
	// carry nil.
	Receiver Object
}

func NewContext(class *Class, receiver Object) *Context {
	return &Context{Class: class, Receiver: receiver}
}

// Super is the implicit ancestor-dispatch form: it recovers the
// (class, receiver) pair from the running call's own context. An absent or
// incomplete context is the fatal ResolverUnavailable condition, distinct
// from a lookup miss.
func (c *Context) Super() (*Super, error) {
	if c == nil || c.Class == nil {
		return nil, NewResolverUnavailable("no dispatch context for implicit ancestor call")
	}
	if c.Receiver == nil {
		return nil, NewResolverUnavailable("dispatch context of '%s' has no receiver", c.Class.Name)
	}
	return newSuper(c.Class, c.Receiver)
}

// SuperFor is the explicit ancestor-dispatch form with both the class and
// the receiver stated by the caller. The chain is still computed from the
// receiver's true runtime class; class only fixes the slice start.
func SuperFor(class *Class, receiver Object) (*Super, error) {
	if class == nil {
		return nil, NewUsageError("explicit ancestor dispatch requires a class")
	}
	if receiver == nil {
		return nil, NewUsageError("explicit ancestor dispatch with a class but no receiver is not supported")
	}
	return newSuper(class, receiver)
}

// SuperUnbound is the explicit one-arg form: an unbound lookup over
// class's own ancestor order. Class methods bind class itself and static
// methods need no receiver, so the form serves class-level delegation;
// bound methods resolve but cannot be called, and accessors are a usage
// error.
func SuperUnbound(class *Class) (*Super, error) {
	if class == nil {
		return nil, NewUsageError("explicit ancestor dispatch requires a class")
	}
	return newUnboundSuper(class)
}
