package object

// Call invokes a callable resolved by attribute access or ancestor
// dispatch. Every bound-method call gets a fresh context carrying the
// defining class and the receiver the method was resolved against.
func Call(callee Object, args ...Object) (Object, error) {
	switch fn := callee.(type) {
	case *BoundMethod:
		return callBound(fn, args...)
	case *Builtin:
		return fn.Fn(args...)
	case *Method:
		if fn.Kind != StaticMethodKind {
			return nil, NewUsageError("%s method '%s' cannot be called without a receiver", fn.Kind, fn.Name)
		}
		return fn.Fn(&Context{}, args...)
	}
	return nil, NewUnsupportedOperation(TypeName(callee), "call")
}

func callBound(bm *BoundMethod, args ...Object) (Object, error) {
	m := bm.Method
	switch m.Kind {
	case AccessorMethodKind:
		return nil, NewUsageError("accessor '%s' is not callable", m.Name)
	case BoundMethodKind:
		if bm.Receiver == nil {
			return nil, NewUsageError("unbound method '%s' requires a receiver", m.Name)
		}
	}
	ctx := &Context{Class: bm.Defining, Receiver: bm.Receiver}
	return m.Fn(ctx, args...)
}
