package object

// Copy returns a shallow copy. Copying a proxy exits it: the result is a
// plain object of the wrapped type whose contents still share references
// with the original. Inherently immutable values come back unchanged.
func Copy(obj Object) Object {
	switch o := obj.(type) {
	case Wrapper:
		return Copy(o.Unwrap())
	case *List:
		return NewList(o.Iterate()...)
	case *Map:
		cp := NewMap()
		for _, e := range o.entries {
			cp.Set(e.Key, e.Value)
		}
		return cp
	case *Instance:
		cp := newInstance(o.class)
		for name, val := range o.attrs {
			cp.attrs[name] = val
		}
		copyFreeze(cp, o)
		return cp
	case *Message:
		cp := NewMessage(o.msg.GetMessageDescriptor())
		if err := cp.msg.MergeFrom(o.msg); err != nil {
			return o
		}
		return cp
	}
	return obj
}

// DeepCopy returns a copy sharing nothing mutable with the original.
// Copying a proxy exits it. Object graphs may contain cycles; the memo
// keeps identity consistent across them.
func DeepCopy(obj Object) Object {
	return deepCopy(obj, make(map[Object]Object))
}

func deepCopy(obj Object, memo map[Object]Object) Object {
	if obj == nil {
		return NIL
	}
	if w, ok := obj.(Wrapper); ok {
		return deepCopy(w.Unwrap(), memo)
	}
	if cached, ok := memo[obj]; ok {
		return cached
	}
	switch o := obj.(type) {
	case *List:
		cp := NewList(make([]Object, len(o.Elements))...)
		memo[obj] = cp
		for i, el := range o.Elements {
			cp.Elements[i] = deepCopy(el, memo)
		}
		return cp
	case *Tuple:
		cp := NewTuple(make([]Object, len(o.Elements))...)
		memo[obj] = cp
		for i, el := range o.Elements {
			cp.Elements[i] = deepCopy(el, memo)
		}
		return cp
	case *Map:
		cp := NewMap()
		memo[obj] = cp
		for _, e := range o.entries {
			cp.Set(deepCopy(e.Key, memo), deepCopy(e.Value, memo))
		}
		return cp
	case *Instance:
		cp := newInstance(o.class)
		memo[obj] = cp
		for name, val := range o.attrs {
			cp.attrs[name] = deepCopy(val, memo)
		}
		copyFreeze(cp, o)
		return cp
	case *Message:
		return Copy(o)
	}
	return obj
}

func copyFreeze(dst, src *Instance) {
	if src.frozen.Load() {
		dst.frozen.Store(true)
	}
}
