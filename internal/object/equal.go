package object

import "bytes"

// ObjectsEqual performs a deep equality check. Proxies compare as their
// wrapped object, so a proxy equals its target and equals another proxy
// of an equal target.
func ObjectsEqual(a, b Object) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	a = Unwrap(a)
	b = Unwrap(b)
	if a == b {
		return true
	}
	if a.Type() != b.Type() {
		return false
	}

	switch aVal := a.(type) {
	case *Integer:
		if bVal, ok := b.(*Integer); ok {
			return aVal.Value == bVal.Value
		}
	case *Float:
		if bVal, ok := b.(*Float); ok {
			return aVal.Value == bVal.Value
		}
	case *Boolean:
		if bVal, ok := b.(*Boolean); ok {
			return aVal.Value == bVal.Value
		}
	case *String:
		if bVal, ok := b.(*String); ok {
			return aVal.Value == bVal.Value
		}
	case *Bytes:
		if bVal, ok := b.(*Bytes); ok {
			return bytes.Equal(aVal.data, bVal.data)
		}
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *Uuid:
		if bVal, ok := b.(*Uuid); ok {
			return aVal.Value == bVal.Value
		}
	case *Time:
		if bVal, ok := b.(*Time); ok {
			return aVal.Value.Equal(bVal.Value)
		}
	case *List:
		if bVal, ok := b.(*List); ok {
			return elementsEqual(aVal.Elements, bVal.Elements)
		}
	case *Tuple:
		if bVal, ok := b.(*Tuple); ok {
			return elementsEqual(aVal.Elements, bVal.Elements)
		}
	case *Map:
		if bVal, ok := b.(*Map); ok {
			if aVal.Len() != bVal.Len() {
				return false
			}
			for _, e := range aVal.entries {
				otherVal, ok := bVal.Get(e.Key)
				if !ok {
					return false
				}
				if !ObjectsEqual(e.Value, otherVal) {
					return false
				}
			}
			return true
		}
	case *Instance:
		if bVal, ok := b.(*Instance); ok {
			if aVal.class != bVal.class {
				return false
			}
			if len(aVal.attrs) != len(bVal.attrs) {
				return false
			}
			for name, val := range aVal.attrs {
				otherVal, ok := bVal.attrs[name]
				if !ok {
					return false
				}
				if !ObjectsEqual(val, otherVal) {
					return false
				}
			}
			return true
		}
	case *Message:
		if bVal, ok := b.(*Message); ok {
			aData, aErr := aVal.msg.Marshal()
			bData, bErr := bVal.msg.Marshal()
			if aErr != nil || bErr != nil {
				return false
			}
			return bytes.Equal(aData, bData)
		}
	}
	return false
}

func elementsEqual(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ObjectsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
