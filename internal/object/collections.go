package object

import (
	"bytes"
	"fmt"
)

// Tuple is an immutable value sequence. The sequence itself never changes;
// its elements may still be mutable, which is why tuples are adapted rather
// than registered inherently immutable.
type Tuple struct {
	Elements []Object
}

func NewTuple(elements ...Object) *Tuple {
	return &Tuple{Elements: elements}
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	out := "("
	for i, el := range t.Elements {
		if i > 0 {
			out += ", "
		}
		out += el.Inspect()
	}
	out += ")"
	return out
}
func (t *Tuple) Hash() uint32 {
	h := uint32(2166136261)
	for _, el := range t.Elements {
		h = h*16777619 ^ el.Hash()
	}
	return h
}
func (t *Tuple) Length() int { return len(t.Elements) }
func (t *Tuple) Iterate() []Object {
	cp := make([]Object, len(t.Elements))
	copy(cp, t.Elements)
	return cp
}
func (t *Tuple) Index(key Object) (Object, error) {
	return sequenceIndex(t.Elements, key, "Tuple")
}

// List is a mutable object sequence.
type List struct {
	Elements []Object
}

func NewList(elements ...Object) *List {
	return &List{Elements: elements}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	out := "["
	for i, el := range l.Elements {
		if i > 0 {
			out += ", "
		}
		out += el.Inspect()
	}
	out += "]"
	return out
}
func (l *List) Hash() uint32 {
	h := uint32(2166136261)
	for _, el := range l.Elements {
		h = h*16777619 ^ el.Hash()
	}
	return h
}
func (l *List) Length() int { return len(l.Elements) }
func (l *List) Iterate() []Object {
	cp := make([]Object, len(l.Elements))
	copy(cp, l.Elements)
	return cp
}
func (l *List) Index(key Object) (Object, error) {
	return sequenceIndex(l.Elements, key, "List")
}
func (l *List) SetIndex(key Object, val Object) error {
	idx, err := sequencePosition(len(l.Elements), key, "List")
	if err != nil {
		return err
	}
	l.Elements[idx] = val
	return nil
}
func (l *List) Append(vals ...Object) {
	l.Elements = append(l.Elements, vals...)
}

// sequenceIndex resolves an integer key against elements, supporting
// negative indices counted from the end.
func sequenceIndex(elements []Object, key Object, typeName string) (Object, error) {
	idx, err := sequencePosition(len(elements), key, typeName)
	if err != nil {
		return nil, err
	}
	return elements[idx], nil
}

func sequencePosition(length int, key Object, typeName string) (int, error) {
	k, ok := Unwrap(key).(*Integer)
	if !ok {
		return 0, fmt.Errorf("%s index must be Int, got %s", typeName, TypeName(key))
	}
	idx := k.Value
	if idx < 0 {
		idx += int64(length)
	}
	if idx < 0 || idx >= int64(length) {
		return 0, fmt.Errorf("%s index %d out of range", typeName, k.Value)
	}
	return int(idx), nil
}

// MapEntry is one key-value pair of a Map, in insertion order.
type MapEntry struct {
	Key   Object
	Value Object
}

// Map is a mutable hash map. Iteration follows insertion order; updating
// an existing key keeps its position.
type Map struct {
	entries []MapEntry
	buckets map[uint32][]int
}

func NewMap() *Map {
	return &Map{buckets: make(map[uint32][]int)}
}

func (m *Map) Type() ObjectType { return MAP_OBJ }

func (m *Map) Inspect() string {
	var out bytes.Buffer
	out.WriteString("%{")
	for i, e := range m.entries {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(e.Key.Inspect())
		out.WriteString(" => ")
		out.WriteString(e.Value.Inspect())
	}
	out.WriteString("}")
	return out.String()
}

func (m *Map) Hash() uint32 {
	h := uint32(2166136261)
	for _, e := range m.entries {
		h ^= e.Key.Hash() * 16777619
		h ^= e.Value.Hash()
	}
	return h
}

func (m *Map) Len() int    { return len(m.entries) }
func (m *Map) Length() int { return len(m.entries) }

func (m *Map) lookup(key Object) (int, bool) {
	for _, i := range m.buckets[key.Hash()] {
		if ObjectsEqual(m.entries[i].Key, key) {
			return i, true
		}
	}
	return -1, false
}

func (m *Map) Get(key Object) (Object, bool) {
	if i, ok := m.lookup(key); ok {
		return m.entries[i].Value, true
	}
	return nil, false
}

func (m *Map) Contains(key Object) bool {
	_, ok := m.lookup(key)
	return ok
}

func (m *Map) Set(key, value Object) {
	if i, ok := m.lookup(key); ok {
		m.entries[i].Value = value
		return
	}
	h := key.Hash()
	m.buckets[h] = append(m.buckets[h], len(m.entries))
	m.entries = append(m.entries, MapEntry{Key: key, Value: value})
}

func (m *Map) Delete(key Object) bool {
	i, ok := m.lookup(key)
	if !ok {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	m.buckets = make(map[uint32][]int, len(m.entries))
	for j, e := range m.entries {
		h := e.Key.Hash()
		m.buckets[h] = append(m.buckets[h], j)
	}
	return true
}

// Entries returns the key-value pairs in insertion order. The slice is a
// snapshot; the entries themselves are not copied.
func (m *Map) Entries() []MapEntry {
	cp := make([]MapEntry, len(m.entries))
	copy(cp, m.entries)
	return cp
}

func (m *Map) Keys() []Object {
	keys := make([]Object, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

func (m *Map) Values() []Object {
	vals := make([]Object, len(m.entries))
	for i, e := range m.entries {
		vals[i] = e.Value
	}
	return vals
}

func (m *Map) Iterate() []Object { return m.Keys() }

func (m *Map) Index(key Object) (Object, error) {
	if v, ok := m.Get(Unwrap(key)); ok {
		return v, nil
	}
	return nil, fmt.Errorf("key %s not found", key.Inspect())
}

func (m *Map) SetIndex(key Object, val Object) error {
	m.Set(Unwrap(key), val)
	return nil
}
