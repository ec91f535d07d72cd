package object

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) Hash() uint32 {
	return uint32(i.Value ^ (i.Value >> 32))
}

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return fmt.Sprintf("%g", f.Value) }
func (f *Float) Hash() uint32 {
	bits := math.Float64bits(f.Value)
	return uint32(bits ^ (bits >> 32))
}

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return fmt.Sprintf("%q", s.Value) }
func (s *String) Hash() uint32     { return hashString(s.Value) }
func (s *String) Length() int      { return len([]rune(s.Value)) }

// Bytes is an immutable byte sequence. The backing slice is copied on
// construction so no caller alias can mutate it.
type Bytes struct {
	data []byte
}

func NewBytes(data []byte) *Bytes {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Bytes{data: cp}
}

func (b *Bytes) Type() ObjectType { return BYTES_OBJ }
func (b *Bytes) Inspect() string  { return fmt.Sprintf("Bytes(%d)", len(b.data)) }
func (b *Bytes) Hash() uint32     { return hashBytes(b.data) }
func (b *Bytes) Length() int      { return len(b.data) }

// Data returns a copy of the underlying bytes.
func (b *Bytes) Data() []byte {
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return cp
}

// Nil
type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "Nil" }
func (n *Nil) Hash() uint32     { return 0 }

// Uuid
type Uuid struct {
	Value uuid.UUID
}

func NewUuid() *Uuid {
	return &Uuid{Value: uuid.New()}
}

func ParseUuid(s string) (*Uuid, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return &Uuid{Value: id}, nil
}

func (u *Uuid) Type() ObjectType { return UUID_OBJ }
func (u *Uuid) Inspect() string  { return u.Value.String() }
func (u *Uuid) Hash() uint32     { return hashBytes(u.Value[:]) }

// Time wraps an instant. Instants never mutate, so the type is registered
// inherently immutable.
type Time struct {
	Value time.Time
}

func (t *Time) Type() ObjectType { return TIME_OBJ }
func (t *Time) Inspect() string  { return t.Value.Format(time.RFC3339) }
func (t *Time) Hash() uint32     { return hashString(t.Value.Format(time.RFC3339Nano)) }
