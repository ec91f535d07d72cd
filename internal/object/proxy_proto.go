package object

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Message wraps a dynamic protobuf message. The underlying message is
// mutable, which is what makes it worth proxying: field writes go through
// SetAttr and are rejected once the message sits behind an adapter.
type Message struct {
	msg *dynamic.Message
}

func NewMessage(md *desc.MessageDescriptor) *Message {
	return &Message{msg: dynamic.NewMessage(md)}
}

func WrapDynamic(msg *dynamic.Message) *Message {
	return &Message{msg: msg}
}

// ParseMessageDescriptor compiles an in-memory proto source and returns
// the descriptor of one of its messages.
func ParseMessageDescriptor(filename, source, message string) (*desc.MessageDescriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{filename: source}),
	}
	fds, err := parser.ParseFiles(filename)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	md := fds[0].FindMessage(message)
	if md == nil {
		return nil, fmt.Errorf("message %s not found in %s", message, filename)
	}
	return md, nil
}

func (m *Message) Type() ObjectType { return MESSAGE_OBJ }
func (m *Message) Inspect() string {
	return fmt.Sprintf("Message<%s>", m.msg.GetMessageDescriptor().GetFullyQualifiedName())
}
func (m *Message) Hash() uint32 {
	data, err := m.msg.Marshal()
	if err != nil {
		return hashString(m.msg.GetMessageDescriptor().GetFullyQualifiedName())
	}
	return hashBytes(data)
}

// Dynamic returns the underlying dynamic message.
func (m *Message) Dynamic() *dynamic.Message { return m.msg }

// FieldNames lists the message's fields in declaration order.
func (m *Message) FieldNames() []string {
	fields := m.msg.GetMessageDescriptor().GetFields()
	names := make([]string, len(fields))
	for i, fd := range fields {
		names[i] = fd.GetName()
	}
	return names
}

func (m *Message) GetAttr(name string) (Object, error) {
	fd := m.msg.GetMessageDescriptor().FindFieldByName(name)
	if fd == nil {
		return nil, NewAttributeNotFound(TypeName(m), name)
	}
	return convertFromProtoValue(m.msg.GetField(fd), fd), nil
}

func (m *Message) SetAttr(name string, val Object) error {
	fd := m.msg.GetMessageDescriptor().FindFieldByName(name)
	if fd == nil {
		return NewAttributeNotFound(TypeName(m), name)
	}
	v, err := convertToProtoValue(val, fd)
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	m.msg.SetField(fd, v)
	return nil
}

func (m *Message) DelAttr(name string) error {
	fd := m.msg.GetMessageDescriptor().FindFieldByName(name)
	if fd == nil {
		return NewAttributeNotFound(TypeName(m), name)
	}
	m.msg.ClearField(fd)
	return nil
}

var messageMutators = map[string]bool{
	"set_field":   true,
	"clear_field": true,
	"merge":       true,
}

// MessageProxy adapts a dynamic protobuf message: read-only field access
// by name with converted values deep-wrapped on the way out.
type MessageProxy struct {
	target *Message
}

func (p *MessageProxy) Type() ObjectType { return MESSAGE_PROXY_OBJ }
func (p *MessageProxy) Inspect() string  { return p.target.Inspect() }
func (p *MessageProxy) Hash() uint32     { return p.target.Hash() }
func (p *MessageProxy) Unwrap() Object   { return p.target }

func (p *MessageProxy) GetAttr(name string) (Object, error) {
	if name == "fields" {
		return &Builtin{Name: "fields", Fn: func(args ...Object) (Object, error) {
			if len(args) != 0 {
				return nil, fmt.Errorf("wrong number of arguments. got=%d, want=0", len(args))
			}
			names := p.target.FieldNames()
			els := make([]Object, len(names))
			for i, n := range names {
				els[i] = &String{Value: n}
			}
			return DeepWrap(NewList(els...)), nil
		}}, nil
	}
	if messageMutators[name] {
		return nil, NewUnsupportedOperation(TypeName(p), name)
	}
	val, err := p.target.GetAttr(name)
	if err != nil {
		return nil, err
	}
	return DeepWrap(val), nil
}

func (p *MessageProxy) SetAttr(name string, _ Object) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionChange)
}

func (p *MessageProxy) DelAttr(name string) error {
	return NewImmutabilityViolation(TypeName(p), name, ActionDelete)
}

func convertFromProtoValue(val interface{}, fd *desc.FieldDescriptor) Object {
	if val == nil {
		return protoDefaultValue(fd)
	}
	if fd.IsRepeated() {
		slice, ok := val.([]interface{})
		if !ok {
			return NewList()
		}
		els := make([]Object, len(slice))
		for i, v := range slice {
			els[i] = convertFromProtoSingleValue(v)
		}
		return NewList(els...)
	}
	return convertFromProtoSingleValue(val)
}

func convertFromProtoSingleValue(val interface{}) Object {
	switch v := val.(type) {
	case int32:
		return &Integer{Value: int64(v)}
	case int64:
		return &Integer{Value: v}
	case uint32:
		return &Integer{Value: int64(v)}
	case uint64:
		return &Integer{Value: int64(v)}
	case float32:
		return &Float{Value: float64(v)}
	case float64:
		return &Float{Value: v}
	case bool:
		return nativeBoolToBooleanObject(v)
	case string:
		return &String{Value: v}
	case []byte:
		return NewBytes(v)
	case *dynamic.Message:
		return &Message{msg: v}
	case int:
		return &Integer{Value: int64(v)}
	}
	return NIL
}

func convertToProtoValue(val Object, fd *desc.FieldDescriptor) (interface{}, error) {
	val = Unwrap(val)
	if fd.IsRepeated() {
		var els []Object
		switch v := val.(type) {
		case *List:
			els = v.Elements
		case *Tuple:
			els = v.Elements
		default:
			return nil, fmt.Errorf("expected List for repeated field, got %s", TypeName(val))
		}
		slice := make([]interface{}, len(els))
		for i, el := range els {
			v, err := convertToProtoSingleValue(el, fd)
			if err != nil {
				return nil, err
			}
			slice[i] = v
		}
		return slice, nil
	}
	return convertToProtoSingleValue(val, fd)
}

func convertToProtoSingleValue(val Object, fd *desc.FieldDescriptor) (interface{}, error) {
	val = Unwrap(val)
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_INT32, descriptorpb.FieldDescriptorProto_TYPE_SINT32, descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		if i, ok := val.(*Integer); ok {
			return int32(i.Value), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_INT64, descriptorpb.FieldDescriptorProto_TYPE_SINT64, descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		if i, ok := val.(*Integer); ok {
			return i.Value, nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32, descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		if i, ok := val.(*Integer); ok {
			return uint32(i.Value), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64, descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		if i, ok := val.(*Integer); ok {
			return uint64(i.Value), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		if f, ok := val.(*Float); ok {
			return float32(f.Value), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		if f, ok := val.(*Float); ok {
			return f.Value, nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		if b, ok := val.(*Boolean); ok {
			return b.Value, nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		if s, ok := val.(*String); ok {
			return s.Value, nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		if b, ok := val.(*Bytes); ok {
			return b.Data(), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		msg := dynamic.NewMessage(fd.GetMessageType())
		if err := objectToDynamicMessage(val, msg); err != nil {
			return nil, err
		}
		return msg, nil
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		if i, ok := val.(*Integer); ok {
			return int32(i.Value), nil
		}
		if s, ok := val.(*String); ok {
			ev := fd.GetEnumType().FindValueByName(s.Value)
			if ev != nil {
				return ev.GetNumber(), nil
			}
		}
	}
	return nil, fmt.Errorf("unsupported conversion from %s to %v", TypeName(val), fd.GetType())
}

func objectToDynamicMessage(obj Object, msg *dynamic.Message) error {
	var fields map[string]Object
	switch o := Unwrap(obj).(type) {
	case *Message:
		return msg.MergeFrom(o.msg)
	case *Instance:
		fields = make(map[string]Object, len(o.attrs))
		for name, val := range o.attrs {
			fields[name] = val
		}
	case *Map:
		fields = make(map[string]Object, o.Len())
		for _, e := range o.Entries() {
			key, ok := Unwrap(e.Key).(*String)
			if !ok {
				continue
			}
			fields[key.Value] = e.Value
		}
	default:
		return fmt.Errorf("expected Message, Instance or Map, got %s", TypeName(obj))
	}

	for name, val := range fields {
		fd := msg.GetMessageDescriptor().FindFieldByName(name)
		if fd == nil {
			// Ignore unknown fields
			continue
		}
		v, err := convertToProtoValue(val, fd)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		if v != nil {
			msg.SetField(fd, v)
		}
	}
	return nil
}

func protoDefaultValue(fd *desc.FieldDescriptor) Object {
	if fd.IsRepeated() {
		return NewList()
	}
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return &String{Value: ""}
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return NewBytes(nil)
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return FALSE
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return &Float{Value: 0}
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		return NIL
	default:
		return &Integer{Value: 0}
	}
}
