package seal

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhump/protoreflect/dynamic"
)

// Marshaller handles conversion between Go values and objects.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

var defaultMarshaller = NewMarshaller()

// FromGo converts a native Go value to an object using the default
// marshaller.
func FromGo(val interface{}) (Object, error) {
	return defaultMarshaller.ToValue(val)
}

// ToGo converts an object back to a native Go value using the default
// marshaller. Proxies are unwrapped first; pass a Marshaller directly to
// request a concrete target type.
func ToGo(obj Object) (interface{}, error) {
	return defaultMarshaller.FromValue(obj, nil)
}

// ToValue converts a Go value to an Object.
//
// Values already implementing Object pass through unchanged. Structs
// convert to maps keyed by exported field name in declaration order; Go
// map entries come back in Go's map iteration order, which is not
// specified.
func (m *Marshaller) ToValue(val interface{}) (Object, error) {
	if val == nil {
		return NIL, nil
	}

	// Check if already an Object
	if obj, ok := val.(Object); ok {
		return obj, nil
	}

	// Concrete types with a dedicated value representation.
	switch g := val.(type) {
	case uuid.UUID:
		return &Uuid{Value: g}, nil
	case time.Time:
		return &Time{Value: g}, nil
	case []byte:
		return NewBytes(g), nil
	case *dynamic.Message:
		return WrapDynamic(g), nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Integer{Value: v.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Integer{Value: int64(v.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return &Float{Value: v.Float()}, nil
	case reflect.Bool:
		if v.Bool() {
			return TRUE, nil
		}
		return FALSE, nil
	case reflect.String:
		return &String{Value: v.String()}, nil
	case reflect.Slice, reflect.Array:
		return m.sliceToList(v)
	case reflect.Map:
		return m.mapToMap(v)
	case reflect.Struct:
		return m.structToMap(v)
	case reflect.Ptr:
		if v.IsNil() {
			return NIL, nil
		}
		return m.ToValue(v.Elem().Interface())
	default:
		return nil, fmt.Errorf("unsupported Go kind %s", v.Kind())
	}
}

// FromValue converts an Object to a Go value. targetType is optional; if
// provided, tries to convert to that type. Proxies convert as their
// underlying value.
func (m *Marshaller) FromValue(obj Object, targetType reflect.Type) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}

	obj = Unwrap(obj)

	// If target type is Object, return as is
	if targetType != nil && targetType == reflect.TypeOf((*Object)(nil)).Elem() {
		return obj, nil
	}

	switch o := obj.(type) {
	case *Integer:
		if targetType != nil {
			switch targetType.Kind() {
			case reflect.Int:
				return int(o.Value), nil
			case reflect.Int64:
				return o.Value, nil
			case reflect.Float64:
				return float64(o.Value), nil
			}
		}
		return int(o.Value), nil // Default to int
	case *Float:
		return o.Value, nil
	case *Boolean:
		return o.Value, nil
	case *String:
		return o.Value, nil
	case *Bytes:
		return o.Data(), nil
	case *Uuid:
		return o.Value, nil
	case *Time:
		return o.Value, nil
	case *List:
		return m.elementsToSlice(o.Elements, targetType)
	case *Tuple:
		return m.elementsToSlice(o.Elements, targetType)
	case *Map:
		return m.mapToGoMap(o, targetType)
	case *Message:
		return o.Dynamic(), nil
	case *Instance:
		if targetType != nil && targetType.Kind() == reflect.Struct {
			return m.instanceToStruct(o, targetType)
		}
		return m.instanceToMap(o)
	case *Nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported type for conversion: %s", obj.Type())
	}
}

func (m *Marshaller) sliceToList(v reflect.Value) (*List, error) {
	elements := make([]Object, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		elements[i] = val
	}
	return NewList(elements...), nil
}

func (m *Marshaller) mapToMap(v reflect.Value) (*Map, error) {
	result := NewMap()
	iter := v.MapRange()
	for iter.Next() {
		key, err := m.ToValue(iter.Key().Interface())
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		val, err := m.ToValue(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		result.Set(key, val)
	}
	return result, nil
}

func (m *Marshaller) structToMap(v reflect.Value) (*Map, error) {
	result := NewMap()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // Skip unexported fields
			continue
		}
		val, err := m.ToValue(v.Field(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		result.Set(&String{Value: field.Name}, val)
	}
	return result, nil
}

func (m *Marshaller) elementsToSlice(els []Object, targetType reflect.Type) (interface{}, error) {
	// If targetType is nil, default to []interface{}
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, len(els))

	for _, el := range els {
		val, err := m.FromValue(el, elemType)
		if err != nil {
			return nil, err
		}

		if val == nil {
			// Handle nil for pointers/interfaces
			slice = reflect.Append(slice, reflect.Zero(elemType))
			continue
		}
		rv := reflect.ValueOf(val)
		if rv.Type().AssignableTo(elemType) {
			slice = reflect.Append(slice, rv)
		} else if rv.Type().ConvertibleTo(elemType) {
			slice = reflect.Append(slice, rv.Convert(elemType))
		} else {
			return nil, fmt.Errorf("cannot convert %s to %s", rv.Type(), elemType)
		}
	}
	return slice.Interface(), nil
}

func (m *Marshaller) mapToGoMap(src *Map, targetType reflect.Type) (interface{}, error) {
	entries := src.Entries()

	// If target type is a concrete map type, convert to that
	if targetType != nil && targetType.Kind() == reflect.Map {
		result := reflect.MakeMapWithSize(targetType, len(entries))
		keyType := targetType.Key()
		valType := targetType.Elem()
		for _, entry := range entries {
			key, err := m.FromValue(entry.Key, keyType)
			if err != nil {
				return nil, fmt.Errorf("map key: %w", err)
			}
			val, err := m.FromValue(entry.Value, valType)
			if err != nil {
				return nil, fmt.Errorf("map value: %w", err)
			}
			kv := reflect.ValueOf(key)
			vv := reflect.ValueOf(val)
			if key == nil {
				kv = reflect.Zero(keyType)
			}
			if val == nil {
				vv = reflect.Zero(valType)
			}
			if kv.Type().ConvertibleTo(keyType) {
				kv = kv.Convert(keyType)
			}
			if vv.Type().ConvertibleTo(valType) {
				vv = vv.Convert(valType)
			}
			result.SetMapIndex(kv, vv)
		}
		return result.Interface(), nil
	}

	// Default: map[interface{}]interface{}
	result := make(map[interface{}]interface{}, len(entries))
	for _, entry := range entries {
		key, err := m.FromValue(entry.Key, nil)
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		val, err := m.FromValue(entry.Value, nil)
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		result[key] = val
	}
	return result, nil
}

func (m *Marshaller) instanceToMap(inst *Instance) (map[string]interface{}, error) {
	result := make(map[string]interface{})
	for _, name := range inst.AttrNames() {
		val, err := inst.GetAttr(name)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		goVal, err := m.FromValue(val, nil)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		result[name] = goVal
	}
	return result, nil
}

// instanceToStruct fills a struct's exported fields from instance
// attributes. A field matches the attribute with its exact name, falling
// back to the name with a lowercased first letter; unmatched fields keep
// their zero value.
func (m *Marshaller) instanceToStruct(inst *Instance, targetType reflect.Type) (interface{}, error) {
	out := reflect.New(targetType).Elem()
	for i := 0; i < targetType.NumField(); i++ {
		field := targetType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		val, err := inst.GetAttr(field.Name)
		if IsAttributeNotFound(err) {
			lowered := strings.ToLower(field.Name[:1]) + field.Name[1:]
			val, err = inst.GetAttr(lowered)
			if IsAttributeNotFound(err) {
				continue
			}
		}
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		goVal, err := m.FromValue(val, field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if goVal == nil {
			continue
		}
		rv := reflect.ValueOf(goVal)
		if rv.Type().AssignableTo(field.Type) {
			out.Field(i).Set(rv)
		} else if rv.Type().ConvertibleTo(field.Type) {
			out.Field(i).Set(rv.Convert(field.Type))
		} else {
			return nil, fmt.Errorf("field %s: cannot convert %s to %s", field.Name, rv.Type(), field.Type)
		}
	}
	return out.Interface(), nil
}
