package seal_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	seal "github.com/funvibe/funseal/pkg/seal"
)

func TestFromGoPrimitives(t *testing.T) {
	obj, err := seal.FromGo(nil)
	if err != nil {
		t.Fatalf("FromGo(nil) failed: %v", err)
	}
	if obj != seal.Object(seal.NIL) {
		t.Errorf("FromGo(nil) = %v, want NIL", obj)
	}

	obj, err = seal.FromGo(42)
	if err != nil {
		t.Fatalf("FromGo(42) failed: %v", err)
	}
	if got := obj.(*seal.Integer).Value; got != 42 {
		t.Errorf("FromGo(42) = %d, want 42", got)
	}

	obj, err = seal.FromGo(uint8(7))
	if err != nil {
		t.Fatalf("FromGo(uint8) failed: %v", err)
	}
	if got := obj.(*seal.Integer).Value; got != 7 {
		t.Errorf("FromGo(uint8(7)) = %d, want 7", got)
	}

	obj, err = seal.FromGo(2.5)
	if err != nil {
		t.Fatalf("FromGo(2.5) failed: %v", err)
	}
	if got := obj.(*seal.Float).Value; got != 2.5 {
		t.Errorf("FromGo(2.5) = %g, want 2.5", got)
	}

	obj, err = seal.FromGo(true)
	if err != nil {
		t.Fatalf("FromGo(true) failed: %v", err)
	}
	if obj != seal.Object(seal.TRUE) {
		t.Errorf("FromGo(true) should return the TRUE singleton, got %v", obj)
	}

	obj, err = seal.FromGo("hello")
	if err != nil {
		t.Fatalf("FromGo(string) failed: %v", err)
	}
	if got := obj.(*seal.String).Value; got != "hello" {
		t.Errorf("FromGo(string) = %q, want hello", got)
	}
}

func TestFromGoDedicatedTypes(t *testing.T) {
	id := uuid.New()
	obj, err := seal.FromGo(id)
	if err != nil {
		t.Fatalf("FromGo(uuid) failed: %v", err)
	}
	if got := obj.(*seal.Uuid).Value; got != id {
		t.Errorf("FromGo(uuid) = %s, want %s", got, id)
	}

	now := time.Now()
	obj, err = seal.FromGo(now)
	if err != nil {
		t.Fatalf("FromGo(time) failed: %v", err)
	}
	if got := obj.(*seal.Time).Value; !got.Equal(now) {
		t.Errorf("FromGo(time) = %v, want %v", got, now)
	}

	obj, err = seal.FromGo([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("FromGo([]byte) failed: %v", err)
	}
	b, ok := obj.(*seal.Bytes)
	if !ok {
		t.Fatalf("FromGo([]byte) = %T, want *Bytes", obj)
	}
	if b.Length() != 3 {
		t.Errorf("bytes length = %d, want 3", b.Length())
	}
}

func TestFromGoContainers(t *testing.T) {
	obj, err := seal.FromGo([]int{1, 2, 3})
	if err != nil {
		t.Fatalf("FromGo(slice) failed: %v", err)
	}
	list, ok := obj.(*seal.List)
	if !ok {
		t.Fatalf("FromGo(slice) = %T, want *List", obj)
	}
	if list.Length() != 3 {
		t.Fatalf("list length = %d, want 3", list.Length())
	}
	if got := list.Elements[2].(*seal.Integer).Value; got != 3 {
		t.Errorf("list[2] = %d, want 3", got)
	}

	obj, err = seal.FromGo(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("FromGo(map) failed: %v", err)
	}
	mp, ok := obj.(*seal.Map)
	if !ok {
		t.Fatalf("FromGo(map) = %T, want *Map", obj)
	}
	val, found := mp.Get(&seal.String{Value: "a"})
	if !found {
		t.Fatal("key a should be present")
	}
	if got := val.(*seal.Integer).Value; got != 1 {
		t.Errorf("map[a] = %d, want 1", got)
	}

	obj, err = seal.FromGo([][]string{{"x"}})
	if err != nil {
		t.Fatalf("FromGo(nested slice) failed: %v", err)
	}
	inner := obj.(*seal.List).Elements[0].(*seal.List)
	if got := inner.Elements[0].(*seal.String).Value; got != "x" {
		t.Errorf("nested element = %q, want x", got)
	}
}

func TestFromGoStruct(t *testing.T) {
	type score struct {
		Name   string
		Points int
		secret bool
	}

	obj, err := seal.FromGo(score{Name: "ada", Points: 9, secret: true})
	if err != nil {
		t.Fatalf("FromGo(struct) failed: %v", err)
	}
	mp, ok := obj.(*seal.Map)
	if !ok {
		t.Fatalf("FromGo(struct) = %T, want *Map", obj)
	}
	if mp.Len() != 2 {
		t.Fatalf("struct map has %d entries, want 2 (unexported skipped)", mp.Len())
	}

	// Exported fields keep declaration order.
	keys := mp.Keys()
	if keys[0].(*seal.String).Value != "Name" || keys[1].(*seal.String).Value != "Points" {
		t.Errorf("keys = %v, want [Name Points]", keys)
	}
	val, _ := mp.Get(&seal.String{Value: "Points"})
	if got := val.(*seal.Integer).Value; got != 9 {
		t.Errorf("Points = %d, want 9", got)
	}
}

func TestFromGoPointers(t *testing.T) {
	n := 5
	obj, err := seal.FromGo(&n)
	if err != nil {
		t.Fatalf("FromGo(*int) failed: %v", err)
	}
	if got := obj.(*seal.Integer).Value; got != 5 {
		t.Errorf("FromGo(*int) = %d, want 5", got)
	}

	var nilPtr *int
	obj, err = seal.FromGo(nilPtr)
	if err != nil {
		t.Fatalf("FromGo(nil *int) failed: %v", err)
	}
	if obj != seal.Object(seal.NIL) {
		t.Errorf("FromGo(nil *int) = %v, want NIL", obj)
	}
}

func TestFromGoPassThrough(t *testing.T) {
	list := seal.NewList(&seal.Integer{Value: 1})
	obj, err := seal.FromGo(list)
	if err != nil {
		t.Fatalf("FromGo(Object) failed: %v", err)
	}
	if obj != seal.Object(list) {
		t.Error("values already implementing Object should pass through")
	}
}

func TestFromGoUnsupported(t *testing.T) {
	if _, err := seal.FromGo(make(chan int)); err == nil {
		t.Fatal("expected error for chan")
	}
}

func TestToGoPrimitives(t *testing.T) {
	checks := []struct {
		obj  seal.Object
		want interface{}
	}{
		{&seal.Integer{Value: 7}, 7},
		{&seal.Float{Value: 1.5}, 1.5},
		{seal.TRUE, true},
		{&seal.String{Value: "s"}, "s"},
		{seal.NIL, nil},
	}
	for _, c := range checks {
		got, err := seal.ToGo(c.obj)
		if err != nil {
			t.Fatalf("ToGo(%s) failed: %v", c.obj.Inspect(), err)
		}
		if got != c.want {
			t.Errorf("ToGo(%s) = %v (%T), want %v", c.obj.Inspect(), got, got, c.want)
		}
	}

	id := uuid.New()
	got, err := seal.ToGo(&seal.Uuid{Value: id})
	if err != nil {
		t.Fatalf("ToGo(uuid) failed: %v", err)
	}
	if got != id {
		t.Errorf("ToGo(uuid) = %v, want %s", got, id)
	}
}

func TestToGoContainers(t *testing.T) {
	list := seal.NewList(&seal.Integer{Value: 1}, &seal.String{Value: "a"})
	got, err := seal.ToGo(list)
	if err != nil {
		t.Fatalf("ToGo(list) failed: %v", err)
	}
	slice, ok := got.([]interface{})
	if !ok {
		t.Fatalf("ToGo(list) = %T, want []interface{}", got)
	}
	if len(slice) != 2 || slice[0] != 1 || slice[1] != "a" {
		t.Errorf("slice = %v, want [1 a]", slice)
	}

	mp := seal.NewMap()
	mp.Set(&seal.String{Value: "k"}, &seal.Integer{Value: 3})
	got, err = seal.ToGo(mp)
	if err != nil {
		t.Fatalf("ToGo(map) failed: %v", err)
	}
	goMap, ok := got.(map[interface{}]interface{})
	if !ok {
		t.Fatalf("ToGo(map) = %T, want map[interface{}]interface{}", got)
	}
	if goMap["k"] != 3 {
		t.Errorf("map[k] = %v, want 3", goMap["k"])
	}

	tup := seal.NewTuple(&seal.Integer{Value: 4})
	got, err = seal.ToGo(tup)
	if err != nil {
		t.Fatalf("ToGo(tuple) failed: %v", err)
	}
	if slice := got.([]interface{}); slice[0] != 4 {
		t.Errorf("tuple slice = %v, want [4]", slice)
	}
}

func TestToGoUnwrapsProxies(t *testing.T) {
	list := seal.NewList(&seal.Integer{Value: 1})
	got, err := seal.ToGo(seal.DeepWrap(list))
	if err != nil {
		t.Fatalf("ToGo(proxied list) failed: %v", err)
	}
	slice, ok := got.([]interface{})
	if !ok {
		t.Fatalf("ToGo(proxied list) = %T, want []interface{}", got)
	}
	if len(slice) != 1 || slice[0] != 1 {
		t.Errorf("slice = %v, want [1]", slice)
	}
}

func TestToGoInstance(t *testing.T) {
	inst := newScoreInstance(t)

	got, err := seal.ToGo(inst)
	if err != nil {
		t.Fatalf("ToGo(instance) failed: %v", err)
	}
	attrs, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("ToGo(instance) = %T, want map[string]interface{}", got)
	}
	if attrs["name"] != "ada" || attrs["points"] != 9 {
		t.Errorf("attrs = %v, want name=ada points=9", attrs)
	}
}

func TestMarshallerTargetTypes(t *testing.T) {
	m := seal.NewMarshaller()

	got, err := m.FromValue(&seal.Integer{Value: 9}, reflect.TypeOf(int64(0)))
	if err != nil {
		t.Fatalf("FromValue(int64 target) failed: %v", err)
	}
	if v, ok := got.(int64); !ok || v != 9 {
		t.Errorf("FromValue = %v (%T), want int64 9", got, got)
	}

	list := seal.NewList(&seal.String{Value: "a"}, &seal.String{Value: "b"})
	got, err = m.FromValue(list, reflect.TypeOf([]string{}))
	if err != nil {
		t.Fatalf("FromValue([]string target) failed: %v", err)
	}
	strs, ok := got.([]string)
	if !ok {
		t.Fatalf("FromValue = %T, want []string", got)
	}
	if len(strs) != 2 || strs[1] != "b" {
		t.Errorf("strs = %v, want [a b]", strs)
	}

	mp := seal.NewMap()
	mp.Set(&seal.String{Value: "n"}, &seal.Integer{Value: 2})
	got, err = m.FromValue(mp, reflect.TypeOf(map[string]int{}))
	if err != nil {
		t.Fatalf("FromValue(map[string]int target) failed: %v", err)
	}
	typed, ok := got.(map[string]int)
	if !ok {
		t.Fatalf("FromValue = %T, want map[string]int", got)
	}
	if typed["n"] != 2 {
		t.Errorf("typed[n] = %d, want 2", typed["n"])
	}
}

func TestInstanceToStruct(t *testing.T) {
	type score struct {
		Name   string
		Points int
	}

	inst := newScoreInstance(t)
	got, err := seal.NewMarshaller().FromValue(inst, reflect.TypeOf(score{}))
	if err != nil {
		t.Fatalf("FromValue(struct target) failed: %v", err)
	}
	s, ok := got.(score)
	if !ok {
		t.Fatalf("FromValue = %T, want score", got)
	}
	if s.Name != "ada" || s.Points != 9 {
		t.Errorf("score = %+v, want {ada 9}", s)
	}
}

func TestRoundTrip(t *testing.T) {
	in := map[string]interface{}{"xs": []interface{}{1, 2}}
	obj, err := seal.FromGo(in)
	if err != nil {
		t.Fatalf("FromGo failed: %v", err)
	}
	out, err := seal.ToGo(seal.DeepWrap(obj))
	if err != nil {
		t.Fatalf("ToGo failed: %v", err)
	}
	goMap := out.(map[interface{}]interface{})
	xs, ok := goMap["xs"].([]interface{})
	if !ok {
		t.Fatalf("xs = %T, want []interface{}", goMap["xs"])
	}
	if len(xs) != 2 || xs[0] != 1 || xs[1] != 2 {
		t.Errorf("xs = %v, want [1 2]", xs)
	}
}

// newScoreInstance builds an unsealed instance with name and points
// attributes for the conversion tests.
func newScoreInstance(t *testing.T) *seal.Instance {
	t.Helper()
	cls := seal.MustNewClass("Score")
	cls.DefineMethod("init", func(ctx *seal.Context, args ...seal.Object) (seal.Object, error) {
		if err := seal.SetAttr(ctx.Receiver, "name", args[0]); err != nil {
			return nil, err
		}
		if err := seal.SetAttr(ctx.Receiver, "points", args[1]); err != nil {
			return nil, err
		}
		return seal.NIL, nil
	})
	inst, err := seal.Construct(cls, &seal.String{Value: "ada"}, &seal.Integer{Value: 9})
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	return inst
}
