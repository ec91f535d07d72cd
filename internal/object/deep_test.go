package object

import (
	"strings"
	"testing"
)

func newNodeClass(t *testing.T) *Class {
	t.Helper()
	node := MustNewClass("Node")
	node.DefineMethod(InitMethod, func(ctx *Context, args ...Object) (Object, error) {
		if err := SetAttr(ctx.Receiver, "name", args[0]); err != nil {
			return nil, err
		}
		return NIL, SetAttr(ctx.Receiver, "children", args[1])
	})
	node.DefineMethod("kids", func(ctx *Context, args ...Object) (Object, error) {
		return GetAttr(ctx.Receiver, "children")
	})
	return node
}

func newTree(t *testing.T) (root, child *Instance, children *List) {
	t.Helper()
	node := newNodeClass(t)
	child, err := node.Construct(&String{Value: "child"}, NewList())
	if err != nil {
		t.Fatalf("Construct(child) failed: %v", err)
	}
	children = NewList(child)
	root, err = node.Construct(&String{Value: "root"}, children)
	if err != nil {
		t.Fatalf("Construct(root) failed: %v", err)
	}
	return root, child, children
}

func TestDeepWrapRecursesThroughAttributes(t *testing.T) {
	root, child, _ := newTree(t)
	d := DeepWrap(root)

	kids, err := GetAttr(d, "children")
	if err != nil {
		t.Fatalf("GetAttr(children) failed: %v", err)
	}
	lp, ok := kids.(*ListProxy)
	if !ok {
		t.Fatalf("children through deep proxy = %T, want *ListProxy", kids)
	}

	first, err := lp.Index(&Integer{Value: 0})
	if err != nil {
		t.Fatalf("Index(0) failed: %v", err)
	}
	dp, ok := first.(*DeepProxy)
	if !ok {
		t.Fatalf("nested element = %T, want *DeepProxy", first)
	}
	if Unwrap(dp) != child {
		t.Errorf("nested proxy does not target the child instance")
	}

	name, err := GetAttr(dp, "name")
	if err != nil {
		t.Fatalf("GetAttr(name) on nested proxy failed: %v", err)
	}
	if name.(*String).Value != "child" {
		t.Errorf("nested name = %s, want child", name.Inspect())
	}

	err = SetAttr(dp, "name", &String{Value: "renamed"})
	if !IsImmutabilityViolation(err) {
		t.Fatalf("nested write: got %v, want ImmutabilityViolation", err)
	}
	if !strings.Contains(err.Error(), "'DeepProxy[Node]'") {
		t.Errorf("nested violation names %q", err.Error())
	}
}

func TestDeepWrapIsTransitiveThroughMethods(t *testing.T) {
	root, _, children := newTree(t)

	t.Run("deep receiver wraps method reads", func(t *testing.T) {
		d := DeepWrap(root)
		m, err := GetAttr(d, "kids")
		if err != nil {
			t.Fatalf("GetAttr(kids) failed: %v", err)
		}
		res, err := Call(m)
		if err != nil {
			t.Fatalf("kids() failed: %v", err)
		}
		if _, ok := res.(*ListProxy); !ok {
			t.Fatalf("kids() through deep proxy = %T, want *ListProxy", res)
		}
		if Unwrap(res) != Object(children) {
			t.Errorf("kids() proxy does not target the stored list")
		}
	})

	t.Run("shallow receiver leaks the raw list", func(t *testing.T) {
		p := Wrap(root)
		m, err := GetAttr(p, "kids")
		if err != nil {
			t.Fatalf("GetAttr(kids) failed: %v", err)
		}
		res, err := Call(m)
		if err != nil {
			t.Fatalf("kids() failed: %v", err)
		}
		if res != Object(children) {
			t.Errorf("kids() through shallow proxy = %T, want the raw list", res)
		}
	})
}

func TestDeepWrapReplacesShallowProxy(t *testing.T) {
	root, _, _ := newTree(t)
	p := Wrap(root)
	d := DeepWrap(p)

	if d == p {
		t.Fatalf("deep wrap kept the shallow proxy")
	}
	if d.Type() != DEEP_PROXY_OBJ {
		t.Errorf("promoted type = %s, want %s", d.Type(), DEEP_PROXY_OBJ)
	}
	if Unwrap(d) != root {
		t.Errorf("promoted proxy targets %T, want the raw instance", Unwrap(d))
	}

	if back := Wrap(d); back != d {
		t.Errorf("shallow wrap downgraded a deep proxy")
	}
}

func TestContainersWrapToAdaptersEitherDepth(t *testing.T) {
	list := NewList(&Integer{Value: 1})
	if _, ok := Wrap(list).(*ListProxy); !ok {
		t.Errorf("Wrap(List) = %T, want *ListProxy", Wrap(list))
	}
	if _, ok := DeepWrap(list).(*ListProxy); !ok {
		t.Errorf("DeepWrap(List) = %T, want *ListProxy", DeepWrap(list))
	}

	m := NewMap()
	m.Set(&String{Value: "k"}, &Integer{Value: 1})
	if _, ok := Wrap(m).(*MapProxy); !ok {
		t.Errorf("Wrap(Map) = %T, want *MapProxy", Wrap(m))
	}

	tup := NewTuple(&Integer{Value: 1})
	if _, ok := Wrap(tup).(*TupleProxy); !ok {
		t.Errorf("Wrap(Tuple) = %T, want *TupleProxy", Wrap(tup))
	}
}

func TestCopyExitsProxies(t *testing.T) {
	root, _, children := newTree(t)

	t.Run("shallow copy shares contents", func(t *testing.T) {
		cp := Copy(Wrap(root))
		inst, ok := cp.(*Instance)
		if !ok {
			t.Fatalf("Copy(proxy) = %T, want *Instance", cp)
		}
		if inst == root {
			t.Fatalf("Copy returned the original")
		}
		got, err := inst.GetAttr("children")
		if err != nil {
			t.Fatalf("GetAttr(children) failed: %v", err)
		}
		if got != Object(children) {
			t.Errorf("shallow copy does not share the children list")
		}
	})

	t.Run("deep copy shares nothing mutable", func(t *testing.T) {
		cp := DeepCopy(DeepWrap(root))
		inst, ok := cp.(*Instance)
		if !ok {
			t.Fatalf("DeepCopy(proxy) = %T, want *Instance", cp)
		}
		got, err := inst.GetAttr("children")
		if err != nil {
			t.Fatalf("GetAttr(children) failed: %v", err)
		}
		if got == Object(children) {
			t.Fatalf("deep copy shares the children list")
		}
		if !ObjectsEqual(got, children) {
			t.Errorf("deep copy diverges from the original in value")
		}
		got.(*List).Append(&String{Value: "extra"})
		if children.Length() != 1 {
			t.Errorf("mutating the deep copy leaked into the original")
		}
	})
}

func TestCopyCarriesFreezeFlag(t *testing.T) {
	point := newPointClass(t)
	inst, err := point.Construct(&Integer{Value: 1}, &Integer{Value: 2})
	if err != nil {
		t.Fatalf("Construct failed: %v", err)
	}
	cp := Copy(inst).(*Instance)
	if !cp.Frozen() {
		t.Errorf("copy of a frozen instance is not frozen")
	}
	if err := cp.SetAttr("x", &Integer{Value: 9}); !IsImmutabilityViolation(err) {
		t.Errorf("write on frozen copy: got %v, want ImmutabilityViolation", err)
	}
}

func TestDeepCopyHandlesCycles(t *testing.T) {
	l := NewList()
	l.Append(l)
	cp := DeepCopy(l).(*List)
	if cp == l {
		t.Fatalf("DeepCopy returned the original")
	}
	if cp.Elements[0] != Object(cp) {
		t.Errorf("cycle not preserved: element is %T", cp.Elements[0])
	}
}

func TestCopyLeavesImmutablesAlone(t *testing.T) {
	n := &Integer{Value: 3}
	if Copy(n) != Object(n) {
		t.Errorf("Copy(Integer) made a new object")
	}
	tup := NewTuple(&Integer{Value: 1})
	if Copy(tup) != Object(tup) {
		t.Errorf("Copy(Tuple) made a new object; the sequence itself cannot change")
	}
}
