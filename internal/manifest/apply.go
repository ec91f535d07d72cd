package manifest

import (
	"fmt"

	"github.com/funvibe/funseal/internal/object"
)

// Impls maps declared methods to host implementations. Bound, class and
// static methods key as "Class.method". Accessors split into
// "Class.attr.get" and "Class.attr.set"; a missing setter makes the
// accessor read-only. A declared method without an implementation gets a
// stub that fails when invoked, so registration itself never blocks on an
// incomplete host.
type Impls map[string]object.Fn

// Apply registers everything the manifest declares: classes in dependency
// order, inherently immutable types, and adapter assignments. It returns
// the registered classes by name. m must come from Load or Parse; Apply
// relies on their validation, cycle checking included.
func Apply(m *Manifest, impls Impls) (map[string]*object.Class, error) {
	if err := checkImplKeys(m, impls); err != nil {
		return nil, err
	}

	classes := make(map[string]*object.Class, len(m.Classes))
	var build func(name string) (*object.Class, error)
	build = func(name string) (*object.Class, error) {
		if c, ok := classes[name]; ok {
			return c, nil
		}
		def, ok := m.Class(name)
		if !ok {
			return nil, fmt.Errorf("class %q not declared", name)
		}
		parents := make([]*object.Class, len(def.Parents))
		for i, parent := range def.Parents {
			p, err := build(parent)
			if err != nil {
				return nil, err
			}
			parents[i] = p
		}
		c, err := object.NewClass(def.Name, parents...)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", def.Name, err)
		}
		for _, meth := range def.Methods {
			key := def.Name + "." + meth.Name
			switch meth.Kind {
			case KindBound:
				c.DefineMethod(meth.Name, implOrStub(impls, key))
			case KindClass:
				c.DefineClassMethod(meth.Name, implOrStub(impls, key))
			case KindStatic:
				c.DefineStatic(meth.Name, implOrStub(impls, key))
			case KindAccessor:
				c.DefineAccessor(meth.Name, implOrStub(impls, key+".get"), impls[key+".set"])
			}
		}
		if def.Sealed {
			c.Seal()
		}
		classes[name] = c
		return c, nil
	}

	for _, def := range m.Classes {
		if _, err := build(def.Name); err != nil {
			return nil, err
		}
	}

	for _, name := range m.Immutable {
		object.RegisterImmutable(object.ObjectType(name))
	}
	for _, p := range m.Proxies {
		object.RegisterProxy(object.ObjectType(p.Type), adapterFactory(p.Adapter))
	}

	return classes, nil
}

// checkImplKeys rejects implementations that match no declared method,
// which is almost always a typo in the key.
func checkImplKeys(m *Manifest, impls Impls) error {
	valid := make(map[string]bool)
	for _, cls := range m.Classes {
		for _, meth := range cls.Methods {
			key := cls.Name + "." + meth.Name
			if meth.Kind == KindAccessor {
				valid[key+".get"] = true
				valid[key+".set"] = true
			} else {
				valid[key] = true
			}
		}
	}
	for key := range impls {
		if !valid[key] {
			return fmt.Errorf("implementation %q matches no declared method", key)
		}
	}
	return nil
}

func implOrStub(impls Impls, key string) object.Fn {
	if fn, ok := impls[key]; ok && fn != nil {
		return fn
	}
	return func(ctx *object.Context, args ...object.Object) (object.Object, error) {
		return nil, object.NewUsageError("no implementation bound for '%s'", key)
	}
}

func adapterFactory(adapter string) object.ProxyFactory {
	if adapter == AdapterMapping {
		return object.NewMappingProxyFactory()
	}
	return object.NewSequenceProxyFactory()
}
