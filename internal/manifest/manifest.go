// Package manifest implements the YAML manifest for embedding hosts.
//
// A manifest declares the class hierarchy a host program registers at
// startup: class names, parents, sealing, and the method table with each
// method's kind. It also lists host types registered inherently immutable
// and host container types that take a capability adapter.
//
// The package handles:
//   - Parsing and validating seal.yaml manifests
//   - Locating the manifest by walking up from a directory
//   - Applying a manifest against host-provided implementations,
//     producing registered classes
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Adapter families a manifest may assign to a host type.
const (
	AdapterSequence = "sequence"
	AdapterMapping  = "mapping"
)

// Method kinds a manifest may declare. An empty kind defaults to bound.
const (
	KindBound    = "bound"
	KindClass    = "class"
	KindStatic   = "static"
	KindAccessor = "accessor"
)

// reservedTypes are the runtime container types that already carry a
// builtin adapter. A manifest can neither re-adapt them nor register them
// inherently immutable.
var reservedTypes = map[string]bool{
	"LIST":    true,
	"MAP":     true,
	"TUPLE":   true,
	"MESSAGE": true,
}

// Manifest represents the top-level seal.yaml configuration.
type Manifest struct {
	// Version is the manifest schema version. Must be 1.
	Version int `yaml:"version"`

	// Module names the host module, used only in diagnostics.
	Module string `yaml:"module,omitempty"`

	// Classes lists the class hierarchy to register, in any order.
	Classes []ClassDef `yaml:"classes,omitempty"`

	// Immutable lists runtime type names to register inherently
	// immutable: wrapping a value of such a type returns the value.
	Immutable []string `yaml:"immutable,omitempty"`

	// Proxies assigns capability adapters to host container types.
	Proxies []ProxyDef `yaml:"proxies,omitempty"`
}

// ClassDef declares one class.
type ClassDef struct {
	// Name is the class name. Required, unique within the manifest.
	Name string `yaml:"name"`

	// Parents lists parent class names. Every parent must be declared
	// in the same manifest. Order is significant: it drives the
	// ancestor linearization.
	Parents []string `yaml:"parents,omitempty"`

	// Sealed opts instances into freeze-after-construction.
	Sealed bool `yaml:"sealed,omitempty"`

	// Methods lists the class's own method table.
	Methods []MethodDef `yaml:"methods,omitempty"`
}

// MethodDef declares one method table entry.
type MethodDef struct {
	// Name is the method name. Required, unique within the class.
	Name string `yaml:"name"`

	// Kind is bound (default), class, static, or accessor.
	Kind string `yaml:"kind,omitempty"`
}

// ProxyDef assigns an adapter family to a host runtime type.
type ProxyDef struct {
	// Type is the runtime type name (the value's ObjectType).
	Type string `yaml:"type"`

	// Adapter is the family: sequence or mapping.
	Adapter string `yaml:"adapter"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses manifest content from bytes. The path argument is used
// only for error messages.
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := m.validate(path); err != nil {
		return nil, err
	}
	m.setDefaults()
	return &m, nil
}

// Find searches for seal.yaml starting from dir and walking up to parent
// directories. Returns the path if found, or an empty string and nil
// error if not found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "seal.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, "seal.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks the manifest for semantic errors.
func (m *Manifest) validate(path string) error {
	if m.Version != 1 {
		return fmt.Errorf("%s: unsupported manifest version %d (expected 1)", path, m.Version)
	}
	if len(m.Classes) == 0 && len(m.Immutable) == 0 && len(m.Proxies) == 0 {
		return fmt.Errorf("%s: manifest declares nothing", path)
	}

	declared := make(map[string]int)
	for i, cls := range m.Classes {
		if cls.Name == "" {
			return fmt.Errorf("%s: classes[%d]: name is required", path, i)
		}
		if prev, ok := declared[cls.Name]; ok {
			return fmt.Errorf("%s: classes[%d]: class %q already declared at classes[%d]", path, i, cls.Name, prev)
		}
		declared[cls.Name] = i

		seenMethods := make(map[string]bool)
		for j, meth := range cls.Methods {
			if meth.Name == "" {
				return fmt.Errorf("%s: classes[%d].methods[%d] (%s): name is required", path, i, j, cls.Name)
			}
			if seenMethods[meth.Name] {
				return fmt.Errorf("%s: classes[%d].methods[%d] (%s): method %q already declared", path, i, j, cls.Name, meth.Name)
			}
			seenMethods[meth.Name] = true
			switch meth.Kind {
			case "", KindBound, KindClass, KindStatic, KindAccessor:
			default:
				return fmt.Errorf("%s: classes[%d].methods[%d] (%s.%s): unknown kind %q",
					path, i, j, cls.Name, meth.Name, meth.Kind)
			}
		}
	}

	for i, cls := range m.Classes {
		for _, parent := range cls.Parents {
			if _, ok := declared[parent]; !ok {
				return fmt.Errorf("%s: classes[%d] (%s): unknown parent %q", path, i, cls.Name, parent)
			}
		}
	}
	if err := m.checkCycles(path, declared); err != nil {
		return err
	}

	seenImmutable := make(map[string]bool)
	for i, name := range m.Immutable {
		if name == "" {
			return fmt.Errorf("%s: immutable[%d]: type name is required", path, i)
		}
		if seenImmutable[name] {
			return fmt.Errorf("%s: immutable[%d]: type %q already listed", path, i, name)
		}
		seenImmutable[name] = true
		if reservedTypes[name] {
			return fmt.Errorf("%s: immutable[%d]: container type %q takes an adapter and cannot be registered immutable", path, i, name)
		}
	}

	seenProxies := make(map[string]bool)
	for i, p := range m.Proxies {
		if p.Type == "" {
			return fmt.Errorf("%s: proxies[%d]: type is required", path, i)
		}
		if seenProxies[p.Type] {
			return fmt.Errorf("%s: proxies[%d]: type %q already assigned an adapter", path, i, p.Type)
		}
		seenProxies[p.Type] = true
		if reservedTypes[p.Type] {
			return fmt.Errorf("%s: proxies[%d]: type %q already has a builtin adapter", path, i, p.Type)
		}
		switch p.Adapter {
		case AdapterSequence, AdapterMapping:
		default:
			return fmt.Errorf("%s: proxies[%d] (%s): unknown adapter %q (expected %s or %s)",
				path, i, p.Type, p.Adapter, AdapterSequence, AdapterMapping)
		}
	}

	return nil
}

// checkCycles rejects parent cycles. The object layer cannot form one
// because parents must exist before their children; a manifest names
// classes by string and can.
func (m *Manifest) checkCycles(path string, declared map[string]int) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(m.Classes))

	var visit func(name string, trail []string) error
	visit = func(name string, trail []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%s: classes[%d] (%s): parent cycle: %s",
				path, declared[name], name, cycleString(trail, name))
		}
		state[name] = visiting
		for _, parent := range m.Classes[declared[name]].Parents {
			if err := visit(parent, append(trail, name)); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	for _, cls := range m.Classes {
		if err := visit(cls.Name, nil); err != nil {
			return err
		}
	}
	return nil
}

func cycleString(trail []string, repeat string) string {
	out := ""
	start := 0
	for i, name := range trail {
		if name == repeat {
			start = i
			break
		}
	}
	for _, name := range trail[start:] {
		out += name + " -> "
	}
	return out + repeat
}

// setDefaults normalizes the manifest after validation.
func (m *Manifest) setDefaults() {
	for i := range m.Classes {
		for j := range m.Classes[i].Methods {
			if m.Classes[i].Methods[j].Kind == "" {
				m.Classes[i].Methods[j].Kind = KindBound
			}
		}
	}
}

// Class returns the declaration of name, if any.
func (m *Manifest) Class(name string) (*ClassDef, bool) {
	for i := range m.Classes {
		if m.Classes[i].Name == name {
			return &m.Classes[i], true
		}
	}
	return nil, false
}
