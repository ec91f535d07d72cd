package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_ValidFull(t *testing.T) {
	yaml := `
version: 1
module: shapes
classes:
  - name: Shape
    sealed: true
    methods:
      - name: init
      - name: area
        kind: accessor
      - name: family
        kind: class
  - name: Circle
    parents: [Shape]
    sealed: true
    methods:
      - name: init
immutable:
  - COLOR
proxies:
  - type: POINT_SET
    adapter: sequence
  - type: STYLE_TABLE
    adapter: mapping
`
	m, err := Parse([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Module != "shapes" {
		t.Errorf("module = %q, want shapes", m.Module)
	}
	if len(m.Classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(m.Classes))
	}
	circle, ok := m.Class("Circle")
	if !ok {
		t.Fatalf("Circle not found")
	}
	if len(circle.Parents) != 1 || circle.Parents[0] != "Shape" {
		t.Errorf("Circle parents = %v, want [Shape]", circle.Parents)
	}
	if !circle.Sealed {
		t.Errorf("Circle not sealed")
	}
	if len(m.Immutable) != 1 || m.Immutable[0] != "COLOR" {
		t.Errorf("immutable = %v, want [COLOR]", m.Immutable)
	}
	if len(m.Proxies) != 2 {
		t.Fatalf("expected 2 proxies, got %d", len(m.Proxies))
	}
	if m.Proxies[1].Adapter != AdapterMapping {
		t.Errorf("proxies[1].adapter = %q, want mapping", m.Proxies[1].Adapter)
	}
}

func TestParse_DefaultKind(t *testing.T) {
	yaml := `
version: 1
classes:
  - name: Thing
    methods:
      - name: act
`
	m, err := Parse([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind := m.Classes[0].Methods[0].Kind; kind != KindBound {
		t.Errorf("default kind = %q, want %q", kind, KindBound)
	}
}

func TestParse_ErrorVersion(t *testing.T) {
	yaml := `
classes:
  - name: Thing
`
	if _, err := Parse([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestParse_ErrorEmpty(t *testing.T) {
	if _, err := Parse([]byte("version: 1\n"), "test.yaml"); err == nil {
		t.Fatal("expected error for a manifest declaring nothing")
	}
}

func TestParse_ErrorDuplicateClass(t *testing.T) {
	yaml := `
version: 1
classes:
  - name: Thing
  - name: Thing
`
	if _, err := Parse([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected error for duplicate class")
	}
}

func TestParse_ErrorUnknownParent(t *testing.T) {
	yaml := `
version: 1
classes:
  - name: Circle
    parents: [Shape]
`
	if _, err := Parse([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected error for unknown parent")
	}
}

func TestParse_ErrorParentCycle(t *testing.T) {
	yaml := `
version: 1
classes:
  - name: A
    parents: [B]
  - name: B
    parents: [A]
`
	if _, err := Parse([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected error for parent cycle")
	}
}

func TestParse_ErrorSelfParent(t *testing.T) {
	yaml := `
version: 1
classes:
  - name: A
    parents: [A]
`
	if _, err := Parse([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected error for self parent")
	}
}

func TestParse_ErrorUnknownKind(t *testing.T) {
	yaml := `
version: 1
classes:
  - name: Thing
    methods:
      - name: act
        kind: wild
`
	if _, err := Parse([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected error for unknown method kind")
	}
}

func TestParse_ErrorDuplicateMethod(t *testing.T) {
	yaml := `
version: 1
classes:
  - name: Thing
    methods:
      - name: act
      - name: act
`
	if _, err := Parse([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected error for duplicate method")
	}
}

func TestParse_ErrorReservedImmutable(t *testing.T) {
	yaml := `
version: 1
immutable:
  - LIST
`
	if _, err := Parse([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected error for a container type in immutable")
	}
}

func TestParse_ErrorUnknownAdapter(t *testing.T) {
	yaml := `
version: 1
proxies:
  - type: POINT_SET
    adapter: frozen
`
	if _, err := Parse([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected error for unknown adapter")
	}
}

func TestParse_ErrorReservedProxyType(t *testing.T) {
	yaml := `
version: 1
proxies:
  - type: MAP
    adapter: mapping
`
	if _, err := Parse([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected error for re-adapting a builtin container type")
	}
}

func TestFind(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(tmpDir, "seal.yaml")
	content := `
version: 1
classes:
  - name: Thing
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Find(subDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != cfgPath {
		t.Errorf("found = %q, want %q", found, cfgPath)
	}

	otherDir := t.TempDir()
	found, err = Find(otherDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != "" {
		t.Errorf("expected empty, got %q", found)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "seal.yaml")
	content := `
version: 1
classes:
  - name: Thing
    sealed: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Classes) != 1 || !m.Classes[0].Sealed {
		t.Errorf("loaded manifest lost its class declaration")
	}

	if _, err := Load(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}
