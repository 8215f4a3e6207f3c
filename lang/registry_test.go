package lang

import (
	"slices"
	"testing"
)

// TestRegistry_ZeroValue verifies the zero registry is usable.
func TestRegistry_ZeroValue(t *testing.T) {
	var r Registry

	if r.Len() != 0 {
		t.Errorf("zero registry Len = %d, want 0", r.Len())
	}

	if _, ok := r.Lookup("anything"); ok {
		t.Error("zero registry Lookup succeeded, want miss")
	}

	if names := r.Names(); len(names) != 0 {
		t.Errorf("zero registry Names = %v, want empty", names)
	}
}

// TestRegistry_CloneOnConstruct verifies the input map is not aliased.
func TestRegistry_CloneOnConstruct(t *testing.T) {
	entries := map[string]string{"a": "1"}
	r := NewRegistry(entries)

	entries["a"] = "mutated"
	entries["b"] = "2"

	if text, _ := r.Lookup("a"); text != "1" {
		t.Errorf("Lookup(a) = %q, want %q", text, "1")
	}

	if _, ok := r.Lookup("b"); ok {
		t.Error("Lookup(b) succeeded after external mutation")
	}
}

// TestRegistry_MergeRightWins verifies overlay entries shadow base
// entries while unrelated keys survive.
func TestRegistry_MergeRightWins(t *testing.T) {
	base := NewRegistry(map[string]string{"a": "1", "b": "2"})
	overlay := NewRegistry(map[string]string{"b": "20", "c": "30"})

	merged := base.Merge(overlay)

	tests := []struct {
		key  string
		want string
	}{
		{"a", "1"},
		{"b", "20"},
		{"c", "30"},
	}

	for _, tt := range tests {
		if text, ok := merged.Lookup(tt.key); !ok || text != tt.want {
			t.Errorf("Lookup(%s) = %q, want %q", tt.key, text, tt.want)
		}
	}

	// Neither input may change.
	if text, _ := base.Lookup("b"); text != "2" {
		t.Errorf("base mutated: Lookup(b) = %q, want %q", text, "2")
	}

	if _, ok := overlay.Lookup("a"); ok {
		t.Error("overlay mutated: gained key a")
	}
}

// TestRegistry_MergeEmpty verifies merges with empty registries
// short-circuit without copying.
func TestRegistry_MergeEmpty(t *testing.T) {
	r := NewRegistry(map[string]string{"a": "1"})

	if got := r.Merge(Registry{}); got.Len() != 1 {
		t.Errorf("Merge(empty).Len = %d, want 1", got.Len())
	}

	if got := (Registry{}).Merge(r); got.Len() != 1 {
		t.Errorf("empty.Merge(r).Len = %d, want 1", got.Len())
	}
}

// TestRegistry_BuildOrder verifies the four-source precedence: user over
// inline over schema over builtins.
func TestRegistry_BuildOrder(t *testing.T) {
	schema := NewRegistry(map[string]string{
		"int":    "1",
		"schema": "2",
		"inline": "0",
		"user":   "0",
	})
	inline := NewRegistry(map[string]string{
		"inline": "3",
		"user":   "0",
	})
	user := NewRegistry(map[string]string{"user": "4"})

	merged := Build(Builtins(), schema, inline, user)

	tests := []struct {
		key  string
		want string
	}{
		{"int", "1"},    // schema shadows builtin
		{"schema", "2"}, // schema only
		{"inline", "3"}, // inline shadows schema
		{"user", "4"},   // user shadows everything
		{"bool", "false"},
	}

	for _, tt := range tests {
		if text, ok := merged.Lookup(tt.key); !ok || text != tt.want {
			t.Errorf("Lookup(%s) = %q, want %q", tt.key, text, tt.want)
		}
	}
}

// TestRegistry_NamesSorted verifies Names returns sorted output.
func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry(map[string]string{"c": "", "a": "", "b": ""})

	names := r.Names()
	if !slices.IsSorted(names) {
		t.Errorf("Names = %v, want sorted", names)
	}

	if len(names) != 3 {
		t.Errorf("len(Names) = %d, want 3", len(names))
	}
}

// TestBuiltins_DefinitionsParse verifies every built-in definition is
// parseable notation.
func TestBuiltins_DefinitionsParse(t *testing.T) {
	builtins := Builtins()

	for _, name := range builtins.Names() {
		text, _ := builtins.Lookup(name)

		if _, err := ParseExpression(text); err != nil {
			t.Errorf("builtin %s = %q does not parse: %v", name, text, err)
		}
	}
}
