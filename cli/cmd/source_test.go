package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestSplitSource_Declarations verifies declaration lines split away
// from the trailing expression.
func TestSplitSource_Declarations(t *testing.T) {
	source := `id = $int * $unique
entity = {"id": $id}

$entity.id`

	inline, expr := SplitSource(source)

	if expr != "$entity.id" {
		t.Errorf("expression = %q, want %q", expr, "$entity.id")
	}

	if inline.Len() != 2 {
		t.Fatalf("inline.Len = %d, want 2", inline.Len())
	}

	if text, _ := inline.Lookup("id"); text != "$int * $unique" {
		t.Errorf("Lookup(id) = %q", text)
	}

	if text, _ := inline.Lookup("entity"); text != `{"id": $id}` {
		t.Errorf("Lookup(entity) = %q", text)
	}
}

// TestSplitSource_ExpressionOnly verifies sources without declarations
// pass through whole.
func TestSplitSource_ExpressionOnly(t *testing.T) {
	inline, expr := SplitSource("$a * $b")

	if inline.Len() != 0 {
		t.Errorf("inline.Len = %d, want 0", inline.Len())
	}

	if expr != "$a * $b" {
		t.Errorf("expression = %q", expr)
	}
}

// TestSplitSource_EqualityIsNotDeclaration verifies expression lines
// containing '=' survive: a declaration requires a bare leading
// identifier, which is never a valid expression atom.
func TestSplitSource_EqualityIsNotDeclaration(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"sigil_lhs", "$a = $b"},
		{"inequality", "a != b"},
		{"bracketed", "[$id = $id]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inline, expr := SplitSource(tt.source)

			if inline.Len() != 0 {
				t.Errorf("inline.Len = %d, want 0", inline.Len())
			}

			if expr != tt.source {
				t.Errorf("expression = %q, want %q", expr, tt.source)
			}
		})
	}
}

// TestSplitSource_LaterDeclarationShadows verifies duplicate declared
// names resolve to the last occurrence.
func TestSplitSource_LaterDeclarationShadows(t *testing.T) {
	inline, _ := SplitSource("a = 1\na = 2\n$a")

	if text, _ := inline.Lookup("a"); text != "2" {
		t.Errorf("Lookup(a) = %q, want %q", text, "2")
	}
}

// TestParseTypes verifies command-line type declarations.
func TestParseTypes(t *testing.T) {
	reg, err := ParseTypes([]string{
		"id=$int * $unique",
		"flag = $bool",
	})
	if err != nil {
		t.Fatalf("ParseTypes error: %v", err)
	}

	if text, _ := reg.Lookup("id"); text != "$int * $unique" {
		t.Errorf("Lookup(id) = %q", text)
	}

	if text, _ := reg.Lookup("flag"); text != "$bool" {
		t.Errorf("Lookup(flag) = %q", text)
	}
}

// TestParseTypes_Malformed verifies declarations without a valid
// name=definition shape are rejected.
func TestParseTypes_Malformed(t *testing.T) {
	tests := []string{
		"noequals",
		"=nodef",
		"1bad=x",
		"name=",
	}

	for _, decl := range tests {
		t.Run(decl, func(t *testing.T) {
			_, err := ParseTypes([]string{decl})
			if !errors.Is(err, ErrTypeDecl) {
				t.Fatalf("ParseTypes(%q) error = %v, want %v",
					decl, err, ErrTypeDecl)
			}
		})
	}
}

// TestLoadSchema verifies YAML schema loading, including non-string
// scalars carried as definition text.
func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")

	doc := `id: $int * $unique
entity: '{"id": $id}'
zero: 0
disabled: false
nothing: null
`

	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	schema, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("LoadSchema error: %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"id", "$int * $unique"},
		{"entity", `{"id": $id}`},
		{"zero", "0"},
		{"disabled", "false"},
		{"nothing", "null"},
	}

	for _, tt := range tests {
		if text, ok := schema.Lookup(tt.key); !ok || text != tt.want {
			t.Errorf("Lookup(%s) = %q, want %q", tt.key, text, tt.want)
		}
	}
}

// TestLoadSchema_RejectsStructuredValues verifies nested YAML values are
// not valid definitions.
func TestLoadSchema_RejectsStructuredValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")

	doc := "bad:\n  nested: true\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSchema(path)
	if !errors.Is(err, ErrLoadSchema) {
		t.Fatalf("LoadSchema error = %v, want %v", err, ErrLoadSchema)
	}
}

// TestLoadSchemas_MissingFileSkipped verifies nonexistent paths are
// skipped rather than fatal.
func TestLoadSchemas_MissingFileSkipped(t *testing.T) {
	dir := t.TempDir()

	present := filepath.Join(dir, "present.yaml")
	if err := os.WriteFile(present, []byte("a: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	schema, err := LoadSchemas(context.Background(), []string{
		filepath.Join(dir, "absent.yaml"),
		present,
	})
	if err != nil {
		t.Fatalf("LoadSchemas error: %v", err)
	}

	if text, ok := schema.Lookup("a"); !ok || text != "1" {
		t.Errorf("Lookup(a) = %q, want %q", text, "1")
	}
}

// TestLoadSchemas_LaterFileShadows verifies merge order across files.
func TestLoadSchemas_LaterFileShadows(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")

	if err := os.WriteFile(first, []byte("a: 1\nb: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(second, []byte("b: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	schema, err := LoadSchemas(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("LoadSchemas error: %v", err)
	}

	if text, _ := schema.Lookup("a"); text != "1" {
		t.Errorf("Lookup(a) = %q, want %q", text, "1")
	}

	if text, _ := schema.Lookup("b"); text != "20" {
		t.Errorf("Lookup(b) = %q, want %q", text, "20")
	}
}

// TestStarterSchema_EntriesParse verifies every definition written by
// the init command is valid notation.
func TestStarterSchema_EntriesParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")

	if err := os.WriteFile(path, []byte(starterSchema), 0o600); err != nil {
		t.Fatal(err)
	}

	schema, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("LoadSchema error: %v", err)
	}

	if schema.Len() == 0 {
		t.Fatal("starter schema is empty")
	}
}
