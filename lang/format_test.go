package lang

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// TestFormat_Tagged verifies the canonical tagged rendering of each node
// kind.
func TestFormat_Tagged(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"null", "null", "null:null"},
		{"bool", "true", "true:boolean"},
		{"number", "42", "42:number"},
		{"fraction", "3.14", "3.14:number"},
		{"negative", "-5", "-5:number"},
		{"string", `"abc"`, `"abc":string`},
		{"string_escapes", `"a\"b"`, `"a\"b":string`},
		{"reference", "$id", "$id:reference"},
		{"action", "#update", "#update:action"},
		{"existence", "?", "?:existence"},
		{"member", "$entity.id", "($entity:reference.id):member"},
		{"annotation", "$a : $t", "($a:reference : $t:reference):annotation"},
		{"bind", "$a @ $b", "($a:reference @ $b:reference):bind"},
		{"product", "0 * $b", "(0:number * $b:reference):product"},
		{"morphism", "$a -> $b", "($a:reference -> $b:reference):morphism"},
		{"choice", "$a | $b", "($a:reference | $b:reference):choice"},
		{"equality", "1 = 2", "(1:number = 2:number):equality"},
		{"inequality", "1 != 2", "(1:number != 2:number):inequality"},
		{"empty_array", "[]", "[]:array"},
		{"array", "[1, 2]", "[1:number, 2:number]:array"},
		{"empty_object", "{}", "{}:object"},
		{"object", `{"id": 0}`, `{"id": 0:number}:object`},
		{"similarity", "[$a]", "[$a:reference]:similarity"},
		{"difference", "{$a}", "{$a:reference}:difference"},
		{
			name:  "similarity_of_equality",
			input: "[$id = $id]",
			want:  "[($id:reference = $id:reference):equality]:similarity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.input)

			if got := Format(node); got != tt.want {
				t.Errorf("Format(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// TestFormat_ResolvedComposite verifies the tagged rendering of a fully
// resolved composite.
func TestFormat_ResolvedComposite(t *testing.T) {
	b := NewBuilder()
	node := b.Product(b.Number(0), b.String(""))

	want := `(0:number * "":string):product`
	if got := Format(node); got != want {
		t.Errorf("Format = %s, want %s", got, want)
	}
}

// TestFormat_Deterministic verifies formatting is stable across calls
// and object field order is preserved.
func TestFormat_Deterministic(t *testing.T) {
	node := mustParse(t, `{"z": 1, "a": 2}`)

	first := Format(node)
	if second := Format(node); second != first {
		t.Errorf("Format unstable: %s then %s", first, second)
	}

	// Insertion order, not sorted order.
	want := `{"z": 1:number, "a": 2:number}:object`
	if first != want {
		t.Errorf("Format = %s, want %s", first, want)
	}
}

// TestToValue verifies the plain-data projection.
func TestToValue(t *testing.T) {
	node := mustParse(t, `{"n": 1, "list": [true, null], "ref": $id}`)

	val, ok := ToValue(node).(map[string]any)
	if !ok {
		t.Fatalf("ToValue = %T, want map", ToValue(node))
	}

	if val["n"] != 1.0 {
		t.Errorf("n = %v, want 1", val["n"])
	}

	list, ok := val["list"].([]any)
	if !ok || len(list) != 2 || list[0] != true || list[1] != nil {
		t.Errorf("list = %v, want [true, nil]", val["list"])
	}

	if val["ref"] != "$id" {
		t.Errorf("ref = %v, want $id", val["ref"])
	}
}

// TestFormatJSON verifies JSON output of the projection.
func TestFormatJSON(t *testing.T) {
	node := mustParse(t, `{"a": 1}`)

	var buf bytes.Buffer

	if err := FormatJSON(&buf, node, 0); err != nil {
		t.Fatalf("FormatJSON error: %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != `{"a":1}` {
		t.Errorf("FormatJSON = %s", got)
	}
}

// TestFormatYAML verifies YAML output of the projection.
func TestFormatYAML(t *testing.T) {
	node := mustParse(t, `{"a": [1, 2]}`)

	var buf bytes.Buffer

	err := FormatYAML(context.Background(), &buf, node, 2)
	if err != nil {
		t.Fatalf("FormatYAML error: %v", err)
	}

	if !strings.Contains(buf.String(), "a:") {
		t.Errorf("FormatYAML = %q, want key a", buf.String())
	}
}
