package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/sigil/lang"
)

// TestParseSource verifies parsing through the shared subcommand entry
// point, including declaration stripping.
func TestParseSource(t *testing.T) {
	node, err := parseSource("id = $int\n$id * $id", "-", "tagged")
	if err != nil {
		t.Fatalf("parseSource error: %v", err)
	}

	if node.Kind != lang.KindProduct {
		t.Errorf("node.Kind = %v, want product", node.Kind)
	}
}

// TestParseSource_EmptyExpression verifies declaration-only sources are
// rejected.
func TestParseSource_EmptyExpression(t *testing.T) {
	_, err := parseSource("id = $int\n", "-", "tagged")
	if !errors.Is(err, ErrEmptySource) {
		t.Fatalf("error = %v, want %v", err, ErrEmptySource)
	}
}

// TestParseSource_ParseFailure verifies parse errors surface as lang
// errors.
func TestParseSource_ParseFailure(t *testing.T) {
	_, err := parseSource("$entity..id", "-", "tagged")
	if !errors.Is(err, lang.ErrMemberIdent) {
		t.Fatalf("error = %v, want %v", err, lang.ErrMemberIdent)
	}
}

// TestWriteNode verifies each output format renders the same node.
func TestWriteNode(t *testing.T) {
	node, err := lang.ParseExpression(`{"a": 1}`)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format string
		want   string
	}{
		{"tagged", `{"a": 1:number}:object`},
		{"json", `"a"`},
		{"yaml", "a:"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer

			err := writeNode(context.Background(), &buf, node, tt.format, 0)
			if err != nil {
				t.Fatalf("writeNode(%s) error: %v", tt.format, err)
			}

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("writeNode(%s) = %q, want substring %q",
					tt.format, buf.String(), tt.want)
			}
		})
	}
}
