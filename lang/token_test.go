package lang

import (
	"errors"
	"testing"
)

// kinds strips positions and payloads, leaving only the kind sequence
// including the terminal EOF.
func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}

	return out
}

// TestTokenize_Kinds verifies the token kind sequence for representative
// inputs.
func TestTokenize_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenKind
	}{
		{
			name:  "empty",
			input: "",
			want:  []TokenKind{TokenEOF},
		},
		{
			name:  "whitespace_only",
			input: " \t\n ",
			want:  []TokenKind{TokenEOF},
		},
		{
			name:  "reference",
			input: "$entity",
			want:  []TokenKind{TokenReference, TokenIdent, TokenEOF},
		},
		{
			name:  "action",
			input: "#update",
			want:  []TokenKind{TokenAction, TokenIdent, TokenEOF},
		},
		{
			name:  "existence",
			input: "?",
			want:  []TokenKind{TokenExistence, TokenEOF},
		},
		{
			name:  "keywords",
			input: "null true false",
			want:  []TokenKind{TokenNull, TokenTrue, TokenFalse, TokenEOF},
		},
		{
			name:  "keyword_prefix_is_ident",
			input: "nullable",
			want:  []TokenKind{TokenIdent, TokenEOF},
		},
		{
			name:  "product",
			input: "$a * $b",
			want: []TokenKind{
				TokenReference, TokenIdent, TokenStar,
				TokenReference, TokenIdent, TokenEOF,
			},
		},
		{
			name:  "arrow",
			input: "$a -> $b",
			want: []TokenKind{
				TokenReference, TokenIdent, TokenArrow,
				TokenReference, TokenIdent, TokenEOF,
			},
		},
		{
			name:  "not_equal",
			input: "1 != 2",
			want: []TokenKind{
				TokenNumber, TokenNotEqual, TokenNumber, TokenEOF,
			},
		},
		{
			name:  "member",
			input: "$entity.id",
			want: []TokenKind{
				TokenReference, TokenIdent, TokenDot, TokenIdent, TokenEOF,
			},
		},
		{
			name:  "brackets",
			input: "[1, 2]",
			want: []TokenKind{
				TokenLBracket, TokenNumber, TokenComma,
				TokenNumber, TokenRBracket, TokenEOF,
			},
		},
		{
			name:  "braces",
			input: `{"a": 1}`,
			want: []TokenKind{
				TokenLBrace, TokenString, TokenColon,
				TokenNumber, TokenRBrace, TokenEOF,
			},
		},
		{
			name:  "annotation_bind_choice",
			input: "$a : $b @ $c | $d",
			want: []TokenKind{
				TokenReference, TokenIdent, TokenColon,
				TokenReference, TokenIdent, TokenAt,
				TokenReference, TokenIdent, TokenPipe,
				TokenReference, TokenIdent, TokenEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}

			got := kinds(tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}

			for i, want := range tt.want {
				if got[i] != want {
					t.Errorf("token[%d] = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

// TestTokenize_Numbers verifies numeric literal scanning, including the
// negative sign and fractional disambiguation rules.
func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"zero", "0", 0},
		{"integer", "42", 42},
		{"fraction", "3.14", 3.14},
		{"negative", "-5", -5},
		{"negative_fraction", "-2.5", -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}

			if tokens[0].Kind != TokenNumber {
				t.Fatalf("token[0].Kind = %v, want number", tokens[0].Kind)
			}

			if tokens[0].Num != tt.want {
				t.Errorf("token[0].Num = %v, want %v", tokens[0].Num, tt.want)
			}
		})
	}
}

// TestTokenize_DotAfterNumber verifies that a '.' not followed by a
// digit stays a member-access token rather than joining the number.
func TestTokenize_DotAfterNumber(t *testing.T) {
	tokens, err := Tokenize("1.")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	want := []TokenKind{TokenNumber, TokenDot, TokenEOF}
	for i, k := range kinds(tokens) {
		if k != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, k, want[i])
		}
	}
}

// TestTokenize_Strings verifies string literal decoding and escapes.
func TestTokenize_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", `""`, ""},
		{"plain", `"abc"`, "abc"},
		{"escaped_quote", `"a\"b"`, `a"b`},
		{"escaped_backslash", `"a\\b"`, `a\b`},
		{"newline", `"a\nb"`, "a\nb"},
		{"tab", `"a\tb"`, "a\tb"},
		{"unicode", `"héllo"`, "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}

			if tokens[0].Kind != TokenString {
				t.Fatalf("token[0].Kind = %v, want string", tokens[0].Kind)
			}

			if tokens[0].Text != tt.want {
				t.Errorf("token[0].Text = %q, want %q", tokens[0].Text, tt.want)
			}
		})
	}
}

// TestTokenize_Errors verifies each lexical error case.
func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unterminated_string", `"abc`, ErrUnterminatedString},
		{"trailing_backslash", `"abc\`, ErrUnterminatedString},
		{"bad_escape", `"a\qb"`, ErrStringEscape},
		{"bare_minus", "$a - $b", ErrBareMinus},
		{"minus_space_digit", "- 5", ErrBareMinus},
		{"bare_bang", "1 ! 2", ErrUnexpectedChar},
		{"unknown_char", "&", ErrUnexpectedChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Tokenize(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

// TestTokenize_Positions verifies line and column tracking across
// newlines.
func TestTokenize_Positions(t *testing.T) {
	tokens, err := Tokenize("$a\n  $b")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	// $ a \n spaces $ b EOF
	sigil := tokens[2]
	if sigil.Kind != TokenReference {
		t.Fatalf("token[2].Kind = %v, want $", sigil.Kind)
	}

	if sigil.Pos.Line != 2 || sigil.Pos.Column != 3 {
		t.Errorf("token[2].Pos = %v, want line 2, column 3", sigil.Pos)
	}
}
