package lang

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies the lexical category of a token.
type TokenKind int

const (
	// TokenEOF terminates every token stream.
	TokenEOF TokenKind = iota

	// TokenNumber is a floating-point numeric literal.
	TokenNumber
	// TokenString is a double-quoted string literal.
	TokenString
	// TokenIdent is an identifier.
	TokenIdent
	// TokenTrue is the reserved word true.
	TokenTrue
	// TokenFalse is the reserved word false.
	TokenFalse
	// TokenNull is the reserved word null.
	TokenNull

	// TokenReference is the reference sigil '$'.
	TokenReference
	// TokenAction is the action sigil '#'.
	TokenAction
	// TokenExistence is the existence token '?'.
	TokenExistence

	// TokenDot is the member-access operator '.'.
	TokenDot
	// TokenColon is the type-annotation operator ':'.
	TokenColon
	// TokenAt is the bind operator '@'.
	TokenAt
	// TokenStar is the product operator '*'.
	TokenStar
	// TokenArrow is the morphism operator '->'.
	TokenArrow
	// TokenPipe is the choice operator '|'.
	TokenPipe
	// TokenEqual is the equality operator '='.
	TokenEqual
	// TokenNotEqual is the inequality operator '!='.
	TokenNotEqual

	// TokenLBracket and TokenRBracket delimit arrays and similarities.
	TokenLBracket
	TokenRBracket
	// TokenLBrace and TokenRBrace delimit objects and differences.
	TokenLBrace
	TokenRBrace
	// TokenComma separates array elements and object pairs.
	TokenComma
)

// String returns the display name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenIdent:
		return "identifier"
	case TokenTrue:
		return "true"
	case TokenFalse:
		return "false"
	case TokenNull:
		return "null"
	case TokenReference:
		return "$"
	case TokenAction:
		return "#"
	case TokenExistence:
		return "?"
	case TokenDot:
		return "."
	case TokenColon:
		return ":"
	case TokenAt:
		return "@"
	case TokenStar:
		return "*"
	case TokenArrow:
		return "->"
	case TokenPipe:
		return "|"
	case TokenEqual:
		return "="
	case TokenNotEqual:
		return "!="
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenComma:
		return ","
	default:
		return "unknown"
	}
}

// Position locates a token or node within its source text.
// Offset is a 0-based byte offset; Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String renders the position as "line L, column C".
func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

// Token is a single lexical unit. Tokens are immutable once created.
//
// Text holds the decoded payload for literal tokens: the unquoted string
// value for TokenString, the name for TokenIdent, and the numeric source
// text for TokenNumber (whose parsed value is in Num).
type Token struct {
	Kind TokenKind
	Text string
	Num  float64
	Pos  Position
}

// Tokenize converts source text into a token sequence terminated by a
// TokenEOF token. Whitespace is not significant anywhere.
//
// Disambiguation rules, in priority order: the two-character tokens "!="
// and "->" are recognized before their single-character prefixes; a '-'
// immediately followed by a digit begins a negative numeric literal; any
// other '-' is an error, since no standalone minus operator exists.
func Tokenize(text string) ([]Token, error) {
	s := &scanner{input: []byte(text), line: 1, col: 1}

	tokens := make([]Token, 0, 16)

	for {
		s.skipWhitespace()

		if s.eof() {
			tokens = append(tokens, Token{Kind: TokenEOF, Pos: s.position()})

			return tokens, nil
		}

		tok, err := s.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}
}

// scanner holds the tokenizer state.
type scanner struct {
	input []byte
	pos   int
	line  int
	col   int
}

// punct maps single-character punctuation to its token kind.
// '-' and '!' are absent: both require lookahead.
//
//nolint:gochecknoglobals
var punct = map[rune]TokenKind{
	'$': TokenReference,
	'#': TokenAction,
	'?': TokenExistence,
	'.': TokenDot,
	':': TokenColon,
	'@': TokenAt,
	'*': TokenStar,
	'|': TokenPipe,
	'=': TokenEqual,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
	',': TokenComma,
}

// next scans a single token. The scanner is positioned at a
// non-whitespace, non-EOF rune.
func (s *scanner) next() (Token, error) {
	pos := s.position()
	ch := s.peek()

	switch {
	case ch == '!':
		if s.peekAt(1) == '=' {
			s.advance()
			s.advance()

			return Token{Kind: TokenNotEqual, Pos: pos}, nil
		}

		return Token{}, ErrUnexpectedChar.WithPosition(pos).
			With(slog.String("char", "!"))

	case ch == '-':
		if s.peekAt(1) == '>' {
			s.advance()
			s.advance()

			return Token{Kind: TokenArrow, Pos: pos}, nil
		}

		if isDigit(s.peekAt(1)) {
			return s.scanNumber(pos)
		}

		return Token{}, ErrBareMinus.WithPosition(pos)

	case isDigit(ch):
		return s.scanNumber(pos)

	case ch == '"':
		return s.scanString(pos)

	case unicode.IsLetter(ch):
		return s.scanIdent(pos), nil
	}

	if kind, ok := punct[ch]; ok {
		s.advance()

		return Token{Kind: kind, Pos: pos}, nil
	}

	return Token{}, ErrUnexpectedChar.WithPosition(pos).
		With(slog.String("char", string(ch)))
}

// scanNumber scans a numeric literal: optional leading '-', one or more
// digits, and an optional fractional part. A '.' not followed by a digit
// is left for the parser as member access.
func (s *scanner) scanNumber(pos Position) (Token, error) {
	start := s.pos

	if s.peek() == '-' {
		s.advance()
	}

	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.advance()

		for isDigit(s.peek()) {
			s.advance()
		}
	}

	text := string(s.input[start:s.pos])

	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, ErrBadNumber.WithPosition(pos).Wrap(err).
			With(slog.String("text", text))
	}

	return Token{Kind: TokenNumber, Text: text, Num: num, Pos: pos}, nil
}

// scanString scans a double-quoted string literal with escapes for '"',
// '\', newline, and tab.
func (s *scanner) scanString(pos Position) (Token, error) {
	s.advance() // opening quote

	var sb strings.Builder

	for {
		if s.eof() {
			return Token{}, ErrUnterminatedString.WithPosition(pos)
		}

		ch := s.peek()

		switch ch {
		case '"':
			s.advance()

			return Token{Kind: TokenString, Text: sb.String(), Pos: pos}, nil

		case '\\':
			s.advance()

			if s.eof() {
				return Token{}, ErrUnterminatedString.WithPosition(pos)
			}

			esc := s.peek()
			switch esc {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return Token{}, ErrStringEscape.WithPosition(s.position()).
					With(slog.String("escape", `\`+string(esc)))
			}

			s.advance()

		default:
			sb.WriteRune(ch)
			s.advance()
		}
	}
}

// scanIdent scans an identifier or reserved word. Identifiers start with
// a letter and continue with letters, digits, or underscore.
func (s *scanner) scanIdent(pos Position) Token {
	start := s.pos

	s.advance()

	for !s.eof() {
		ch := s.peek()
		if !unicode.IsLetter(ch) && !isDigit(ch) && ch != '_' {
			break
		}

		s.advance()
	}

	text := string(s.input[start:s.pos])

	switch text {
	case "null":
		return Token{Kind: TokenNull, Pos: pos}
	case "true":
		return Token{Kind: TokenTrue, Pos: pos}
	case "false":
		return Token{Kind: TokenFalse, Pos: pos}
	}

	return Token{Kind: TokenIdent, Text: text, Pos: pos}
}

// Helper methods

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(s.input[s.pos:])

	return r
}

// peekAt returns the rune n runes past the current position, or 0 at EOF.
func (s *scanner) peekAt(n int) rune {
	pos := s.pos

	for ; n > 0 && pos < len(s.input); n-- {
		_, size := utf8.DecodeRune(s.input[pos:])
		pos += size
	}

	if pos >= len(s.input) {
		return 0
	}

	r, _ := utf8.DecodeRune(s.input[pos:])

	return r
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	r, size := utf8.DecodeRune(s.input[s.pos:])

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	}
}

func (s *scanner) skipWhitespace() {
	for !s.eof() && unicode.IsSpace(s.peek()) {
		s.advance()
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
