package lang

import (
	"io"
	"log/slog"

	"github.com/klauspost/readahead"
)

// ParseReader parses an expression from an io.Reader.
func ParseReader(r io.Reader) (*Node, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseExpression(string(data))
}

// ParseExpression tokenizes and parses source text into an expression
// tree. The entire input must form a single expression.
func ParseExpression(text string) (*Node, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}

	return Parse(tokens)
}

// Parse consumes a token sequence and returns the expression tree.
// Every token except the terminal TokenEOF must be consumed; leftover
// tokens are a parse error.
func Parse(tokens []Token) (*Node, error) {
	p := &parser{tokens: tokens}

	node, err := p.parseExpr(minPrecedence)
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, ErrTrailingTokens.WithPosition(tok.Pos).
			With(slog.String("token", tok.Kind.String()))
	}

	return node, nil
}

// Operator precedence, highest to lowest. All operators are
// left-associative.
const (
	precMember     = 8 // .
	precAnnotation = 7 // :
	precBind       = 6 // @
	precProduct    = 5 // *
	precMorphism   = 4 // ->
	precChoice     = 3 // |
	precEquality   = 2 // = and !=

	minPrecedence = 1
)

// precedence returns the binding power of an infix token, or 0 for
// tokens that are not infix operators.
func precedence(k TokenKind) int {
	switch k {
	case TokenDot:
		return precMember
	case TokenColon:
		return precAnnotation
	case TokenAt:
		return precBind
	case TokenStar:
		return precProduct
	case TokenArrow:
		return precMorphism
	case TokenPipe:
		return precChoice
	case TokenEqual, TokenNotEqual:
		return precEquality
	default:
		return 0
	}
}

// binaryKind maps an infix token to the node kind it produces.
func binaryKind(k TokenKind) Kind {
	switch k {
	case TokenColon:
		return KindAnnotation
	case TokenAt:
		return KindBind
	case TokenStar:
		return KindProduct
	case TokenArrow:
		return KindMorphism
	case TokenPipe:
		return KindChoice
	case TokenEqual:
		return KindEquality
	default: // TokenNotEqual
		return KindInequality
	}
}

// parser holds the parser state. Parse functions return values and
// errors; no partial state survives a failure.
type parser struct {
	tokens []Token
	pos    int
}

// parseExpr implements precedence climbing: parse an atom, then fold in
// operators of at least the given precedence, recursing at one level
// higher so equal-precedence operators associate left.
func (p *parser) parseExpr(min int) (*Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()

		prec := precedence(op.Kind)
		if prec < min || prec == 0 {
			return left, nil
		}

		p.advance()

		if op.Kind == TokenDot {
			// The right-hand side of '.' must be a bare identifier, never
			// an arbitrary subexpression.
			field := p.peek()
			if field.Kind != TokenIdent {
				return nil, ErrMemberIdent.WithPosition(field.Pos).
					With(slog.String("got", field.Kind.String()))
			}

			p.advance()

			left = &Node{
				Kind: KindMember,
				Left: left,
				Str:  field.Text,
				Pos:  op.Pos,
			}

			continue
		}

		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}

		left = &Node{
			Kind:  binaryKind(op.Kind),
			Left:  left,
			Right: right,
			Pos:   op.Pos,
		}
	}
}

// parseAtom parses a literal, atom, or bracketed form.
func (p *parser) parseAtom() (*Node, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenNull:
		p.advance()

		return &Node{Kind: KindNull, Pos: tok.Pos}, nil

	case TokenTrue, TokenFalse:
		p.advance()

		return &Node{
			Kind: KindBool,
			Bool: tok.Kind == TokenTrue,
			Pos:  tok.Pos,
		}, nil

	case TokenNumber:
		p.advance()

		return &Node{Kind: KindNumber, Num: tok.Num, Pos: tok.Pos}, nil

	case TokenString:
		p.advance()

		return &Node{Kind: KindString, Str: tok.Text, Pos: tok.Pos}, nil

	case TokenReference, TokenAction:
		return p.parseName(tok)

	case TokenExistence:
		p.advance()

		return &Node{Kind: KindExistence, Pos: tok.Pos}, nil

	case TokenLBracket:
		return p.parseBracket()

	case TokenLBrace:
		return p.parseBrace()

	default:
		return nil, ErrParse.WithPosition(tok.Pos).
			With(
				slog.String("got", tok.Kind.String()),
				slog.String("expected", "expression"),
			)
	}
}

// parseName parses a reference or action: a sigil token followed by a
// name identifying a registry entry.
func (p *parser) parseName(sigil Token) (*Node, error) {
	p.advance()

	name := p.peek()

	text, ok := nameText(name)
	if !ok {
		return nil, ErrParse.WithPosition(name.Pos).
			With(
				slog.String("got", name.Kind.String()),
				slog.String("expected", "identifier after "+sigil.Kind.String()),
			)
	}

	p.advance()

	kind := KindReference
	if sigil.Kind == TokenAction {
		kind = KindAction
	}

	return &Node{Kind: kind, Str: text, Pos: sigil.Pos}, nil
}

// nameText returns the registry name a token spells, if any. Reserved
// words are only literals in expression position; after a sigil they
// name entries like any identifier, so "$null" reaches the built-in
// null definition.
func nameText(tok Token) (string, bool) {
	switch tok.Kind {
	case TokenIdent:
		return tok.Text, true
	case TokenNull, TokenTrue, TokenFalse:
		return tok.Kind.String(), true
	default:
		return "", false
	}
}

// parseBracket parses '[' ... ']'. The enclosed tokens are scanned at
// nesting depth zero: a comma there makes the form an array of
// comma-separated expressions; otherwise the whole content is a single
// expression wrapped in a similarity. Empty '[]' is an empty array.
func (p *parser) parseBracket() (*Node, error) {
	open := p.peek()
	p.advance()

	if p.peek().Kind == TokenRBracket {
		p.advance()

		return &Node{Kind: KindArray, Items: []*Node{}, Pos: open.Pos}, nil
	}

	comma, err := p.scanTopComma(open.Pos, TokenRBracket)
	if err != nil {
		return nil, err
	}

	if !comma {
		expr, err := p.parseExpr(minPrecedence)
		if err != nil {
			return nil, err
		}

		if err := p.expect(TokenRBracket); err != nil {
			return nil, err
		}

		return &Node{Kind: KindSimilarity, Left: expr, Pos: open.Pos}, nil
	}

	items := make([]*Node, 0, 4)

	for {
		item, err := p.parseExpr(minPrecedence)
		if err != nil {
			return nil, err
		}

		items = append(items, item)

		if p.peek().Kind == TokenComma {
			p.advance()

			continue
		}

		if err := p.expect(TokenRBracket); err != nil {
			return nil, err
		}

		return &Node{Kind: KindArray, Items: items, Pos: open.Pos}, nil
	}
}

// parseBrace parses '{' ... '}'. A leading string literal immediately
// followed by a colon makes the form an object of '"key": expression'
// pairs; otherwise the whole content is a single expression wrapped in a
// difference. Empty '{}' is an empty object.
func (p *parser) parseBrace() (*Node, error) {
	open := p.peek()
	p.advance()

	if p.peek().Kind == TokenRBrace {
		p.advance()

		return &Node{Kind: KindObject, Fields: []Field{}, Pos: open.Pos}, nil
	}

	if p.peek().Kind != TokenString || p.peekAt(1).Kind != TokenColon {
		expr, err := p.parseExpr(minPrecedence)
		if err != nil {
			return nil, err
		}

		if err := p.expect(TokenRBrace); err != nil {
			return nil, err
		}

		return &Node{Kind: KindDifference, Left: expr, Pos: open.Pos}, nil
	}

	fields := make([]Field, 0, 4)
	seen := make(map[string]struct{})

	for {
		key := p.peek()
		if key.Kind != TokenString {
			return nil, ErrParse.WithPosition(key.Pos).
				With(
					slog.String("got", key.Kind.String()),
					slog.String("expected", "object key string"),
				)
		}

		if _, dup := seen[key.Text]; dup {
			return nil, ErrDuplicateKey.WithPosition(key.Pos).
				With(slog.String("key", key.Text))
		}

		seen[key.Text] = struct{}{}

		p.advance()

		if err := p.expect(TokenColon); err != nil {
			return nil, err
		}

		// Object values are full expressions, not just literals.
		value, err := p.parseExpr(minPrecedence)
		if err != nil {
			return nil, err
		}

		fields = append(fields, Field{Key: key.Text, Value: value})

		if p.peek().Kind == TokenComma {
			p.advance()

			continue
		}

		if err := p.expect(TokenRBrace); err != nil {
			return nil, err
		}

		return &Node{Kind: KindObject, Fields: fields, Pos: open.Pos}, nil
	}
}

// scanTopComma reports whether a comma appears at nesting depth zero
// before the bracket that closes the current form. The scan runs to the
// depth-zero close so an unterminated form fails here rather than as a
// generic parse error mid-element. The scan does not consume tokens.
func (p *parser) scanTopComma(open Position, closing TokenKind) (bool, error) {
	depth := 0
	comma := false

	for i := p.pos; ; i++ {
		tok := p.at(i)

		switch tok.Kind {
		case TokenEOF:
			return false, ErrUnclosedBracket.WithPosition(open).
				With(slog.String("expected", closing.String()))

		case TokenLBracket, TokenLBrace:
			depth++

		case TokenRBracket, TokenRBrace:
			if depth == 0 {
				return comma, nil
			}

			depth--

		case TokenComma:
			if depth == 0 {
				comma = true
			}
		}
	}
}

// expect consumes the next token if it has the given kind, or fails with
// a parse error describing what was expected.
func (p *parser) expect(kind TokenKind) error {
	tok := p.peek()
	if tok.Kind != kind {
		return ErrParse.WithPosition(tok.Pos).
			With(
				slog.String("got", tok.Kind.String()),
				slog.String("expected", kind.String()),
			)
	}

	p.advance()

	return nil
}

// Helper methods

func (p *parser) peek() Token {
	return p.at(p.pos)
}

func (p *parser) peekAt(n int) Token {
	return p.at(p.pos + n)
}

// at returns the token at index i, or the terminal EOF token past the
// end. Tokenize always emits a trailing TokenEOF, so the stream is never
// empty.
func (p *parser) at(i int) Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[i]
}

func (p *parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}
