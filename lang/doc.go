// Package lang implements the sigil notation: a textual expression
// language built from symbolic references, operators, and JSON-like
// literal structures, expanded against a registry of named definitions.
//
// # Pipeline
//
// The package has four tightly coupled pieces:
//
//   - Tokenize: text → token sequence
//   - Parse: tokens → expression tree (precedence climbing)
//   - Resolve: tree + registry → expanded tree (flat or deep)
//   - Format: tree → canonical tagged text
//
// All four are pure functions from (input, registry, mode) to (output or
// structured error); none mutate shared state. A Registry is immutable
// once built and may be read concurrently by any number of resolve
// calls.
//
// # Grammar
//
// Informal EBNF:
//
//	Expression → Atom (Operator Expression)*
//	Atom       → Literal | '$' identifier | '#' identifier | '?'
//	           | '[' Brackets ']' | '{' Braces '}'
//	Literal    → number | string | 'true' | 'false' | 'null'
//	Operator   → '.' | ':' | '@' | '*' | '->' | '|' | '=' | '!='
//	Brackets   → Expression (',' Expression)* | Expression | empty
//	Braces     → string ':' Expression (',' string ':' Expression)*
//	           | Expression | empty
//
// Operators bind tightest to loosest: '.' member access, ':' type
// annotation, '@' bind, '*' product, '->' morphism, '|' choice, '=' and
// '!=' equality. All are left-associative. The right-hand side of '.'
// must be a bare identifier.
//
// Brackets disambiguate by content: '[' ... ']' with a comma at nesting
// depth zero is an array, otherwise a similarity wrapper; '{' ... '}'
// opening with a string key and colon is an object, otherwise a
// difference wrapper. Empty forms are the empty array and empty object.
//
// # Resolution
//
// References ('$name') and actions ('#name') look up raw definition text
// in the registry, which is itself parsed and spliced into the tree.
// Flat mode performs exactly one lookup layer; deep mode repeats
// expansion to a fixed point under a per-call pass budget. Undefined
// names and reference cycles are not errors — they stay symbolic, so a
// formatted result always shows what could not be expanded. Actions are
// pure symbolic expansion here: any effectful execution belongs to a
// collaborator invoked after resolution, never inside Resolve.
//
// # Example
//
//	reg := lang.Build(
//	    lang.Builtins(),
//	    lang.NewRegistry(map[string]string{"id": "$int*$unique"}),
//	    lang.Registry{},
//	    lang.Registry{},
//	)
//	node, _ := lang.ParseExpression("$id")
//	out, _ := lang.Resolve(ctx, node, reg, lang.ModeDeep)
//	fmt.Println(lang.Format(out)) // (0:number * "":string):product
package lang
