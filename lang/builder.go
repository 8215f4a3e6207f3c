package lang

// Builder provides a programmatic API for constructing expression trees
// without parsing source text. This is useful for composing expected
// results in tests or generating notation programmatically.
//
// Example:
//
//	b := lang.NewBuilder()
//	node := b.Product(b.Number(0), b.String(""))
type Builder struct{}

// NewBuilder creates a new expression builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Null creates a null literal node.
func (b *Builder) Null() *Node {
	return &Node{Kind: KindNull}
}

// Bool creates a boolean literal node.
func (b *Builder) Bool(v bool) *Node {
	return &Node{Kind: KindBool, Bool: v}
}

// Number creates a numeric literal node.
func (b *Builder) Number(v float64) *Node {
	return &Node{Kind: KindNumber, Num: v}
}

// String creates a string literal node.
func (b *Builder) String(v string) *Node {
	return &Node{Kind: KindString, Str: v}
}

// Reference creates a reference node for the given registry name.
func (b *Builder) Reference(name string) *Node {
	return &Node{Kind: KindReference, Str: name}
}

// Action creates an action node for the given registry name.
func (b *Builder) Action(name string) *Node {
	return &Node{Kind: KindAction, Str: name}
}

// Existence creates an existence node.
func (b *Builder) Existence() *Node {
	return &Node{Kind: KindExistence}
}

// Member creates a member-access node.
func (b *Builder) Member(object *Node, field string) *Node {
	return &Node{Kind: KindMember, Left: object, Str: field}
}

// Annotation creates a type-annotation node.
func (b *Builder) Annotation(value, typ *Node) *Node {
	return &Node{Kind: KindAnnotation, Left: value, Right: typ}
}

// Bind creates a bind node.
func (b *Builder) Bind(left, right *Node) *Node {
	return &Node{Kind: KindBind, Left: left, Right: right}
}

// Product creates a product node.
func (b *Builder) Product(left, right *Node) *Node {
	return &Node{Kind: KindProduct, Left: left, Right: right}
}

// Morphism creates a morphism node.
func (b *Builder) Morphism(left, right *Node) *Node {
	return &Node{Kind: KindMorphism, Left: left, Right: right}
}

// Choice creates a choice node.
func (b *Builder) Choice(left, right *Node) *Node {
	return &Node{Kind: KindChoice, Left: left, Right: right}
}

// Equality creates an equality node.
func (b *Builder) Equality(left, right *Node) *Node {
	return &Node{Kind: KindEquality, Left: left, Right: right}
}

// Inequality creates an inequality node.
func (b *Builder) Inequality(left, right *Node) *Node {
	return &Node{Kind: KindInequality, Left: left, Right: right}
}

// Array creates an array node from the given elements.
func (b *Builder) Array(items ...*Node) *Node {
	return &Node{Kind: KindArray, Items: items}
}

// Object creates an object node from the given fields.
// Keys must be unique; the builder does not verify this.
func (b *Builder) Object(fields ...Field) *Node {
	return &Node{Kind: KindObject, Fields: fields}
}

// Pair creates a single object field.
func (b *Builder) Pair(key string, value *Node) Field {
	return Field{Key: key, Value: value}
}

// Similarity wraps an expression in a similarity node.
func (b *Builder) Similarity(expr *Node) *Node {
	return &Node{Kind: KindSimilarity, Left: expr}
}

// Difference wraps an expression in a difference node.
func (b *Builder) Difference(expr *Node) *Node {
	return &Node{Kind: KindDifference, Left: expr}
}
