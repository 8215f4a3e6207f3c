package lang

// Kind identifies the syntactic category of an expression node.
// The set is closed: the parser produces no other cases, and the
// resolver and formatter handle every one of them.
type Kind int

const (
	// KindNull is the null literal.
	KindNull Kind = iota
	// KindBool is a boolean literal.
	KindBool
	// KindNumber is a floating-point numeric literal.
	KindNumber
	// KindString is a string literal.
	KindString

	// KindReference is a sigil-prefixed name pointing into the registry
	// for a value-like definition.
	KindReference
	// KindAction is a sigil-prefixed name pointing into the registry for
	// an operation-like definition. The resolver treats it exactly like a
	// reference.
	KindAction
	// KindExistence is the existence atom.
	KindExistence

	// KindMember is member access: Left is the object expression and Str
	// is the field name.
	KindMember
	// KindAnnotation is a type annotation: Left is the value and Right is
	// the type expression.
	KindAnnotation
	// KindBind binds Left to Right.
	KindBind
	// KindProduct is the product of Left and Right.
	KindProduct
	// KindMorphism is a morphism from Left to Right.
	KindMorphism
	// KindChoice is a choice between Left and Right.
	KindChoice
	// KindEquality asserts Left equals Right.
	KindEquality
	// KindInequality asserts Left differs from Right.
	KindInequality

	// KindArray is an ordered list of nodes.
	KindArray
	// KindObject is a mapping of unique string keys to nodes,
	// insertion-ordered.
	KindObject

	// KindSimilarity wraps a single bracketed expression.
	KindSimilarity
	// KindDifference wraps a single braced expression.
	KindDifference
)

// String returns the node tag used by the formatter.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindReference:
		return "reference"
	case KindAction:
		return "action"
	case KindExistence:
		return "existence"
	case KindMember:
		return "member"
	case KindAnnotation:
		return "annotation"
	case KindBind:
		return "bind"
	case KindProduct:
		return "product"
	case KindMorphism:
		return "morphism"
	case KindChoice:
		return "choice"
	case KindEquality:
		return "equality"
	case KindInequality:
		return "inequality"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindSimilarity:
		return "similarity"
	case KindDifference:
		return "difference"
	default:
		return "unknown"
	}
}

// Node is a single expression tree node. Exactly which fields are set
// depends on Kind:
//
//   - Bool: KindBool
//   - Num: KindNumber
//   - Str: KindString (literal value), KindReference and KindAction
//     (name), KindMember (field name)
//   - Left, Right: binary operator nodes; Left alone for KindMember,
//     KindSimilarity, and KindDifference
//   - Items: KindArray
//   - Fields: KindObject
//
// Nodes are immutable trees: the resolver rebuilds nodes rather than
// mutating them, so subtrees may be shared freely.
type Node struct {
	Kind   Kind
	Bool   bool
	Num    float64
	Str    string
	Left   *Node
	Right  *Node
	Items  []*Node
	Fields []Field
	Pos    Position
}

// Field is a single key/value pair of an object node.
type Field struct {
	Key   string
	Value *Node
}

// Field returns the value of the named object field, if present.
// It returns false for any node that is not an object.
func (n *Node) Field(key string) (*Node, bool) {
	if n == nil || n.Kind != KindObject {
		return nil, false
	}

	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Equal reports structural equality of two expression trees. Source
// positions are ignored, and object fields compare as mappings, not as
// ordered sequences.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}

	if n.Kind != other.Kind {
		return false
	}

	switch n.Kind {
	case KindNull, KindExistence:
		return true

	case KindBool:
		return n.Bool == other.Bool

	case KindNumber:
		return n.Num == other.Num

	case KindString, KindReference, KindAction:
		return n.Str == other.Str

	case KindMember:
		return n.Str == other.Str && n.Left.Equal(other.Left)

	case KindSimilarity, KindDifference:
		return n.Left.Equal(other.Left)

	case KindArray:
		if len(n.Items) != len(other.Items) {
			return false
		}

		for i, item := range n.Items {
			if !item.Equal(other.Items[i]) {
				return false
			}
		}

		return true

	case KindObject:
		if len(n.Fields) != len(other.Fields) {
			return false
		}

		for _, f := range n.Fields {
			val, ok := other.Field(f.Key)
			if !ok || !f.Value.Equal(val) {
				return false
			}
		}

		return true

	default:
		// Binary operator nodes.
		return n.Left.Equal(other.Left) && n.Right.Equal(other.Right)
	}
}
