package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format renders a node as canonical tagged text: every node carries an
// explicit trailing ":tag" naming its syntactic category, so a formatted
// result always shows whether full resolution occurred. Formatting is a
// pure structural recursion — no registry access, no resolution — and is
// deterministic for a given tree.
//
// Examples:
//
//	Format(Number 0)                → 0:number
//	Format(Reference "id")          → $id:reference
//	Format(Product(0, ""))          → (0:number * "":string):product
//	Format(Object {"id": 0})        → {"id": 0:number}:object
func Format(n *Node) string {
	var sb strings.Builder

	formatNode(&sb, n)

	return sb.String()
}

// String renders the node as canonical tagged text.
func (n *Node) String() string {
	return Format(n)
}

// operatorGlyph returns the infix glyph of a binary operator kind.
func operatorGlyph(k Kind) string {
	switch k {
	case KindAnnotation:
		return ":"
	case KindBind:
		return "@"
	case KindProduct:
		return "*"
	case KindMorphism:
		return "->"
	case KindChoice:
		return "|"
	case KindEquality:
		return "="
	default: // KindInequality
		return "!="
	}
}

func formatNode(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case KindNull:
		sb.WriteString("null")

	case KindBool:
		sb.WriteString(strconv.FormatBool(n.Bool))

	case KindNumber:
		sb.WriteString(strconv.FormatFloat(n.Num, 'g', -1, 64))

	case KindString:
		sb.WriteString(strconv.Quote(n.Str))

	case KindReference:
		sb.WriteByte('$')
		sb.WriteString(n.Str)

	case KindAction:
		sb.WriteByte('#')
		sb.WriteString(n.Str)

	case KindExistence:
		sb.WriteByte('?')

	case KindMember:
		sb.WriteByte('(')
		formatNode(sb, n.Left)
		sb.WriteByte('.')
		sb.WriteString(n.Str)
		sb.WriteByte(')')

	case KindArray:
		sb.WriteByte('[')

		for i, item := range n.Items {
			if i > 0 {
				sb.WriteString(", ")
			}

			formatNode(sb, item)
		}

		sb.WriteByte(']')

	case KindObject:
		sb.WriteByte('{')

		for i, f := range n.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(strconv.Quote(f.Key))
			sb.WriteString(": ")
			formatNode(sb, f.Value)
		}

		sb.WriteByte('}')

	case KindSimilarity:
		sb.WriteByte('[')
		formatNode(sb, n.Left)
		sb.WriteByte(']')

	case KindDifference:
		sb.WriteByte('{')
		formatNode(sb, n.Left)
		sb.WriteByte('}')

	default:
		// Binary operator nodes.
		sb.WriteByte('(')
		formatNode(sb, n.Left)
		sb.WriteByte(' ')
		sb.WriteString(operatorGlyph(n.Kind))
		sb.WriteByte(' ')
		formatNode(sb, n.Right)
		sb.WriteByte(')')
	}

	sb.WriteByte(':')
	sb.WriteString(n.Kind.String())
}

// ToValue projects a node onto plain Go data for JSON/YAML rendering.
// Literals become their Go values; symbolic atoms become their surface
// text; every composite becomes a single-key map from its tag to its
// children.
func ToValue(n *Node) any {
	switch n.Kind {
	case KindNull:
		return nil

	case KindBool:
		return n.Bool

	case KindNumber:
		return n.Num

	case KindString:
		return n.Str

	case KindReference:
		return "$" + n.Str

	case KindAction:
		return "#" + n.Str

	case KindExistence:
		return "?"

	case KindMember:
		return map[string]any{
			n.Kind.String(): []any{ToValue(n.Left), n.Str},
		}

	case KindArray:
		items := make([]any, len(n.Items))
		for i, item := range n.Items {
			items[i] = ToValue(item)
		}

		return items

	case KindObject:
		fields := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			fields[f.Key] = ToValue(f.Value)
		}

		return fields

	case KindSimilarity, KindDifference:
		return map[string]any{n.Kind.String(): ToValue(n.Left)}

	default:
		return map[string]any{
			n.Kind.String(): []any{ToValue(n.Left), ToValue(n.Right)},
		}
	}
}

// FormatJSON writes the node's plain-data projection as JSON.
func FormatJSON(w io.Writer, n *Node, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(ToValue(n), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(ToValue(n))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the node's plain-data projection as YAML.
func FormatYAML(ctx context.Context, w io.Writer, n *Node, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, ToValue(n), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
