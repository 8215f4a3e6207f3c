package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/sigil/log"
)

// Mode selects how far Resolve expands references.
type Mode int

const (
	// ModeFlat expands every reference and action in the tree by exactly
	// one lookup level.
	ModeFlat Mode = iota

	// ModeDeep repeats flat expansion to a fixed point, bounded by a pass
	// budget, with per-branch cycle detection.
	ModeDeep
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeFlat {
		return "flat"
	}

	return "deep"
}

// ParseMode returns the mode named by s. Anything other than "flat"
// selects deep resolution.
func ParseMode(s string) Mode {
	if s == "flat" {
		return ModeFlat
	}

	return ModeDeep
}

// DefaultPassBudget bounds the number of expansion passes a deep
// resolution performs before settling for a partial result.
const DefaultPassBudget = 100

// Option applies a configuration option to a resolve call.
type Option func(*resolver)

// WithPassBudget sets the maximum number of deep expansion passes for
// this call. Values below one are ignored.
func WithPassBudget(n int) Option {
	return func(r *resolver) {
		if n > 0 {
			r.budget = n
		}
	}
}

// WithStrictBudget makes budget exhaustion a hard ErrBudgetExceeded
// failure instead of returning the partially expanded tree.
func WithStrictBudget(strict bool) Option {
	return func(r *resolver) {
		r.strict = strict
	}
}

// WithLogger attaches a logger for trace-level expansion diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(r *resolver) {
		r.logger = logger
	}
}

// Resolve expands node against the registry under the given mode and
// returns the expanded tree. The input tree and the registry are never
// modified; result nodes may share unexpanded subtrees with the input.
//
// Undefined names and reference cycles are not errors: both remain
// symbolic in the result. Resolution fails only on member access against
// a missing field or a non-object value, on definition text that does
// not parse, or — under WithStrictBudget — on pass budget exhaustion.
func Resolve(
	ctx context.Context,
	node *Node,
	registry Registry,
	mode Mode,
	opts ...Option,
) (*Node, error) {
	r := &resolver{
		ctx:    ctx,
		reg:    registry,
		budget: DefaultPassBudget,
	}

	for _, opt := range opts {
		opt(r)
	}

	if mode == ModeFlat {
		return r.flat(node)
	}

	return r.resolveDeep(node)
}

// resolver holds the state of a single top-level resolve call. Each call
// owns its own visited set and pass counter; nothing is shared across
// calls.
type resolver struct {
	ctx    context.Context
	reg    Registry
	logger log.Logger
	budget int
	strict bool
}

// resolveDeep applies whole-tree expansion until a fixed point or the
// pass budget is exhausted. Within each pass, a fresh per-branch visited
// set guarantees termination in the presence of cycles.
func (r *resolver) resolveDeep(node *Node) (*Node, error) {
	current := node

	for pass := range r.budget {
		next, err := r.deep(current, make(map[string]struct{}))
		if err != nil {
			return nil, err
		}

		if next.Equal(current) {
			r.logger.TraceContext(r.ctx, "fixed point reached",
				slog.Int("passes", pass+1))

			return next, nil
		}

		current = next
	}

	if r.strict {
		return nil, ErrBudgetExceeded.
			With(slog.Int("budget", r.budget))
	}

	r.logger.DebugContext(r.ctx, "pass budget exhausted, returning partial result",
		slog.Int("budget", r.budget))

	return current, nil
}

// flat performs exactly one layer of reference expansion across the
// whole tree.
func (r *resolver) flat(n *Node) (*Node, error) {
	switch n.Kind {
	case KindReference, KindAction:
		text, ok := r.reg.Lookup(n.Str)
		if !ok {
			// Undefined names remain symbolic by design.
			return n, nil
		}

		return r.definition(n.Str, text)

	case KindMember:
		object, err := r.flat(n.Left)
		if err != nil {
			return nil, err
		}

		// Flat mode returns the field value as looked up, without a
		// further resolution step.
		return r.member(object, n)

	default:
		return r.each(n, r.flat)
	}
}

// deep expands the tree completely along each branch, stopping a branch
// only where it would re-enter a name already being expanded on it.
func (r *resolver) deep(n *Node, seen map[string]struct{}) (*Node, error) {
	switch n.Kind {
	case KindReference, KindAction:
		if _, active := seen[n.Str]; active {
			// Cycle: stop expanding this branch and keep the node
			// symbolic. Direct and indirect cycles are valid inputs.
			r.logger.TraceContext(r.ctx, "cycle detected",
				slog.String("name", n.Str))

			return n, nil
		}

		text, ok := r.reg.Lookup(n.Str)
		if !ok {
			return n, nil
		}

		parsed, err := r.definition(n.Str, text)
		if err != nil {
			return nil, err
		}

		seen[n.Str] = struct{}{}
		defer delete(seen, n.Str)

		r.logger.TraceContext(r.ctx, "expand",
			slog.String("name", n.Str),
			slog.String("kind", n.Kind.String()))

		return r.deep(parsed, seen)

	case KindMember:
		object, err := r.deep(n.Left, seen)
		if err != nil {
			return nil, err
		}

		value, err := r.member(object, n)
		if err != nil {
			return nil, err
		}

		// The selected field value gets one further resolution step.
		return r.deep(value, seen)

	default:
		return r.each(n, func(child *Node) (*Node, error) {
			return r.deep(child, seen)
		})
	}
}

// member selects the named field from a resolved object. The node n
// carries the field name and position for error reporting.
func (r *resolver) member(object *Node, n *Node) (*Node, error) {
	if object.Kind != KindObject {
		return nil, ErrNotStructured.WithPosition(n.Pos).
			With(
				slog.String("field", n.Str),
				slog.String("kind", object.Kind.String()),
			)
	}

	value, ok := object.Field(n.Str)
	if !ok {
		return nil, ErrFieldNotFound.WithPosition(n.Pos).
			With(slog.String("field", n.Str))
	}

	return value, nil
}

// definition tokenizes and parses looked-up definition text through the
// process-wide parse cache.
func (r *resolver) definition(name, text string) (*Node, error) {
	parsed, err := parseDefinition(text)
	if err != nil {
		return nil, ErrDefinition.Wrap(err).
			With(slog.String("name", name))
	}

	return parsed, nil
}

// each resolves every immediate child of n with fn and rebuilds the same
// node shape. Leaves pass through unchanged.
func (r *resolver) each(n *Node, fn func(*Node) (*Node, error)) (*Node, error) {
	switch n.Kind {
	case KindArray:
		items := make([]*Node, len(n.Items))

		for i, item := range n.Items {
			resolved, err := fn(item)
			if err != nil {
				return nil, err
			}

			items[i] = resolved
		}

		return &Node{Kind: KindArray, Items: items, Pos: n.Pos}, nil

	case KindObject:
		fields := make([]Field, len(n.Fields))

		for i, f := range n.Fields {
			resolved, err := fn(f.Value)
			if err != nil {
				return nil, err
			}

			fields[i] = Field{Key: f.Key, Value: resolved}
		}

		return &Node{Kind: KindObject, Fields: fields, Pos: n.Pos}, nil

	case KindSimilarity, KindDifference:
		wrapped, err := fn(n.Left)
		if err != nil {
			return nil, err
		}

		return &Node{Kind: n.Kind, Left: wrapped, Pos: n.Pos}, nil

	case KindAnnotation, KindBind, KindProduct,
		KindMorphism, KindChoice, KindEquality, KindInequality:
		left, err := fn(n.Left)
		if err != nil {
			return nil, err
		}

		right, err := fn(n.Right)
		if err != nil {
			return nil, err
		}

		return &Node{Kind: n.Kind, Left: left, Right: right, Pos: n.Pos}, nil

	default:
		// Literals and existence are base cases.
		return n, nil
	}
}
