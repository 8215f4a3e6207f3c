package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/sigil/lang"
	"github.com/ardnew/sigil/log"
)

// Resolve expands an expression against the effective registry and
// prints the result.
type Resolve struct {
	Expr string `arg:"" help:"Expression text (reads --file when omitted)" name:"expr" optional:""`

	File   string   `default:"-"          help:"Source input file or '-' for stdin"             short:"f"`
	Mode   string   `default:"deep"       help:"Expansion mode"                                 short:"m" enum:"flat,deep"`
	Passes int      `default:"${passes}"  help:"Deep expansion pass budget"                     short:"n"`
	Strict bool     `                     help:"Fail when the pass budget is exhausted"`
	Schema []string `default:"${schema}"  help:"Schema file (repeatable, later files shadow)"   short:"s"`
	Type   []string `                     help:"Type declaration name=definition (repeatable)"  short:"t"`

	Format string `default:"tagged" help:"Output format"                    short:"o" enum:"tagged,json,yaml"`
	Indent int    `default:"2"      help:"Indent width for json and yaml"   short:"i"`
}

// Run executes the resolve command.
func (r *Resolve) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	source, err := readSource(r.Expr, r.File)
	if err != nil {
		return err
	}

	inline, text := SplitSource(source)
	if text == "" {
		return ErrEmptySource
	}

	node, err := lang.ParseExpression(text)
	if err != nil {
		fmt.Fprintln(os.Stderr, lang.Snippet(err, text))

		return err
	}

	registry, err := buildRegistry(ctx, inline, r.Schema, r.Type)
	if err != nil {
		return err
	}

	resolved, err := lang.Resolve(ctx, node, registry, lang.ParseMode(r.Mode),
		lang.WithPassBudget(r.Passes),
		lang.WithStrictBudget(r.Strict),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "resolve"))
	}

	return writeNode(ctx, stdout(ctx), resolved, r.Format, r.Indent)
}

// buildRegistry assembles the four-layer effective registry from the
// built-in primitives, schema files, inline declarations, and type
// flags.
func buildRegistry(
	ctx context.Context,
	inline lang.Registry,
	schemaPaths, typeDecls []string,
) (lang.Registry, error) {
	schema, err := LoadSchemas(ctx, schemaPaths)
	if err != nil {
		return lang.Registry{}, err
	}

	user, err := ParseTypes(typeDecls)
	if err != nil {
		return lang.Registry{}, err
	}

	return lang.Build(lang.Builtins(), schema, inline, user), nil
}

// writeNode renders the node to w in the named output format.
func writeNode(
	ctx context.Context,
	w io.Writer,
	node *lang.Node,
	format string,
	indent int,
) error {
	switch format {
	case "json":
		return lang.FormatJSON(w, node, indent)

	case "yaml":
		return lang.FormatYAML(ctx, w, node, indent)

	default:
		_, err := fmt.Fprintln(w, lang.Format(node))

		return err
	}
}

// stdout returns the output writer of the active kong context, or
// os.Stdout outside of one.
func stdout(ctx context.Context) io.Writer {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return os.Stdout
	}

	return ktx.Stdout
}
