package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/sigil/lang"
)

// Fmt parses an expression and reprints it in the chosen format without
// resolving anything. Inline declarations in the source are accepted
// and discarded; only the trailing expression is formatted.
type Fmt struct {
	Tagged Tagged `cmd:"" default:"withargs" help:"Print canonical tagged text (default)."`
	JSON   JSON   `cmd:""                    help:"Print the plain-data projection as JSON."`
	YAML   YAML   `cmd:""                    help:"Print the plain-data projection as YAML."`
}

// Tagged prints the canonical tagged rendering of the parsed tree.
type Tagged struct {
	Expr string `arg:"" help:"Expression text (reads --file when omitted)" name:"expr" optional:""`

	File string `default:"-" help:"Source input file or '-' for stdin" short:"f"`
}

// Run executes the tagged subcommand.
func (t *Tagged) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	node, err := parseSource(t.Expr, t.File, "tagged")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout(ctx), lang.Format(node))

	return err
}

// JSON prints the plain-data projection of the parsed tree as JSON.
type JSON struct {
	Expr string `arg:"" help:"Expression text (reads --file when omitted)" name:"expr" optional:""`

	File   string `default:"-" help:"Source input file or '-' for stdin" short:"f"`
	Indent int    `default:"2" help:"Indent width for JSON output"       short:"i"`
}

// Run executes the json subcommand.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	node, err := parseSource(j.Expr, j.File, "json")
	if err != nil {
		return err
	}

	return lang.FormatJSON(stdout(ctx), node, j.Indent)
}

// YAML prints the plain-data projection of the parsed tree as YAML.
type YAML struct {
	Expr string `arg:"" help:"Expression text (reads --file when omitted)" name:"expr" optional:""`

	File   string `default:"-" help:"Source input file or '-' for stdin" short:"f"`
	Indent int    `default:"2" help:"Indent width for YAML output"       short:"i"`
}

// Run executes the yaml subcommand.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	node, err := parseSource(y.Expr, y.File, "yaml")
	if err != nil {
		return err
	}

	return lang.FormatYAML(ctx, stdout(ctx), node, y.Indent)
}

// parseSource reads, splits, and parses source text for a formatting
// subcommand, printing a caret snippet on parse failure.
func parseSource(expr, file, format string) (*lang.Node, error) {
	source, err := readSource(expr, file)
	if err != nil {
		return nil, err
	}

	_, text := SplitSource(source)
	if text == "" {
		return nil, ErrEmptySource
	}

	node, err := lang.ParseExpression(text)
	if err != nil {
		fmt.Fprintln(os.Stderr, lang.Snippet(err, text))

		return nil, lang.WrapError(err).
			With(slog.String("format", format))
	}

	return node, nil
}
