package cmd

import (
	"context"

	"github.com/ardnew/sigil/cli/cmd/repl"
	"github.com/ardnew/sigil/lang"
	"github.com/ardnew/sigil/log"
)

// Repl starts an interactive resolve loop. Declarations entered at the
// prompt extend the user registry layer for the rest of the session.
type Repl struct {
	Schema []string `default:"${schema}" help:"Schema file (repeatable, later files shadow)"  short:"s"`
	Type   []string `                    help:"Type declaration name=definition (repeatable)" short:"t"`
	Passes int      `default:"${passes}" help:"Deep expansion pass budget"                    short:"n"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	registry, err := buildRegistry(ctx, lang.Registry{}, r.Schema, r.Type)
	if err != nil {
		return err
	}

	ktx := kongContextFrom(ctx)

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache namespace undefined")
	}

	return repl.Run(ctx, registry, cacheDir, r.Passes, log.Default())
}
