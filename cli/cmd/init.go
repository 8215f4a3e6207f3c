package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/sigil/log"
)

// starterSchema is the schema document written by the init command.
// Each entry binds a name to raw definition text; string-typed
// definitions carry their own quotes.
const starterSchema = `# sigil schema: each entry binds a name to definition text.
# Entries here shadow the built-in primitives and are shadowed by
# inline declarations and --type flags.
id: $int * $unique
entity: '{"id": $id, "name": $string, "active": $bool}'
maybe: $any | null
`

// Init writes a starter schema file at the default schema path.
type Init struct {
	Force bool `help:"Overwrite an existing schema file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	schemaPath, ok := ktx.Model.Vars()[SchemaIdentifier]
	if !ok {
		panic("internal error: schema namespace undefined")
	}

	_, err = os.Stat(schemaPath)
	if err == nil && !i.Force {
		return ErrWriteSchema.
			With(slog.String("file", schemaPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	err = os.WriteFile(schemaPath, []byte(starterSchema), 0o600)
	if err != nil {
		return ErrWriteSchema.
			With(slog.String("file", schemaPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized schema file",
		slog.String("path", schemaPath),
	)

	return nil
}
