package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/sigil/lang"
	"github.com/ardnew/sigil/log"
)

// declPattern matches an inline declaration line "name = definition".
// A bare identifier is not a valid expression atom, so a line in this
// form is never ambiguous with expression text.
var declPattern = regexp.MustCompile(
	`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(\S.*?)\s*$`,
)

// SplitSource separates a source document into its inline declaration
// layer and the trailing expression text. Declaration lines bind a name
// to raw definition text; every remaining line belongs to the
// expression. Later declarations shadow earlier ones of the same name.
func SplitSource(source string) (lang.Registry, string) {
	defs := make(map[string]string)
	expr := make([]string, 0, 1)

	for line := range strings.Lines(source) {
		if m := declPattern.FindStringSubmatch(line); m != nil {
			defs[m[1]] = m[2]

			continue
		}

		expr = append(expr, line)
	}

	return lang.NewRegistry(defs), strings.TrimSpace(strings.Join(expr, ""))
}

// LoadSchemas reads each schema file in order and merges the results,
// later files shadowing earlier ones. A path that does not exist is
// skipped, so the default schema path is harmless before it has been
// initialized.
func LoadSchemas(ctx context.Context, paths []string) (lang.Registry, error) {
	var merged lang.Registry

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.DebugContext(ctx, "schema file not found, skipping",
				slog.String("path", path))

			continue
		}

		schema, err := LoadSchema(path)
		if err != nil {
			return lang.Registry{}, err
		}

		merged = merged.Merge(schema)
	}

	return merged, nil
}

// LoadSchema reads one YAML schema file mapping names to definition
// text. Scalar values of any YAML type are accepted and carried as
// their definition text; structured values are rejected.
func LoadSchema(path string) (lang.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lang.Registry{}, ErrLoadSchema.Wrap(err).
			With(slog.String("path", path))
	}

	var doc map[string]any

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return lang.Registry{}, ErrLoadSchema.Wrap(err).
			With(slog.String("path", path))
	}

	defs := make(map[string]string, len(doc))

	for name, value := range doc {
		text, err := definitionText(value)
		if err != nil {
			return lang.Registry{}, ErrLoadSchema.Wrap(err).
				With(
					slog.String("path", path),
					slog.String("name", name),
				)
		}

		defs[name] = text
	}

	return lang.NewRegistry(defs), nil
}

// definitionText renders a decoded YAML scalar as raw definition text.
func definitionText(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil

	case nil:
		return "null", nil

	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), nil

	default:
		return "", fmt.Errorf("definition must be scalar text, got %T", value)
	}
}

// ParseTypes converts "name=definition" declarations from the command
// line into a registry layer.
func ParseTypes(decls []string) (lang.Registry, error) {
	if len(decls) == 0 {
		return lang.Registry{}, nil
	}

	defs := make(map[string]string, len(decls))

	for _, decl := range decls {
		m := declPattern.FindStringSubmatch(decl)
		if m == nil {
			return lang.Registry{}, ErrTypeDecl.
				With(slog.String("decl", decl))
		}

		defs[m[1]] = m[2]
	}

	return lang.NewRegistry(defs), nil
}
