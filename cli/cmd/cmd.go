package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"
)

var (
	// CacheIdentifier is the kong variable identifier containing the path
	// to the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the
	// path to the configuration file.
	ConfigIdentifier = "config"

	// SchemaIdentifier is the kong variable identifier containing the
	// path to the default schema file.
	SchemaIdentifier = "schema"

	// PassesIdentifier is the kong variable identifier containing the
	// default deep expansion pass budget.
	PassesIdentifier = "passes"
)

// contextKey is used to store a [kong.Context] value in
// [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readSource returns the source text named by path: the expression text
// itself when expr is non-empty, otherwise the contents of the file at
// path, or stdin for "-".
func readSource(expr, path string) (string, error) {
	if expr != "" {
		return expr, nil
	}

	var file *os.File

	if path == stdinSource {
		file = os.Stdin
	} else {
		var err error

		file, err = os.Open(path)
		if err != nil {
			return "", ErrReadSource.Wrap(err)
		}
		defer file.Close()
	}

	ra := readahead.NewReader(file)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadSource.Wrap(err)
	}

	return string(data), nil
}
