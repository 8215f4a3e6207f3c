// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//	logger.Info("registry built", slog.Int("entries", n))
//
// The zero Logger value is valid and discards every record, which lets
// library code accept an optional logger without nil checks.
//
// Three output formats are supported: [FormatJSON] (default),
// [FormatText], and [FormatPretty] for colorized terminal output. Five
// levels are supported, adding [LevelTrace] below [slog.LevelDebug] for
// per-expansion diagnostics.
//
// A package-level default logger backs the package functions ([Info],
// [Error], ...) and is reconfigured with [Config]; command-line drivers
// use it so flag parsing can adjust logging before commands run.
package log
