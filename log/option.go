package log

import "io"

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithWriter sets the log output writer.
func WithWriter(w io.Writer) Option {
	return func(cfg config) config {
		if w != nil {
			cfg.writer = w
		}

		return cfg
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(cfg config) config {
		cfg.level = level

		return cfg
	}
}

// WithFormat sets the log output format.
func WithFormat(format Format) Option {
	return func(cfg config) config {
		cfg.format = format

		return cfg
	}
}

// WithTimeLayout sets the timestamp layout. Named layouts from the time
// package (such as "RFC3339Nano") and custom layout strings are both
// accepted.
func WithTimeLayout(layout string) Option {
	return func(cfg config) config {
		cfg.timeLayout = layout

		return cfg
	}
}

// WithCaller includes caller information in each log record.
func WithCaller(enable bool) Option {
	return func(cfg config) config {
		cfg.caller = enable

		return cfg
	}
}
