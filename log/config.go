package log

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return slog.Level(l).String()
	}
}

// ParseLevel returns the level named by s, or DefaultLevel when s names
// no known level.
func ParseLevel(s string) Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return DefaultLevel
	}
}

// Levels returns all defined log levels in ascending severity.
func Levels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// Format represents the log output format.
type Format int

const (
	// FormatJSON emits one JSON object per record.
	FormatJSON Format = iota
	// FormatText emits logfmt-style key=value records.
	FormatText
	// FormatPretty emits colorized human-readable records.
	FormatPretty
)

// DefaultFormat is the default log output format.
const DefaultFormat = FormatJSON

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatPretty:
		return "pretty"
	default:
		return "json"
	}
}

// ParseFormat returns the format named by s, or DefaultFormat when s
// names no known format.
func ParseFormat(s string) Format {
	switch s {
	case "text":
		return FormatText
	case "pretty":
		return FormatPretty
	default:
		return FormatJSON
	}
}

// DefaultTimeLayout is the default timestamp layout.
const DefaultTimeLayout = time.RFC3339

// namedLayouts maps time package layout names to their layout strings.
//
//nolint:gochecknoglobals
var namedLayouts = map[string]string{
	"RFC3339":     time.RFC3339,
	"RFC3339Nano": time.RFC3339Nano,
	"RFC1123":     time.RFC1123,
	"Kitchen":     time.Kitchen,
	"Stamp":       time.Stamp,
	"StampMilli":  time.StampMilli,
	"DateTime":    time.DateTime,
	"TimeOnly":    time.TimeOnly,
}

// ParseTimeLayout resolves a named layout from the time package (such as
// "RFC3339Nano") or returns s itself as a custom layout.
func ParseTimeLayout(s string) string {
	if layout, ok := namedLayouts[s]; ok {
		return layout
	}

	if s == "" {
		return DefaultTimeLayout
	}

	return s
}

// config holds the logger configuration applied at creation time.
type config struct {
	writer     io.Writer
	level      Level
	format     Format
	timeLayout string
	caller     bool
}

// makeConfig builds a config from defaults and options.
func makeConfig(w io.Writer, opts ...Option) config {
	cfg := config{
		writer:     w,
		level:      DefaultLevel,
		format:     DefaultFormat,
		timeLayout: DefaultTimeLayout,
	}

	if cfg.writer == nil {
		cfg.writer = os.Stderr
	}

	return apply(cfg, opts...)
}

// handler constructs the slog handler for the configuration.
func (c config) handler() slog.Handler {
	if c.format == FormatPretty {
		return newPrettyHandler(c)
	}

	opts := &slog.HandlerOptions{
		Level:     slog.Level(c.level),
		AddSource: c.caller,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(Level(lvl).String())
				}
			case slog.TimeKey:
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(ParseTimeLayout(c.timeLayout)))
				}
			}

			return a
		},
	}

	if c.format == FormatText {
		return slog.NewTextHandler(c.writer, opts)
	}

	return slog.NewJSONHandler(c.writer, opts)
}
