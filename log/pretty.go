package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyHandler is a slog.Handler that renders colorized human-readable
// records for terminal output. It is not meant for machine consumption;
// use FormatJSON or FormatText for that.
type prettyHandler struct {
	mu    *sync.Mutex
	cfg   config
	attrs []slog.Attr
	group string
}

func newPrettyHandler(cfg config) *prettyHandler {
	return &prettyHandler{
		mu:  &sync.Mutex{},
		cfg: cfg,
	}
}

// Styles.
//
//nolint:gochecknoglobals
var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	msgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	levelStyle = map[Level]lipgloss.Style{
		LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// levelTag returns the fixed-width level tag for pretty output.
func levelTag(l Level) string {
	switch l {
	case LevelTrace:
		return "TRC"
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	default:
		return "???"
	}
}

// Enabled implements slog.Handler.
func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.Level(h.cfg.level)
}

// Handle implements slog.Handler.
func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	level := Level(r.Level)

	sb.WriteString(timeStyle.Render(r.Time.Format(ParseTimeLayout(h.cfg.timeLayout))))
	sb.WriteByte(' ')

	style, ok := levelStyle[level]
	if !ok {
		style = msgStyle
	}

	sb.WriteString(style.Render(levelTag(level)))
	sb.WriteByte(' ')
	sb.WriteString(msgStyle.Render(r.Message))

	writeAttr := func(a slog.Attr) {
		sb.WriteByte(' ')
		sb.WriteString(keyStyle.Render(h.qualify(a.Key) + "="))
		sb.WriteString(fmt.Sprint(a.Value.Resolve().Any()))
	}

	for _, a := range h.attrs {
		writeAttr(a)
	}

	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)

		return true
	})

	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.cfg.writer, sb.String())

	return err
}

// WithAttrs implements slog.Handler.
func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &clone
}

// WithGroup implements slog.Handler.
func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := *h

	if clone.group == "" {
		clone.group = name
	} else {
		clone.group += "." + name
	}

	return &clone
}

func (h *prettyHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}

	return h.group + "." + key
}
