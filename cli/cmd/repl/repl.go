package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/sigil/lang"
	"github.com/ardnew/sigil/log"
)

const prompt = "➜ "

func helpMessage() string {
	return `
: Commands (prefix with ':'):

  :help     Print this cruft
  :list     List every name in the registry
  :flat     Switch to flat (single-layer) expansion
  :deep     Switch to deep (fixpoint) expansion
  :clear    Clear screen
  :quit     Exit REPL

Usage:
  Type an expression to resolve it under the current mode
  Type "name = definition" to declare or shadow a registry entry
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to dismiss candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatEcho formats the submitted line echo with prompt and input
// styled.
func formatEcho(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// declPattern matches a session declaration line "name = definition".
var declPattern = regexp.MustCompile(
	`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(\S.*?)\s*$`,
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	registry     lang.Registry
	logger       log.Logger
	history      *History
	historyIdx   int
	mode         lang.Mode
	passes       int
	matches      fuzzy.Matches
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
}

// Run starts the REPL over the given registry. Declarations entered at
// the prompt shadow registry entries for the rest of the session.
func Run(
	ctx context.Context,
	registry lang.Registry,
	cacheDir string,
	passes int,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("registry_len", registry.Len()),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	m := newModel(ctx, registry, history, passes, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	registry lang.Registry,
	history *History,
	passes int,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		registry:   registry,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		mode:       lang.ModeDeep,
		passes:     passes,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		b.WriteString(hintStyle.Render(
			fmt.Sprintf("%d/%d", m.historyIdx+1, m.history.Len()),
		))
		b.WriteString("\n")

	case strings.TrimSpace(input) == "":
		hint := fmt.Sprintf(
			"Type an expression (%s mode), name = definition, or :help",
			m.mode,
		)
		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.width))
		b.WriteString("\n")

	default:
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyCtrlC:
		if strings.TrimSpace(m.input.Value()) == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m = m.resetCompletion()

		return m, nil

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyEscape:
		if m.tabActive {
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
		}

		m = m.resetCompletion()

		return m, nil

	case tea.KeyUp:
		return m.navigate(-1), nil

	case tea.KeyDown:
		return m.navigate(1), nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m = m.refreshCompletion()

	return m, cmd
}

// refreshCompletion recomputes the fuzzy candidate set for the word at
// the cursor.
func (m model) refreshCompletion() model {
	m.tabActive = false
	m.suggIdx = 0

	input := m.input.Value()

	word, start, end := wordBounds(input, m.input.Position())
	m.wordStart, m.wordEnd = start, end

	if strings.TrimSpace(input) == "" {
		m.matches = nil

		return m
	}

	m.matches = match(word, candidates(input, m.registry.Names()))

	return m
}

// cycle advances the selected candidate by delta and splices it into
// the input in place of the current word.
func (m model) cycle(delta int) model {
	if len(m.matches) == 0 {
		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
	} else {
		m.suggIdx = (m.suggIdx + delta + len(m.matches)) % len(m.matches)
	}

	chosen := m.matches[m.suggIdx].Str
	text := m.preTabText[:m.wordStart] + chosen + m.preTabText[m.wordEnd:]

	m.input.SetValue(text)
	m.input.SetCursor(m.wordStart + len(chosen))

	return m
}

// navigate moves through history by delta, restoring the in-progress
// line when walking past the newest entry.
func (m model) navigate(delta int) model {
	idx := m.historyIdx + delta
	if idx < 0 || idx > m.history.Len() {
		return m
	}

	m.historyIdx = idx

	if idx == m.history.Len() {
		m.input.SetValue("")
	} else if line, ok := m.history.Get(idx); ok {
		m.input.SetValue(line)
		m.input.SetCursor(len(line))
	}

	return m.resetCompletion()
}

func (m model) resetCompletion() model {
	m.matches = nil
	m.suggIdx = 0
	m.tabActive = false

	return m
}

// submit processes the current line: a control command, a declaration,
// or an expression to resolve.
func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	m.input.SetValue("")
	m = m.resetCompletion()

	if line == "" {
		return m, nil
	}

	if err := m.history.Write(line); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history write failed",
			slog.String("error", err.Error()))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatEcho(line))

	if cmd, ok := strings.CutPrefix(line, ":"); ok {
		return m.control(strings.TrimSpace(cmd), echo)
	}

	if decl := declPattern.FindStringSubmatch(line); decl != nil {
		m.registry = m.registry.Merge(
			lang.NewRegistry(map[string]string{decl[1]: decl[2]}),
		)

		return m, tea.Sequence(echo, tea.Println(
			resultStyle.Render(fmt.Sprintf("✔ %s declared", decl[1])),
		))
	}

	return m.resolve(line, echo)
}

// control dispatches a ':'-prefixed command.
func (m model) control(cmd string, echo tea.Cmd) (model, tea.Cmd) {
	switch cmd {
	case "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "list":
		return m, tea.Sequence(echo, tea.Println(
			hintStyle.Render(strings.Join(m.registry.Names(), "  ")),
		))

	case "flat":
		m.mode = lang.ModeFlat

		return m, tea.Sequence(echo, tea.Println(
			hintStyle.Render("expansion mode: flat"),
		))

	case "deep":
		m.mode = lang.ModeDeep

		return m, tea.Sequence(echo, tea.Println(
			hintStyle.Render("expansion mode: deep"),
		))

	case "clear":
		return m, tea.ClearScreen

	case "quit":
		m.quitting = true

		return m, tea.Quit

	default:
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("🗴 — " + ErrBadCommand.Error()),
		))
	}
}

// resolve parses and expands an expression, printing either the tagged
// result or a caret snippet for parse failures.
func (m model) resolve(line string, echo tea.Cmd) (model, tea.Cmd) {
	node, err := lang.ParseExpression(line)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render(lang.Snippet(err, line)),
		))
	}

	resolved, err := lang.Resolve(
		m.ctxFunc(), node, m.registry, m.mode,
		lang.WithPassBudget(m.passes),
		lang.WithLogger(m.logger),
	)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("🗴 — " + err.Error()),
		))
	}

	return m, tea.Sequence(echo, tea.Println(
		resultStyle.Render(lang.Format(resolved)),
	))
}
