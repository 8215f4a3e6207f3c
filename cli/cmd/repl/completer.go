package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// ctrlCommands are the control commands recognized after a ':' prefix.
var ctrlCommands = []string{"help", "list", "flat", "deep", "clear", "quit"}

// isWordBoundary reports whether r delimits a completable name. The
// reference and action sigils are boundaries so the name after them
// completes on its own, as are all operator and bracket characters.
func isWordBoundary(r rune) bool {
	switch r {
	case '$', '#', '?', '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'*', '@', '<', '>', '=', '!',
		'|', ',', ':', '"', '-':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. An empty word means the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the completion pool for the current input: control
// commands when the line begins with ':', registry names otherwise.
func candidates(input string, names []string) []string {
	if strings.HasPrefix(strings.TrimSpace(input), ":") {
		return ctrlCommands
	}

	return names
}

// match runs fuzzy completion of word against the candidate pool.
// An empty word matches everything in pool order.
func match(word string, pool []string) fuzzy.Matches {
	if word == "" {
		matches := make(fuzzy.Matches, len(pool))
		for i, s := range pool {
			matches[i] = fuzzy.Match{Str: s, Index: i}
		}

		return matches
	}

	return fuzzy.Find(word, pool)
}

// renderCandidateBar renders matches as a single-line bar, highlighting
// the selected candidate and truncating to width.
func renderCandidateBar(matches fuzzy.Matches, selected, width int) string {
	var b strings.Builder

	for i, m := range matches {
		if i > 0 {
			b.WriteString("  ")
		}

		if i == selected {
			b.WriteString(selectedStyle.Render(m.Str))
		} else {
			b.WriteString(suggestionStyle.Render(m.Str))
		}

		if b.Len() > width*4 {
			// Styled text carries escape sequences, so the byte length
			// overshoots the rendered width. Stop well past the visible
			// limit and let the terminal clip the rest.
			break
		}
	}

	return b.String()
}
