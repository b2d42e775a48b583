// Package markdown renders markdown text to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling. The agent trace
// uses it to display assistant text the way the model formatted it.
package markdown

import giazero "github.com/torayeff/giazero"

// Render parses markdown source and returns ANSI-styled terminal output
// wrapped to width. Code blocks keep their original line breaks.
func Render(source string, width int, theme giazero.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}
