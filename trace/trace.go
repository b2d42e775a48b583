// Package trace prints a live transcript of an agent run to a writer.
// It is the non-interactive counterpart of a chat UI: streaming events and
// tool results are rendered line by line as they happen, with assistant
// text passed through the markdown renderer.
package trace

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	giazero "github.com/torayeff/giazero"
	"github.com/torayeff/giazero/markdown"
)

const (
	defaultWidth  = 100
	maxPreviewLen = 60
)

// styles maps a Theme to lipgloss styles for trace rendering.
type styles struct {
	userMsg  lipgloss.Style
	thinking lipgloss.Style
	toolCall lipgloss.Style
	err      lipgloss.Style
	success  lipgloss.Style
	muted    lipgloss.Style
}

func newStyles(t giazero.Theme) styles {
	return styles{
		userMsg:  lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		thinking: lipgloss.NewStyle().Foreground(ansiColor(t.Thinking)).Faint(true),
		toolCall: lipgloss.NewStyle().Foreground(ansiColor(t.ToolCall)),
		err:      lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		success:  lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		muted:    lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// Printer renders agent activity to a writer. Text and thinking deltas are
// buffered until a block boundary (a tool call, or an explicit Flush) so
// that markdown rendering sees whole blocks. Not safe for concurrent use.
type Printer struct {
	w        io.Writer
	width    int
	theme    giazero.Theme
	styles   styles
	text     strings.Builder
	thinking strings.Builder
}

// Option configures a Printer.
type Option func(*Printer)

// WithWidth sets the wrap width for rendered output.
func WithWidth(width int) Option {
	return func(p *Printer) {
		if width > 0 {
			p.width = width
		}
	}
}

// WithTheme sets the color theme.
func WithTheme(theme giazero.Theme) Option {
	return func(p *Printer) { p.theme = theme }
}

// New creates a Printer writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{
		w:     w,
		width: defaultWidth,
		theme: giazero.DefaultTheme(),
	}
	for _, o := range opts {
		o(p)
	}
	p.styles = newStyles(p.theme)
	return p
}

// PrintUser prints a user message with a "> " prefix.
func (p *Printer) PrintUser(text string) {
	p.line(p.styles.userMsg.Render("> ") + text)
	p.line("")
}

// HandleEvent renders one streaming event. Pass it to the agent loop as
// the event handler.
func (p *Printer) HandleEvent(evt giazero.Event) {
	switch e := evt.(type) {
	case giazero.EventThinkingDelta:
		p.flushText()
		p.thinking.WriteString(e.Delta)
	case giazero.EventTextDelta:
		p.flushThinking()
		p.text.WriteString(e.Delta)
	case giazero.EventToolCallBegin:
		p.Flush()
		p.line(p.styles.toolCall.Render("▶ " + e.Name))
	case giazero.EventToolCallEnd:
		if len(e.Call.Arguments) > 0 {
			p.line(p.styles.muted.Render("  " + preview(string(e.Call.Arguments))))
		}
	}
}

// HandleToolResult prints a one-line summary of a tool result. Pass it to
// the agent loop as the tool result handler.
func (p *Printer) HandleToolResult(msg giazero.ToolResultMessage) {
	icon := p.styles.success.Render("✓")
	if msg.IsError {
		icon = p.styles.err.Render("✗")
	}
	head := p.styles.toolCall.Render("▶ "+msg.ToolName) + " " + icon

	if text := resultText(msg.Content); text != "" {
		pv := preview(text)
		if msg.IsError {
			pv = p.styles.err.Render(pv)
		}
		head += "  " + pv
	}
	p.line(head)
	p.line("")
}

// Flush renders any buffered thinking and assistant text. Call it after the
// run completes to emit the final assistant message.
func (p *Printer) Flush() {
	p.flushThinking()
	p.flushText()
}

func (p *Printer) flushThinking() {
	if p.thinking.Len() == 0 {
		return
	}
	p.line(p.styles.thinking.Render("▶ Thinking"))
	wrapped := lipgloss.NewStyle().Width(p.width).Render(p.thinking.String())
	p.line(p.styles.thinking.Render(wrapped))
	p.line("")
	p.thinking.Reset()
}

func (p *Printer) flushText() {
	if p.text.Len() == 0 {
		return
	}
	p.line(markdown.Render(p.text.String(), p.width, p.theme))
	p.line("")
	p.text.Reset()
}

func (p *Printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

// preview reduces text to its first line, truncated to maxPreviewLen runes.
func preview(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	runes := []rune(text)
	if len(runes) > maxPreviewLen {
		return string(runes[:maxPreviewLen]) + "…"
	}
	return text
}

func resultText(blocks []giazero.ContentBlock) string {
	var b strings.Builder
	for _, block := range blocks {
		if tb, ok := block.(giazero.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return b.String()
}
