package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	giazero "github.com/torayeff/giazero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type renderer struct {
	heading lipgloss.Style
	bold    lipgloss.Style
	italic  lipgloss.Style
	dim     lipgloss.Style
	link    lipgloss.Style
}

func newRenderer(theme giazero.Theme) *renderer {
	return &renderer{
		heading: lipgloss.NewStyle().Foreground(themeColor(theme.Accent)).Bold(true),
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),
		dim:     lipgloss.NewStyle().Foreground(themeColor(theme.Muted)).Faint(true),
		link:    lipgloss.NewStyle().Underline(true),
	}
}

func themeColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *renderer) render(source []byte, width int) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c, source, width, &buf)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// blockGap terminates a block, adding a blank line when more blocks follow.
func blockGap(node ast.Node, buf *bytes.Buffer) {
	buf.WriteString("\n")
	if node.NextSibling() != nil {
		buf.WriteString("\n")
	}
}

func (r *renderer) block(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph:
		buf.WriteString(lipgloss.NewStyle().Width(width).Render(r.inlines(n, source)))
		blockGap(n, buf)

	case *ast.Heading:
		styled := r.heading.Render(r.inlines(n, source))
		buf.WriteString(lipgloss.NewStyle().Width(width).Render(styled))
		blockGap(n, buf)

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(source)); lang != "" {
			buf.WriteString(r.dim.Render(lang))
			buf.WriteString("\n")
		}
		r.codeLines(n, source, buf)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.CodeBlock:
		r.codeLines(n, source, buf)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.List:
		r.list(n, source, width, buf, 0)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.ThematicBreak:
		buf.WriteString("---")
		blockGap(n, buf)

	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}

	default:
		// Blockquotes and anything else unrecognized: render children
		// unstyled rather than dropping content.
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.block(c, source, width, buf)
		}
	}
}

// codeLines writes code block content with a gutter, preserving line breaks.
func (r *renderer) codeLines(node ast.Node, source []byte, buf *bytes.Buffer) {
	gutter := r.dim.Render("│") + " "
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		content := strings.TrimRight(string(seg.Value(source)), "\n")
		buf.WriteString(gutter + content)
		buf.WriteString("\n")
	}
}

func (r *renderer) list(node *ast.List, source []byte, width int, buf *bytes.Buffer, depth int) {
	num := node.Start
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		var marker string
		if node.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		} else {
			marker = "- "
		}
		indent := strings.Repeat("  ", depth)

		var body bytes.Buffer
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				body.WriteString(r.inlines(in, source))
			case *ast.List:
				if body.Len() > 0 {
					r.listItem(buf, indent, marker, body.String(), width)
					body.Reset()
				}
				r.list(in, source, width, buf, depth+1)
				marker = strings.Repeat(" ", len(marker))
			default:
				r.block(ic, source, width, &body)
			}
		}
		if body.Len() > 0 {
			r.listItem(buf, indent, marker, body.String(), width)
		}
	}
}

// listItem writes one item, indenting continuation lines under the marker.
func (r *renderer) listItem(buf *bytes.Buffer, indent, marker, content string, width int) {
	prefix := indent + marker
	itemWidth := width - len(prefix)
	if itemWidth < 10 {
		itemWidth = 10
	}
	wrapped := lipgloss.NewStyle().Width(itemWidth).Render(content)
	continuation := strings.Repeat(" ", len(prefix))
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix + line + "\n")
		} else {
			buf.WriteString(continuation + line + "\n")
		}
	}
}

// inlines collects styled inline text from a node's children.
func (r *renderer) inlines(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.inline(c, source, &buf)
	}
	return buf.String()
}

func (r *renderer) inline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		if n.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		if n.HardLineBreak() {
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.inlines(n, source)
		if n.Level == 1 {
			buf.WriteString(r.italic.Render(inner))
		} else {
			buf.WriteString(r.bold.Render(inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(r.bold.Render(r.inlines(n, source)))

	case *ast.Link:
		buf.WriteString(r.link.Render(r.inlines(n, source)))
		buf.WriteString(" ")
		buf.WriteString(r.dim.Render("(" + string(n.Destination) + ")"))

	case *ast.AutoLink:
		buf.WriteString(r.link.Render(string(n.URL(source))))

	case *ast.Image:
		buf.WriteString(r.link.Render(r.inlines(n, source)))
		buf.WriteString(" ")
		buf.WriteString(r.dim.Render("(" + string(n.Destination) + ")"))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(source))
		}

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.inline(c, source, buf)
		}
	}
}
