package adapter_bubbletea

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/vkeyboard/core"
)

// cellClass groups neighbouring cells that render with the same style.
type cellClass struct {
	token    chroma.TokenType
	selected bool
	caret    bool
}

// renderVisibleSlice renders the rows inside the viewport and hands them to it.
func (m *Model) renderVisibleSlice() {
	m.viewport.SetContent(strings.Join(m.visibleLines(), "\n"))
	m.viewport.YOffset = 0
}

// visibleLines renders the rows between the editor's scroll offset and the
// bottom of the text area.
func (m *Model) visibleLines() []string {
	if m.editor.GetBuffer().IsEmpty() && m.placeholder != "" {
		return []string{m.renderPlaceholder()}
	}

	state := m.editor.GetState()
	rows := m.editor.Rows()
	first, last := editor.VisibleRows(state.Geometry, state.ScrollTop, len(rows))

	text := m.editor.Text()
	runes := []rune(text)

	var tokens []chroma.TokenType
	if m.highlighter != nil {
		tokens = m.highlighter.TokenTypes(text)
	}

	lines := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		lines = append(lines, m.renderRow(i, rows[i], runes, tokens))
	}

	return lines
}

// renderRow renders one row. Cells hanging past the text width are cut; a
// caret among them is drawn in the spare last column.
func (m *Model) renderRow(index int, row editor.RowSpan, runes []rune, tokens []chroma.TokenType) string {
	sel := m.editor.Selection().Normalize()
	head := m.editor.GetCursor().Head()
	caretRow := m.editor.CaretRow()
	showCaret := m.isFocused && m.cursorVisible && index == caretRow

	textWidth := max(1, m.width-1)

	var (
		b     strings.Builder
		run   strings.Builder
		class cellClass
		used  int
	)

	flush := func() {
		if run.Len() > 0 {
			b.WriteString(m.styleFor(class).Render(run.String()))
			run.Reset()
		}
	}

	caretDrawn := false
	for off := row.Start; off < row.End && off < len(runes); off++ {
		cell := cellText(runes[off])
		w := int(m.metrics.Width(cell))
		if used+w > textWidth {
			break
		}
		used += w

		c := cellClass{selected: sel.Contains(off), caret: showCaret && off == head}
		if off < len(tokens) {
			c.token = tokens[off]
		}
		if c.caret {
			caretDrawn = true
		}

		if c != class {
			flush()
			class = c
		}
		run.WriteString(cell)
	}
	flush()

	if showCaret && !caretDrawn && head >= row.Start && head <= row.End {
		b.WriteString(m.theme.CursorStyle.Render(" "))
	}

	return b.String()
}

func (m *Model) styleFor(c cellClass) lipgloss.Style {
	if c.caret {
		return m.theme.CursorStyle
	}

	style := lipgloss.NewStyle()
	if m.highlighter != nil {
		style = m.highlighter.GetStyleForToken(c.token)
	}
	if c.selected {
		style = style.Background(m.theme.SelectionStyle.GetBackground())
	}

	return style
}

func (m *Model) renderPlaceholder() string {
	runes := []rune(m.placeholder)
	if !m.isFocused || !m.cursorVisible {
		return m.theme.PlaceholderStyle.Render(m.placeholder)
	}

	return m.theme.CursorStyle.Render(string(runes[:1])) +
		m.theme.PlaceholderStyle.Render(string(runes[1:]))
}

// cellText is what a buffer rune draws as. Tabs expand to spaces.
func cellText(r rune) string {
	if r == '\t' {
		return strings.Repeat(" ", editor.DefaultTabCells)
	}
	return string(r)
}
