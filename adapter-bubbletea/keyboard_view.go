package adapter_bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

const (
	keyGap        = 1
	spaceCapWidth = 17
)

// keyCap is where an on-screen key is drawn: line is relative to the top of
// the keyboard, x0 and x1 bound its columns.
type keyCap struct {
	code  string
	label string
	line  int
	x0    int
	x1    int
}

// keyCaps lays the keyboard rows out with the current labels.
func (m *Model) keyCaps() []keyCap {
	var caps []keyCap

	for line, row := range m.keyboard.Rows() {
		x := 0
		for _, code := range row {
			label := m.keyboard.Label(code)

			width := uniseg.StringWidth(label) + 2
			if code == "Space" {
				width = spaceCapWidth
			}

			caps = append(caps, keyCap{code: code, label: label, line: line, x0: x, x1: x + width})
			x += width + keyGap
		}
	}

	return caps
}

// keyAt returns the code of the key drawn at column x of keyboard line y.
func (m *Model) keyAt(x, y int) (string, bool) {
	for _, c := range m.keyCaps() {
		if c.line == y && x >= c.x0 && x < c.x1 {
			return c.code, true
		}
	}
	return "", false
}

func (m *Model) keyStyle(code string) lipgloss.Style {
	state := m.keyboard.State()

	switch {
	case code == m.pressedKey:
		return m.theme.KeyPressedStyle
	case state.Shift && (code == "ShiftLeft" || code == "ShiftRight"):
		return m.theme.KeyActiveStyle
	case state.CapsLock && code == "CapsLock":
		return m.theme.KeyActiveStyle
	default:
		return m.theme.KeyStyle
	}
}

func (m *Model) renderKeyboard() string {
	lines := make([]strings.Builder, len(m.keyboard.Rows()))

	for _, c := range m.keyCaps() {
		b := &lines[c.line]
		if c.x0 > 0 {
			b.WriteString(strings.Repeat(" ", keyGap))
		}

		width := c.x1 - c.x0
		pad := max(0, width-uniseg.StringWidth(c.label))
		left := pad / 2
		face := strings.Repeat(" ", left) + c.label + strings.Repeat(" ", pad-left)

		b.WriteString(m.keyStyle(c.code).Render(face))
	}

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = lipgloss.NewStyle().MaxWidth(max(1, m.width)).Render(lines[i].String())
	}

	return strings.Join(rendered, "\n")
}
