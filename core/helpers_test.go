package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeMetrics gives every character a width of 1 unless overridden.
type fakeMetrics struct {
	widths map[rune]float64
}

func (m fakeMetrics) RuneWidth(r rune) float64 {
	if r == '\n' {
		return 0
	}
	if w, ok := m.widths[r]; ok {
		return w
	}
	return 1
}

func (m fakeMetrics) Width(s string) float64 {
	total := 0.0
	for _, r := range s {
		total += m.RuneWidth(r)
	}
	return total
}

func (m fakeMetrics) LineHeight() float64 { return 10 }

func testGeometry(width float64) Geometry {
	return Geometry{Width: width, Height: 30, LineHeight: 10}
}

func newTestEditor(t *testing.T, text string, width float64) Editor {
	t.Helper()
	return newTestEditorWith(t, fakeMetrics{}, text, width)
}

func newTestEditorWith(t *testing.T, m fakeMetrics, text string, width float64) Editor {
	t.Helper()

	e := New(m, WithSignalBuffer(1000))
	e.SetContent([]byte(text))
	require.NoError(t, e.SyncLayout(testGeometry(width), GreedyWrapper{Metrics: m, Width: width}))

	return e
}

// dispatch runs commands and fails the test on the first error.
func dispatch(t *testing.T, e Editor, cmds ...Command) Output {
	t.Helper()

	var out Output
	for _, cmd := range cmds {
		var err error
		out, err = e.Dispatch(cmd)
		require.NoError(t, err, cmd.String())
	}
	return out
}

func repeat(kind CommandKind, n int) []Command {
	cmds := make([]Command, n)
	for i := range cmds {
		cmds[i] = Command{Kind: kind}
	}
	return cmds
}

type fakeClipboard struct {
	content string
	err     error
}

func (c *fakeClipboard) Write(s string) error {
	if c.err != nil {
		return c.err
	}
	c.content = s
	return nil
}

func (c *fakeClipboard) Read() (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.content, nil
}

var errClipboardDown = errors.New("no display")
