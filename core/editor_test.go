package core

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertThenBackspaceRestoresBuffer(t *testing.T) {
	e := newTestEditor(t, "hello", 100)
	dispatch(t, e, repeat(CmdMoveRight, 2)...)

	out := dispatch(t, e, Insert("XYZ"))
	assert.Equal(t, "heXYZllo", out.Text)
	assert.Equal(t, Caret(5), out.Selection)

	out = dispatch(t, e, repeat(CmdBackspace, 3)...)
	assert.Equal(t, "hello", out.Text)
	assert.Equal(t, Caret(2), out.Selection)
}

func TestInsertReplacesSelection(t *testing.T) {
	e := newTestEditor(t, "hello world", 100)
	dispatch(t, e, repeat(CmdSelectRight, 5)...)

	out := dispatch(t, e, Insert("bye"))
	assert.Equal(t, "bye world", out.Text)
	assert.Equal(t, Caret(3), out.Selection)
	assert.Equal(t, IdleCaret, e.GetCursor().Phase)
}

func TestInsertMultibyte(t *testing.T) {
	e := newTestEditor(t, "", 100)

	out := dispatch(t, e, Insert("привет"), Command{Kind: CmdMoveLeft})
	assert.Equal(t, "привет", out.Text)
	assert.Equal(t, Caret(5), out.Selection)

	out = dispatch(t, e, Command{Kind: CmdBackspace})
	assert.Equal(t, "привт", out.Text)
}

func TestDeleteAtBoundariesIsNoop(t *testing.T) {
	e := newTestEditor(t, "ab", 100)

	assert.False(t, e.DeleteBackward())
	assert.Equal(t, "ab", e.Text())

	dispatch(t, e, Command{Kind: CmdMoveBufferEnd})
	assert.False(t, e.DeleteForward())
	assert.Equal(t, "ab", e.Text())

	assert.False(t, e.DeleteSelection())
}

func TestDeleteForward(t *testing.T) {
	e := newTestEditor(t, "abc", 100)
	dispatch(t, e, Command{Kind: CmdMoveRight})

	out := dispatch(t, e, Command{Kind: CmdDelete})
	assert.Equal(t, "ac", out.Text)
	assert.Equal(t, Caret(1), out.Selection)
}

func TestDeleteSelection(t *testing.T) {
	tests := []struct {
		name string
		kind CommandKind
	}{
		{"backspace", CmdBackspace},
		{"delete", CmdDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, "hello world", 100)
			dispatch(t, e, repeat(CmdMoveRight, 6)...)
			dispatch(t, e, repeat(CmdSelectRight, 5)...)

			out := dispatch(t, e, Command{Kind: tt.kind})
			assert.Equal(t, "hello ", out.Text)
			assert.Equal(t, Caret(6), out.Selection)
		})
	}
}

func TestSelectAllThenDeleteEmptiesBuffer(t *testing.T) {
	e := newTestEditor(t, "abc\ndef\nghi", 100)
	dispatch(t, e, Command{Kind: CmdSelectAll})

	assert.True(t, e.DeleteSelection())
	assert.Equal(t, "", e.Text())
	assert.Equal(t, Caret(0), e.Selection())
	assert.Len(t, e.Rows(), 1)
}

func TestNewlineTabSpace(t *testing.T) {
	e := newTestEditor(t, "", 100)

	out := dispatch(t, e, Insert("a"), Command{Kind: CmdNewline}, Command{Kind: CmdTab}, Command{Kind: CmdSpace}, Insert("b"))
	assert.Equal(t, "a\n     b", out.Text)
	assert.Equal(t, 1, out.CaretRow)

	e.SetTab("\t")
	out = dispatch(t, e, Command{Kind: CmdTab})
	assert.Equal(t, "a\n     b\t", out.Text)
}

func TestWithTabOption(t *testing.T) {
	e := New(fakeMetrics{}, WithTab("  "))
	out := dispatch(t, e, Command{Kind: CmdTab})

	assert.Equal(t, "  ", out.Text)
}

func TestEditRewrapsRows(t *testing.T) {
	e := newTestEditor(t, "hello", 8)
	require.Len(t, e.Rows(), 1)

	dispatch(t, e, Command{Kind: CmdMoveBufferEnd}, Insert(" world"))
	assert.Equal(t, []RowSpan{
		{Start: 0, End: 6, Text: "hello ", Soft: true},
		{Start: 6, End: 11, Text: "world"},
	}, e.Rows())
	assert.Equal(t, 1, e.CaretRow())
}

func TestEditInvalidatesColumnMemory(t *testing.T) {
	e := newTestEditor(t, "abcdef\nab", 100)
	dispatch(t, e, repeat(CmdMoveRight, 5)...)
	dispatch(t, e, Command{Kind: CmdMoveDown})
	require.True(t, e.GetCursor().Memory.Valid())

	dispatch(t, e, Insert("x"))
	assert.False(t, e.GetCursor().Memory.Valid())

	// Sticky width is measured afresh from the new caret, column 3.
	out := dispatch(t, e, Command{Kind: CmdMoveUp})
	assert.Equal(t, Caret(3), out.Selection)
}

func TestUnknownCommand(t *testing.T) {
	e := newTestEditor(t, "abc", 100)

	_, err := e.Dispatch(Command{Kind: CommandKind(999)})
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = e.Dispatch(Command{Kind: CmdInsertChar})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Equal(t, "abc", e.Text())
}

func TestSignals(t *testing.T) {
	e := newTestEditor(t, "", 100)
	drain(e)

	dispatch(t, e, Insert("a"))
	signals := drain(e)

	require.Len(t, signals, 2)
	content, ok := signals[0].(ContentSignal)
	require.True(t, ok)
	assert.Equal(t, "a", content.Value())

	cursor, ok := signals[1].(CursorSignal)
	require.True(t, ok)
	sel, row, scroll := cursor.Value()
	assert.Equal(t, Caret(1), sel)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0.0, scroll)
}

func TestErrorSignal(t *testing.T) {
	e := newTestEditor(t, "abc", 100)
	drain(e)

	_, err := e.Dispatch(Command{Kind: CmdPaste})
	require.Error(t, err)

	var ee *EditorError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, ErrPasteFailedId, ee.ID())

	signals := drain(e)
	require.Len(t, signals, 1)
	id, sigErr := signals[0].(ErrorSignal).Value()
	assert.Equal(t, ErrPasteFailedId, id)
	assert.ErrorIs(t, sigErr, ErrClipboard)
}

func TestFullSignalChannelDoesNotBlock(t *testing.T) {
	e := New(fakeMetrics{}, WithSignalBuffer(1))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 10 {
			e.Insert("x")
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("insert blocked on a full signal channel")
	}
	assert.Equal(t, "xxxxxxxxxx", e.Text())
}

func TestClipboard(t *testing.T) {
	cb := &fakeClipboard{}
	e := New(fakeMetrics{}, WithClipboard(cb))
	e.SetContent([]byte("hello world"))

	dispatch(t, e, repeat(CmdSelectRight, 5)...)
	dispatch(t, e, Command{Kind: CmdCopy})
	assert.Equal(t, "hello", cb.content)
	assert.Equal(t, "hello world", e.Text())

	dispatch(t, e, Command{Kind: CmdCut})
	assert.Equal(t, " world", e.Text())

	cb.content = "a\r\nb"
	out := dispatch(t, e, Command{Kind: CmdMoveBufferEnd}, Command{Kind: CmdPaste})
	assert.Equal(t, " worlda\nb", out.Text)
	assert.Equal(t, Caret(9), out.Selection)
}

func TestClipboardFailure(t *testing.T) {
	cb := &fakeClipboard{err: errClipboardDown}
	e := New(fakeMetrics{}, WithClipboard(cb))
	e.SetContent([]byte("abc"))
	dispatch(t, e, Command{Kind: CmdSelectAll})

	_, err := e.Dispatch(Command{Kind: CmdCut})
	assert.ErrorIs(t, err, errClipboardDown)
	assert.ErrorIs(t, err, ErrClipboard)
	assert.Equal(t, "abc", e.Text())
}

func TestSyncLayoutMismatchFallsBackToHardLines(t *testing.T) {
	e := New(fakeMetrics{})
	e.SetContent([]byte("ab\ncd"))

	err := e.SyncLayout(testGeometry(10), WrapFunc(func(string) []string { return []string{"zz"} }))
	assert.ErrorIs(t, err, ErrLayoutMismatch)
	assert.False(t, e.LayoutReady())
	assert.Len(t, e.Rows(), 2)
}

func TestSyncLayoutMismatchDropsColumnMemory(t *testing.T) {
	e := newTestEditor(t, "aaaa bbbb cccc dddd", 5)
	dispatch(t, e, Command{Kind: CmdMoveBufferEnd}, Command{Kind: CmdMoveUp})
	require.Equal(t, 2, e.CaretRow())

	err := e.SyncLayout(testGeometry(5), WrapFunc(func(string) []string { return []string{"zz"} }))
	require.ErrorIs(t, err, ErrLayoutMismatch)

	require.Len(t, e.Rows(), 1)
	assert.Less(t, e.CaretRow(), len(e.Rows()))
	assert.False(t, e.GetCursor().Memory.Valid())
	assert.False(t, e.GetCursor().Clamped)
	assert.Equal(t, 0, e.Output().CaretRow)
}

func TestInsertNormalizesLineEndings(t *testing.T) {
	e := newTestEditor(t, "", 100)

	out := dispatch(t, e, Insert("one\r\ntwo\rthree"))
	assert.Equal(t, "one\ntwo\nthree", out.Text)
	assert.Equal(t, Caret(13), out.Selection)
	assert.Len(t, e.Rows(), 3)
}

func TestBufferBoundaryIsRecovered(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		setup  []Command
		cmd    CommandKind
		logged error
	}{
		{"move left at start", "ab", nil, CmdMoveLeft, ErrStartOfBuffer},
		{"backspace at start", "ab", nil, CmdBackspace, ErrStartOfBuffer},
		{"move right at end", "ab", []Command{{Kind: CmdMoveBufferEnd}}, CmdMoveRight, ErrEndOfBuffer},
		{"delete at end", "ab", []Command{{Kind: CmdMoveBufferEnd}}, CmdDelete, ErrEndOfBuffer},
		{"empty buffer", "", nil, CmdMoveRight, ErrEndOfBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

			e := New(fakeMetrics{}, WithSignalBuffer(1000), WithLogger(logger))
			e.SetContent([]byte(tt.text))
			require.NoError(t, e.SyncLayout(testGeometry(100), nil))
			dispatch(t, e, tt.setup...)
			before := e.Output()
			drain(e)

			out, err := e.Dispatch(Command{Kind: tt.cmd})
			require.NoError(t, err)
			assert.Equal(t, before.Text, out.Text)
			assert.Equal(t, before.Selection, out.Selection)
			assert.Contains(t, logs.String(), tt.logged.Error())

			for _, signal := range drain(e) {
				assert.IsType(t, CursorSignal{}, signal)
			}
		})
	}
}

func TestSelectionEndsAreOrderedByEveryOperation(t *testing.T) {
	inverted := Selection{Start: 5, End: 1}

	tests := []struct {
		name          string
		run           func(t *testing.T, e Editor) string
		wantText      string
		wantSelection Selection
		wantResult    string
	}{
		{
			name:          "selected text",
			run:           func(t *testing.T, e Editor) string { return e.SelectedText() },
			wantText:      "hello world",
			wantSelection: inverted,
			wantResult:    "ello",
		},
		{
			name:          "delete selection",
			run:           func(t *testing.T, e Editor) string { e.DeleteSelection(); return "" },
			wantText:      "h world",
			wantSelection: Caret(1),
		},
		{
			name:          "insert",
			run:           func(t *testing.T, e Editor) string { e.Insert("X"); return "" },
			wantText:      "hX world",
			wantSelection: Caret(2),
		},
		{
			name:          "move left",
			run:           func(t *testing.T, e Editor) string { dispatch(t, e, Command{Kind: CmdMoveLeft}); return "" },
			wantText:      "hello world",
			wantSelection: Caret(0),
		},
		{
			name:          "move right",
			run:           func(t *testing.T, e Editor) string { dispatch(t, e, Command{Kind: CmdMoveRight}); return "" },
			wantText:      "hello world",
			wantSelection: Caret(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, "hello world", 100)
			e.(*editor).cursor = Cursor{Selection: inverted}

			assert.Equal(t, tt.wantResult, tt.run(t, e))
			assert.Equal(t, tt.wantText, e.Text())
			assert.Equal(t, tt.wantSelection, e.Selection())
		})
	}
}

func TestSyncLayoutReflowsAndKeepsCaret(t *testing.T) {
	e := newTestEditor(t, "hello world", 100)
	dispatch(t, e, repeat(CmdMoveRight, 8)...)
	require.Equal(t, 0, e.CaretRow())

	require.NoError(t, e.SyncLayout(testGeometry(8), GreedyWrapper{Metrics: fakeMetrics{}, Width: 8}))
	assert.Equal(t, Caret(8), e.Selection())
	assert.Equal(t, 1, e.CaretRow())

	out, err := e.Dispatch(Command{Kind: CmdLayoutChanged})
	require.NoError(t, err)
	assert.Equal(t, Caret(8), out.Selection)
}

func TestRun(t *testing.T) {
	e := newTestEditor(t, "", 100)
	src := NewSliceSource(Insert("a"), Insert("b"), Command{Kind: CmdNewline}, Command{Kind: CommandKind(999)}, Insert("c"))

	require.NoError(t, Run(context.Background(), e, src))
	assert.Equal(t, "ab\nc", e.Text())
}

func TestRunChannelSource(t *testing.T) {
	e := newTestEditor(t, "", 100)
	ch := make(chan Command, 3)
	ch <- Insert("x")
	ch <- Command{Kind: CmdSpace}
	ch <- Insert("y")
	close(ch)

	require.NoError(t, Run(context.Background(), e, ChannelSource(ch)))
	assert.Equal(t, "x y", e.Text())
}

func TestRunCancelled(t *testing.T) {
	e := newTestEditor(t, "", 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, e, ChannelSource(make(chan Command)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCommandForKey(t *testing.T) {
	tests := []struct {
		key  KeyEvent
		want Command
		ok   bool
	}{
		{KeyEvent{Rune: 'q'}, Insert("q"), true},
		{KeyEvent{Rune: ' '}, Command{Kind: CmdSpace}, true},
		{KeyEvent{Key: KeyEnter}, Command{Kind: CmdNewline}, true},
		{KeyEvent{Key: KeyTab}, Command{Kind: CmdTab}, true},
		{KeyEvent{Key: KeyBackspace}, Command{Kind: CmdBackspace}, true},
		{KeyEvent{Key: KeyDelete}, Command{Kind: CmdDelete}, true},
		{KeyEvent{Key: KeyLeft}, Command{Kind: CmdMoveLeft}, true},
		{KeyEvent{Key: KeyLeft, Modifiers: ModShift}, Command{Kind: CmdSelectLeft}, true},
		{KeyEvent{Key: KeyDown, Modifiers: ModShift}, Command{Kind: CmdSelectDown}, true},
		{KeyEvent{Key: KeyHome}, Command{Kind: CmdMoveHome}, true},
		{KeyEvent{Key: KeyEnd, Modifiers: ModCtrl}, Command{Kind: CmdMoveBufferEnd}, true},
		{KeyEvent{Rune: 'a', Modifiers: ModCtrl}, Command{Kind: CmdSelectAll}, true},
		{KeyEvent{Rune: 'v', Modifiers: ModCtrl}, Command{Kind: CmdPaste}, true},
		{KeyEvent{Rune: 'z', Modifiers: ModCtrl}, Command{}, false},
		{KeyEvent{Key: KeyEscape}, Command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := CommandForKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScrollIntoView(t *testing.T) {
	g := Geometry{Width: 100, Height: 30, LineHeight: 10}

	tests := []struct {
		name      string
		scrollTop float64
		row       int
		want      float64
	}{
		{"visible", 0, 1, 0},
		{"below", 0, 5, 30},
		{"above", 40, 2, 20},
		{"last row", 0, 9, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScrollIntoView(g, tt.scrollTop, tt.row, 10))
		})
	}

	first, last := VisibleRows(g, 30, 10)
	assert.Equal(t, 3, first)
	assert.Equal(t, 6, last)
}

func TestEditorScrollsCaretIntoView(t *testing.T) {
	e := newTestEditor(t, "0\n1\n2\n3\n4\n5\n6", 100)

	out := dispatch(t, e, repeat(CmdMoveDown, 4)...)
	assert.Equal(t, 4, out.CaretRow)
	assert.Equal(t, 20.0, out.ScrollTop)

	out = dispatch(t, e, Command{Kind: CmdMoveBufferStart})
	assert.Equal(t, 0.0, out.ScrollTop)
}

func drain(e Editor) []Signal {
	var signals []Signal
	for {
		select {
		case s := <-e.GetUpdateSignalChan():
			signals = append(signals, s)
		default:
			return signals
		}
	}
}

func TestParseCommandKind(t *testing.T) {
	kind, ok := ParseCommandKind("selectAll")
	require.True(t, ok)
	assert.Equal(t, CmdSelectAll, kind)
	assert.Equal(t, "selectAll", kind.String())

	_, ok = ParseCommandKind("unknown")
	assert.False(t, ok)
	_, ok = ParseCommandKind("fly")
	assert.False(t, ok)
}
