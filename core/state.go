package core

import (
	"errors"
	"log/slog"
)

// DefaultTab is inserted by the tab command.
const DefaultTab = "    "

// State is the editor state shared with the presentation layer.
type State struct {
	Geometry  Geometry
	ScrollTop float64 // Vertical scroll offset in pixels
	Tab       string  // Text inserted by the tab command

	// LayoutReady is set once geometry with a positive width and line
	// height has been synced.
	LayoutReady bool
}

func InitialState() State {
	return State{Tab: DefaultTab}
}

type editor struct {
	buffer  Buffer
	rows    *RowIndex
	cursor  Cursor
	metrics Metrics
	oracle  WrapOracle
	state   State

	clipboard    Clipboard
	logger       *slog.Logger
	updateSignal chan Signal
}

type Option func(*editor)

func WithClipboard(clipboard Clipboard) Option {
	return func(e *editor) {
		e.clipboard = clipboard
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithTab(tab string) Option {
	return func(e *editor) {
		e.state.Tab = tab
	}
}

// WithSignalBuffer sets the capacity of the update signal channel.
func WithSignalBuffer(size int) Option {
	return func(e *editor) {
		e.updateSignal = make(chan Signal, max(0, size))
	}
}

// New creates an editor measuring text with metrics.
func New(metrics Metrics, opts ...Option) Editor {
	e := &editor{
		buffer:       NewBuffer(),
		rows:         NewRowIndex(),
		metrics:      metrics,
		state:        InitialState(),
		logger:       slog.Default(),
		updateSignal: make(chan Signal, 100),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *editor) GetBuffer() Buffer {
	return e.buffer
}

func (e *editor) Text() string {
	return e.buffer.Text()
}

func (e *editor) GetState() State {
	return e.state
}

func (e *editor) SetTab(tab string) {
	e.state.Tab = tab
}

func (e *editor) GetUpdateSignalChan() <-chan Signal {
	return e.updateSignal
}

func (e *editor) GetCursor() Cursor {
	return e.cursor
}

func (e *editor) Selection() Selection {
	return e.cursor.Selection
}

func (e *editor) SelectedText() string {
	sel := e.cursor.Selection.Normalize()
	return e.buffer.Slice(sel.Start, sel.End)
}

func (e *editor) CaretRow() int {
	return e.cursor.Row(e.rows)
}

func (e *editor) Rows() []RowSpan {
	return e.rows.Rows()
}

func (e *editor) LayoutReady() bool {
	return e.state.LayoutReady
}

func (e *editor) Layout() Layout {
	return Layout{
		Rows:      e.rows,
		Metrics:   e.metrics,
		Length:    e.buffer.Len(),
		Geometry:  e.state.Geometry,
		ScrollTop: e.state.ScrollTop,
		Ready:     e.state.LayoutReady,
	}
}

// SetContent replaces the buffer and puts the caret at the start.
func (e *editor) SetContent(content []byte) {
	e.buffer.SetContent(content)
	e.rebuildRows()
	e.cursor = collapsed(0)
	e.state.ScrollTop = 0
	e.DispatchSignal(ContentSignal{content: e.buffer.Text()})
}

// SyncLayout applies new geometry after a resize or font change. Rows are
// rebuilt and the caret is kept at its offset with its memory dropped.
func (e *editor) SyncLayout(geometry Geometry, oracle WrapOracle) error {
	e.state.Geometry = geometry
	e.oracle = oracle
	e.state.LayoutReady = geometry.Ready() && e.metrics != nil

	err := e.rows.Rebuild(e.buffer.Text(), e.oracle)
	if err != nil {
		e.state.LayoutReady = false
		e.fallbackRows(err)
	}

	// The rows changed either way, so the cached projection is stale.
	e.cursor.Memory = ColumnMemory{}
	e.cursor.Clamped = false
	e.ScrollViewport()
	e.DispatchSignal(LayoutSignal{rows: e.rows.Len()})

	return err
}

// rebuildRows lays the buffer out again after a mutation. An oracle that
// disagrees with the buffer is dropped in favour of hard lines.
func (e *editor) rebuildRows() {
	if err := e.rows.Rebuild(e.buffer.Text(), e.oracle); err != nil {
		e.fallbackRows(err)
	}
}

func (e *editor) fallbackRows(err error) {
	e.logger.Warn("wrap oracle rejected, laying out hard lines only", "error", err)
	if err := e.rows.Rebuild(e.buffer.Text(), nil); err != nil {
		e.logger.Error("hard line layout failed", "error", err)
	}
}

// Apply installs the next cursor of t and follows up on its effects.
func (e *editor) Apply(t Transition) {
	e.cursor = t.Next

	for _, effect := range t.Effects {
		switch effect {
		case EffectScrollIntoView:
			e.ScrollViewport()
		case EffectBoundaryReached:
			e.logger.Debug("vertical move reached buffer boundary", "offset", t.Next.Head())
		}
	}
}

// Click places the caret at a point of the text surface. Before the layout
// is ready the caret stays and ErrLayoutNotReady is returned.
func (e *editor) Click(x, y float64) error {
	t, err := e.cursor.Click(x, y, e.Layout())
	if err != nil {
		return err
	}

	e.Apply(t)
	return nil
}

func (e *editor) Output() Output {
	return Output{
		Selection: e.cursor.Selection,
		CaretRow:  e.CaretRow(),
		ScrollTop: e.state.ScrollTop,
		Text:      e.buffer.Text(),
	}
}

// caretAt reports an empty selection sitting at offset.
func (e *editor) caretAt(offset int) bool {
	sel := e.cursor.Selection.clamp(e.buffer.Len())
	return sel.IsEmpty() && sel.Start == offset
}

// recoverable reports errors that leave the caret in place and are only logged.
func recoverable(err error) bool {
	return errors.Is(err, ErrLayoutNotReady) ||
		errors.Is(err, ErrStartOfBuffer) ||
		errors.Is(err, ErrEndOfBuffer)
}
