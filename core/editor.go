package core

import "context"

// Clipboard is the host clipboard used by copy, cut and paste.
type Clipboard interface {
	Write(string) error
	Read() (string, error)
}

// Editor is a single text buffer with one caret/selection, laid out into
// rows by a Metrics provider and an optional WrapOracle.
type Editor interface {
	GetBuffer() Buffer
	Text() string
	SetContent(content []byte)

	// SyncLayout applies new geometry and wrap oracle and rebuilds the rows.
	SyncLayout(geometry Geometry, oracle WrapOracle) error
	LayoutReady() bool
	Rows() []RowSpan
	Layout() Layout

	GetCursor() Cursor
	Selection() Selection
	SelectedText() string
	CaretRow() int
	ScrollViewport()

	Insert(text string)
	DeleteBackward() bool
	DeleteForward() bool
	DeleteSelection() bool
	Copy() error
	Cut() error
	Paste() error

	// Apply runs a cursor transition produced against Layout.
	Apply(t Transition)
	Click(x, y float64) error

	Dispatch(cmd Command) (Output, error)
	Output() Output

	GetState() State
	SetTab(tab string)

	GetUpdateSignalChan() <-chan Signal
	DispatchSignal(signal Signal)
	DispatchError(id ErrorId, err error)
}

// Output is what the presentation layer needs after each command.
type Output struct {
	Selection Selection
	CaretRow  int
	ScrollTop float64
	Text      string
}

// EventSource produces commands for Run. It returns io.EOF when exhausted.
type EventSource interface {
	Next(ctx context.Context) (Command, error)
}
