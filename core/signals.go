package core

type Signal any

// CursorSignal is sent after a command moved the caret or changed the selection.
type CursorSignal struct {
	selection Selection
	caretRow  int
	scrollTop float64
}

func (c CursorSignal) Value() (selection Selection, caretRow int, scrollTop float64) {
	selection = c.selection
	caretRow = c.caretRow
	scrollTop = c.scrollTop

	return selection, caretRow, scrollTop
}

// ContentSignal is sent after the buffer was mutated.
type ContentSignal struct {
	content string
}

func (c ContentSignal) Value() string {
	return c.content
}

// LayoutSignal is sent after the rows were rebuilt for new geometry.
type LayoutSignal struct {
	rows int
}

func (l LayoutSignal) Value() int {
	return l.rows
}

type ClipboardSignal struct {
	kind CommandKind
	size int
}

func (c ClipboardSignal) Value() (kind CommandKind, size int) {
	kind = c.kind
	size = c.size

	return kind, size
}

type ErrorSignal struct {
	id  ErrorId
	err error
}

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

func (e *editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default:
		e.logger.Debug("signal channel full, dropping signal", "signal", signal)
	}
}
