package core

import (
	"fmt"
	"unicode/utf8"
)

// Insert replaces the selection with text and leaves the caret after it.
// Line endings in text are normalized first.
func (e *editor) Insert(text string) {
	text = NormalizeNewlines(text)
	sel := e.cursor.Selection.clamp(e.buffer.Len())

	if err := e.buffer.DeleteRange(sel.Start, sel.End); err != nil {
		e.logger.Error("insert: delete selection", "error", err)
		return
	}
	if err := e.buffer.InsertAt(sel.Start, []rune(text)); err != nil {
		e.logger.Error("insert", "error", err)
		return
	}

	e.afterEdit(sel.Start + utf8.RuneCountInString(text))
}

// DeleteBackward removes the selection, or the character before the caret.
// It reports false when nothing was removed.
func (e *editor) DeleteBackward() bool {
	sel := e.cursor.Selection.clamp(e.buffer.Len())
	if !sel.IsEmpty() {
		return e.DeleteSelection()
	}
	if sel.Start == 0 {
		return false
	}

	return e.deleteRange(sel.Start-1, sel.Start)
}

// DeleteForward removes the selection, or the character after the caret.
func (e *editor) DeleteForward() bool {
	sel := e.cursor.Selection.clamp(e.buffer.Len())
	if !sel.IsEmpty() {
		return e.DeleteSelection()
	}
	if sel.End >= e.buffer.Len() {
		return false
	}

	return e.deleteRange(sel.Start, sel.Start+1)
}

// DeleteSelection removes a non-degenerate selection.
func (e *editor) DeleteSelection() bool {
	sel := e.cursor.Selection.clamp(e.buffer.Len())
	if sel.IsEmpty() {
		return false
	}

	return e.deleteRange(sel.Start, sel.End)
}

func (e *editor) deleteRange(start, end int) bool {
	if err := e.buffer.DeleteRange(start, end); err != nil {
		e.logger.Error("delete", "start", start, "end", end, "error", err)
		return false
	}

	e.afterEdit(start)
	return true
}

// afterEdit rebuilds the rows and collapses the caret at offset. Any column
// memory is dropped with the old cursor.
func (e *editor) afterEdit(offset int) {
	e.rebuildRows()
	e.cursor = collapsed(offset)
	e.ScrollViewport()
	e.DispatchSignal(ContentSignal{content: e.buffer.Text()})
}

func (e *editor) Copy() error {
	if e.clipboard == nil {
		return NewEditorError(ErrCopyFailedId, ErrClipboard)
	}

	text := e.SelectedText()
	if text == "" {
		return nil
	}

	if err := e.clipboard.Write(text); err != nil {
		return NewEditorError(ErrCopyFailedId, fmt.Errorf("%w: %w", ErrClipboard, err))
	}

	e.DispatchSignal(ClipboardSignal{kind: CmdCopy, size: utf8.RuneCountInString(text)})
	return nil
}

func (e *editor) Cut() error {
	if e.clipboard == nil {
		return NewEditorError(ErrCutFailedId, ErrClipboard)
	}

	text := e.SelectedText()
	if text == "" {
		return nil
	}

	if err := e.clipboard.Write(text); err != nil {
		return NewEditorError(ErrCutFailedId, fmt.Errorf("%w: %w", ErrClipboard, err))
	}

	e.DeleteSelection()
	e.DispatchSignal(ClipboardSignal{kind: CmdCut, size: utf8.RuneCountInString(text)})
	return nil
}

func (e *editor) Paste() error {
	if e.clipboard == nil {
		return NewEditorError(ErrPasteFailedId, ErrClipboard)
	}

	text, err := e.clipboard.Read()
	if err != nil {
		return NewEditorError(ErrPasteFailedId, fmt.Errorf("%w: %w", ErrClipboard, err))
	}
	if text == "" {
		return nil
	}

	text = NormalizeNewlines(text)
	e.Insert(text)
	e.DispatchSignal(ClipboardSignal{kind: CmdPaste, size: utf8.RuneCountInString(text)})
	return nil
}
