package core

import (
	"errors"
)

var (
	ErrEndOfBuffer     = errors.New("end of buffer")
	ErrStartOfBuffer   = errors.New("start of buffer")
	ErrInvalidPosition = errors.New("invalid position")
	ErrLayoutNotReady  = errors.New("layout not ready")
	ErrLayoutMismatch  = errors.New("rendered rows do not match buffer")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrClipboard       = errors.New("clipboard unavailable")
)

type ErrorId int

const (
	ErrEndOfBufferId ErrorId = iota
	ErrStartOfBufferId
	ErrInvalidPositionId
	ErrLayoutNotReadyId
	ErrLayoutMismatchId
	ErrUnknownCommandId
	ErrCopyFailedId
	ErrCutFailedId
	ErrPasteFailedId
)

// EditorError pairs an error with the id the presentation layer switches on.
type EditorError struct {
	id  ErrorId
	err error
}

func NewEditorError(id ErrorId, err error) *EditorError {
	return &EditorError{id: id, err: err}
}

func (e *EditorError) ID() ErrorId {
	return e.id
}

func (e *EditorError) Error() string {
	return e.err.Error()
}

func (e *EditorError) Unwrap() error {
	return e.err
}

// errorID maps a sentinel to its id; unknown errors report ErrInvalidPositionId.
func errorID(err error) ErrorId {
	var ee *EditorError
	switch {
	case errors.As(err, &ee):
		return ee.id
	case errors.Is(err, ErrEndOfBuffer):
		return ErrEndOfBufferId
	case errors.Is(err, ErrStartOfBuffer):
		return ErrStartOfBufferId
	case errors.Is(err, ErrLayoutNotReady):
		return ErrLayoutNotReadyId
	case errors.Is(err, ErrLayoutMismatch):
		return ErrLayoutMismatchId
	case errors.Is(err, ErrUnknownCommand):
		return ErrUnknownCommandId
	default:
		return ErrInvalidPositionId
	}
}

func (e *editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id: id, err: err}:
	default:
		e.logger.Debug("signal channel full, dropping error", "id", id, "error", err)
	}
}
