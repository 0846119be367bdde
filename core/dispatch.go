package core

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Dispatch runs one command to completion and reports the resulting state.
// Navigation that cannot be performed leaves the caret where it is and is
// not an error; unknown commands and clipboard failures are.
func (e *editor) Dispatch(cmd Command) (Output, error) {
	before := e.cursor.Selection
	l := e.Layout()

	var err error
	switch cmd.Kind {
	case CmdInsertChar:
		if cmd.Text == "" {
			err = fmt.Errorf("%w: empty insert", ErrUnknownCommand)
			break
		}
		e.Insert(cmd.Text)
	case CmdNewline:
		e.Insert("\n")
	case CmdTab:
		e.Insert(e.state.Tab)
	case CmdSpace:
		e.Insert(" ")
	case CmdBackspace:
		if e.caretAt(0) {
			err = ErrStartOfBuffer
		}
		e.DeleteBackward()
	case CmdDelete:
		if e.caretAt(e.buffer.Len()) {
			err = ErrEndOfBuffer
		}
		e.DeleteForward()

	case CmdMoveLeft:
		if e.caretAt(0) {
			err = ErrStartOfBuffer
		}
		e.Apply(e.cursor.MoveLeft(l))
	case CmdMoveRight:
		if e.caretAt(e.buffer.Len()) {
			err = ErrEndOfBuffer
		}
		e.Apply(e.cursor.MoveRight(l))
	case CmdMoveHome:
		e.Apply(e.cursor.MoveRowStart(l))
	case CmdMoveEnd:
		e.Apply(e.cursor.MoveRowEnd(l))
	case CmdMoveBufferStart:
		e.Apply(e.cursor.MoveBufferStart(l))
	case CmdMoveBufferEnd:
		e.Apply(e.cursor.MoveBufferEnd(l))
	case CmdSelectLeft:
		e.Apply(e.cursor.SelectLeft(l))
	case CmdSelectRight:
		e.Apply(e.cursor.SelectRight(l))
	case CmdSelectAll:
		e.Apply(e.cursor.SelectAll(l))

	case CmdMoveUp:
		err = e.applyVertical(e.cursor.MoveUp(l))
	case CmdMoveDown:
		err = e.applyVertical(e.cursor.MoveDown(l))
	case CmdSelectUp:
		err = e.applyVertical(e.cursor.SelectUp(l))
	case CmdSelectDown:
		err = e.applyVertical(e.cursor.SelectDown(l))
	case CmdClick:
		err = e.Click(cmd.X, cmd.Y)

	case CmdCopy:
		err = e.Copy()
	case CmdCut:
		err = e.Cut()
	case CmdPaste:
		err = e.Paste()

	case CmdLayoutChanged:
		err = e.SyncLayout(e.state.Geometry, e.oracle)

	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
	}

	if err != nil && recoverable(err) {
		e.logger.Debug("command left caret in place", "command", cmd.String(), "error", err)
		err = nil
	}
	if err != nil {
		e.DispatchError(errorID(err), err)
	}

	out := e.Output()
	if out.Selection != before {
		e.DispatchSignal(CursorSignal{selection: out.Selection, caretRow: out.CaretRow, scrollTop: out.ScrollTop})
	}

	return out, err
}

func (e *editor) applyVertical(t Transition, err error) error {
	if err != nil {
		return err
	}
	e.Apply(t)
	return nil
}

// Run feeds commands from source into e until the source is exhausted or ctx
// is cancelled. Command errors are published as ErrorSignal and do not stop
// the loop.
func Run(ctx context.Context, e Editor, source EventSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, err := source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		// Dispatch publishes its own error signal.
		_, _ = e.Dispatch(cmd)
	}
}

// ChannelSource is an EventSource reading from a channel. A closed channel
// ends the stream.
type ChannelSource <-chan Command

func (c ChannelSource) Next(ctx context.Context) (Command, error) {
	select {
	case <-ctx.Done():
		return Command{}, ctx.Err()
	case cmd, ok := <-c:
		if !ok {
			return Command{}, io.EOF
		}
		return cmd, nil
	}
}

// SliceSource replays a fixed list of commands.
type SliceSource struct {
	commands []Command
	pos      int
}

func NewSliceSource(commands ...Command) *SliceSource {
	return &SliceSource{commands: commands}
}

func (s *SliceSource) Next(ctx context.Context) (Command, error) {
	if err := ctx.Err(); err != nil {
		return Command{}, err
	}
	if s.pos >= len(s.commands) {
		return Command{}, io.EOF
	}

	cmd := s.commands[s.pos]
	s.pos++
	return cmd, nil
}
