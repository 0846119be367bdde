package core

import "fmt"

// CommandKind names a logical editing command.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdInsertChar
	CmdMoveLeft
	CmdMoveRight
	CmdMoveUp
	CmdMoveDown
	CmdSelectLeft
	CmdSelectRight
	CmdSelectUp
	CmdSelectDown
	CmdSelectAll
	CmdBackspace
	CmdDelete
	CmdNewline
	CmdTab
	CmdSpace
	CmdMoveHome
	CmdMoveEnd
	CmdMoveBufferStart
	CmdMoveBufferEnd
	CmdClick
	CmdCopy
	CmdCut
	CmdPaste
	CmdLayoutChanged
)

var commandNames = [...]string{
	CmdUnknown:         "unknown",
	CmdInsertChar:      "insertChar",
	CmdMoveLeft:        "moveLeft",
	CmdMoveRight:       "moveRight",
	CmdMoveUp:          "moveUp",
	CmdMoveDown:        "moveDown",
	CmdSelectLeft:      "selectLeft",
	CmdSelectRight:     "selectRight",
	CmdSelectUp:        "selectUp",
	CmdSelectDown:      "selectDown",
	CmdSelectAll:       "selectAll",
	CmdBackspace:       "backspace",
	CmdDelete:          "delete",
	CmdNewline:         "newline",
	CmdTab:             "tab",
	CmdSpace:           "space",
	CmdMoveHome:        "moveHome",
	CmdMoveEnd:         "moveEnd",
	CmdMoveBufferStart: "moveBufferStart",
	CmdMoveBufferEnd:   "moveBufferEnd",
	CmdClick:           "click",
	CmdCopy:            "copy",
	CmdCut:             "cut",
	CmdPaste:           "paste",
	CmdLayoutChanged:   "layoutChanged",
}

func (k CommandKind) String() string {
	if k >= 0 && int(k) < len(commandNames) {
		return commandNames[k]
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// ParseCommandKind looks a kind up by its name, as used in layout tables.
func ParseCommandKind(name string) (CommandKind, bool) {
	for k, n := range commandNames {
		if n == name && k != int(CmdUnknown) {
			return CommandKind(k), true
		}
	}
	return CmdUnknown, false
}

// Command is one decoded input event. Text carries the characters of
// CmdInsertChar; X and Y carry the point of CmdClick.
type Command struct {
	Kind CommandKind
	Text string
	X, Y float64
}

func Insert(text string) Command {
	return Command{Kind: CmdInsertChar, Text: text}
}

func Click(x, y float64) Command {
	return Command{Kind: CmdClick, X: x, Y: y}
}

func (c Command) String() string {
	switch c.Kind {
	case CmdInsertChar:
		return fmt.Sprintf("%s(%q)", c.Kind, c.Text)
	case CmdClick:
		return fmt.Sprintf("%s(%g,%g)", c.Kind, c.X, c.Y)
	default:
		return c.Kind.String()
	}
}

// CommandForKey decodes a key press into a command. The second result is
// false for keys that have no editing meaning.
func CommandForKey(key KeyEvent) (Command, bool) {
	shift := key.Modifiers.Has(ModShift)

	if key.Modifiers.Has(ModCtrl) {
		switch key.Rune {
		case 'a':
			return Command{Kind: CmdSelectAll}, true
		case 'c':
			return Command{Kind: CmdCopy}, true
		case 'x':
			return Command{Kind: CmdCut}, true
		case 'v':
			return Command{Kind: CmdPaste}, true
		}

		switch key.Key {
		case KeyHome:
			return Command{Kind: CmdMoveBufferStart}, true
		case KeyEnd:
			return Command{Kind: CmdMoveBufferEnd}, true
		}
		return Command{}, false
	}

	if key.Rune != 0 {
		if key.Rune == ' ' {
			return Command{Kind: CmdSpace}, true
		}
		return Insert(string(key.Rune)), true
	}

	switch key.Key {
	case KeyEnter:
		return Command{Kind: CmdNewline}, true
	case KeyTab:
		return Command{Kind: CmdTab}, true
	case KeySpace:
		return Command{Kind: CmdSpace}, true
	case KeyBackspace:
		return Command{Kind: CmdBackspace}, true
	case KeyDelete:
		return Command{Kind: CmdDelete}, true
	case KeyHome:
		return Command{Kind: CmdMoveHome}, true
	case KeyEnd:
		return Command{Kind: CmdMoveEnd}, true
	case KeyLeft:
		if shift {
			return Command{Kind: CmdSelectLeft}, true
		}
		return Command{Kind: CmdMoveLeft}, true
	case KeyRight:
		if shift {
			return Command{Kind: CmdSelectRight}, true
		}
		return Command{Kind: CmdMoveRight}, true
	case KeyUp:
		if shift {
			return Command{Kind: CmdSelectUp}, true
		}
		return Command{Kind: CmdMoveUp}, true
	case KeyDown:
		if shift {
			return Command{Kind: CmdSelectDown}, true
		}
		return Command{Kind: CmdMoveDown}, true
	}

	return Command{}, false
}
