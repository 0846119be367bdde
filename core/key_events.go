package core

import (
	"fmt"
	"strings"
)

// KeyCode identifies keys that do not produce a character.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyDelete
	KeyInsert
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyUnknown:   "Unknown",
}

func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SpecialKey(%d)", int(k))
}

// KeyModifiers is the set of modifier keys held during a keystroke.
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

func (m KeyModifiers) Has(mod KeyModifiers) bool {
	return m&mod != 0
}

// KeyEvent is a decoded key press: either a character in Rune or a Key.
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

func (k KeyEvent) String() string {
	var parts []string

	if k.Modifiers.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if k.Modifiers.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if k.Modifiers.Has(ModShift) {
		parts = append(parts, "Shift")
	}

	if k.Rune != 0 {
		parts = append(parts, string(k.Rune))
	} else {
		parts = append(parts, k.Key.String())
	}

	return strings.Join(parts, "+")
}
