package keyboard

import (
	"slices"

	"golang.org/x/text/language"
)

// Effect is a presentation update a state transition asks for.
type Effect int

const (
	// EffectRelabelKeys: the character keys show values of a new level or language.
	EffectRelabelKeys Effect = iota + 1
	EffectCapsIndicator
	EffectLanguageChanged
)

// State is the modifier state of the keyboard.
type State struct {
	Shift    bool
	CapsLock bool
	Language language.Tag
}

type Transition struct {
	Next    State
	Effects []Effect
}

// Level derives the active level; caps and shift together win over either.
func (s State) Level() Level {
	switch {
	case s.CapsLock && s.Shift:
		return LevelCapsAndShift
	case s.Shift:
		return LevelShift
	case s.CapsLock:
		return LevelCaps
	default:
		return LevelKey
	}
}

func (s State) withShift(shift bool) Transition {
	next := s
	next.Shift = shift

	t := Transition{Next: next}
	if next.Level() != s.Level() {
		t.Effects = append(t.Effects, EffectRelabelKeys)
	}
	return t
}

func (s State) PressShift() Transition {
	return s.withShift(true)
}

func (s State) ReleaseShift() Transition {
	return s.withShift(false)
}

// ToggleShift latches shift on or off, as a click on the on-screen key does.
func (s State) ToggleShift() Transition {
	return s.withShift(!s.Shift)
}

func (s State) ToggleCaps() Transition {
	next := s
	next.CapsLock = !s.CapsLock

	return Transition{Next: next, Effects: []Effect{EffectCapsIndicator, EffectRelabelKeys}}
}

// SwitchLanguage moves to the language after the current one in order.
func (s State) SwitchLanguage(order []language.Tag) Transition {
	if len(order) == 0 {
		return Transition{Next: s}
	}

	next := s
	i := slices.Index(order, s.Language)
	next.Language = order[(i+1)%len(order)]

	if next.Language == s.Language {
		return Transition{Next: next}
	}
	return Transition{Next: next, Effects: []Effect{EffectLanguageChanged, EffectRelabelKeys}}
}

// Blur releases shift when the window loses focus. Caps lock is a toggle and
// survives.
func (s State) Blur() Transition {
	return s.withShift(false)
}
