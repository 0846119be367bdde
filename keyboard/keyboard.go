package keyboard

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/ionut-t/vkeyboard/core"
)

// Keyboard is the on-screen keyboard model: layouts, modifier state and key
// repeat. It turns key codes into editor commands.
type Keyboard struct {
	common   *Common
	layouts  map[language.Tag]*Layout
	order    []language.Tag
	base     language.Tag
	state    State
	repeater *Repeater
	logger   *slog.Logger
}

type Option func(*Keyboard)

func WithRepeat(delay, period time.Duration) Option {
	return func(k *Keyboard) {
		k.repeater = NewRepeater(delay, period)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(k *Keyboard) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// New loads the bundled layouts and selects lang, a BCP 47 code.
func New(lang string, opts ...Option) (*Keyboard, error) {
	common, layouts, order, err := LoadLayouts()
	if err != nil {
		return nil, err
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("keyboard language: %w", err)
	}
	if _, ok := layouts[tag]; !ok {
		return nil, fmt.Errorf("keyboard language %s: no layout", tag)
	}

	k := &Keyboard{
		common:   common,
		layouts:  layouts,
		order:    order,
		base:     language.English,
		state:    State{Language: tag},
		repeater: NewRepeater(DefaultRepeatDelay, DefaultRepeatPeriod),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(k)
	}

	return k, nil
}

func (k *Keyboard) State() State {
	return k.state
}

func (k *Keyboard) Language() language.Tag {
	return k.state.Language
}

func (k *Keyboard) Languages() []language.Tag {
	return k.order
}

func (k *Keyboard) Layout() *Layout {
	return k.layouts[k.state.Language]
}

func (k *Keyboard) Rows() [][]string {
	return k.common.Rows
}

func (k *Keyboard) Repeater() *Repeater {
	return k.repeater
}

// Apply installs the next state of t and returns its effects.
func (k *Keyboard) Apply(t Transition) []Effect {
	if t.Next != k.state {
		k.logger.Debug("keyboard state changed",
			"level", t.Next.Level(),
			"language", t.Next.Language.String())
	}
	k.state = t.Next
	return t.Effects
}

// Label is what the key with code shows at the current level and language.
func (k *Keyboard) Label(code string) string {
	if s, ok := k.common.Specials[code]; ok {
		return s.Label
	}
	if v, ok := k.Layout().Value(code, k.state.Level()); ok {
		return v
	}
	return code
}

// IsRepeatable reports whether holding the key repeats it. Character keys
// repeat, special keys only when marked so.
func (k *Keyboard) IsRepeatable(code string) bool {
	if s, ok := k.common.Specials[code]; ok {
		return s.Repeatable
	}
	_, ok := k.Layout().Value(code, LevelKey)
	return ok
}

// IsModifier reports whether code changes the keyboard state instead of
// producing a command.
func (k *Keyboard) IsModifier(code string) bool {
	s, ok := k.common.Specials[code]
	return ok && s.Modifier != ""
}

// Resolve returns the command a press of code produces in the current state.
// Modifier keys and unknown codes produce none.
func (k *Keyboard) Resolve(code string) (core.Command, bool) {
	if s, ok := k.common.Specials[code]; ok {
		if s.Command == core.CmdUnknown {
			return core.Command{}, false
		}
		return core.Command{Kind: k.shifted(s.Command)}, true
	}

	v, ok := k.Layout().Value(code, k.state.Level())
	if !ok {
		return core.Command{}, false
	}
	return core.Insert(v), true
}

// shifted turns arrow moves into selection extends while shift is held.
func (k *Keyboard) shifted(kind core.CommandKind) core.CommandKind {
	if !k.state.Shift {
		return kind
	}

	switch kind {
	case core.CmdMoveLeft:
		return core.CmdSelectLeft
	case core.CmdMoveRight:
		return core.CmdSelectRight
	case core.CmdMoveUp:
		return core.CmdSelectUp
	case core.CmdMoveDown:
		return core.CmdSelectDown
	default:
		return kind
	}
}

// Press handles a key going down. virtual is true for clicks on the
// on-screen keyboard: shift then latches until the next character key.
func (k *Keyboard) Press(code string, virtual bool) (core.Command, []Effect, bool) {
	if s, ok := k.common.Specials[code]; ok && s.Modifier != "" {
		switch s.Modifier {
		case ModifierShift:
			if virtual {
				return core.Command{}, k.Apply(k.state.ToggleShift()), false
			}
			return core.Command{}, k.Apply(k.state.PressShift()), false
		case ModifierCaps:
			return core.Command{}, k.Apply(k.state.ToggleCaps()), false
		case ModifierLanguage:
			return core.Command{}, k.Apply(k.state.SwitchLanguage(k.order)), false
		default:
			return core.Command{}, nil, false
		}
	}

	cmd, ok := k.Resolve(code)
	if !ok {
		return core.Command{}, nil, false
	}

	var effects []Effect
	if virtual && k.state.Shift {
		effects = k.Apply(k.state.ReleaseShift())
	}
	return cmd, effects, true
}

// Release handles a key going up.
func (k *Keyboard) Release(code string) []Effect {
	k.repeater.Stop()

	if s, ok := k.common.Specials[code]; ok && s.Modifier == ModifierShift {
		return k.Apply(k.state.ReleaseShift())
	}
	return nil
}

// SwitchLanguage moves to the next layout.
func (k *Keyboard) SwitchLanguage() []Effect {
	return k.Apply(k.state.SwitchLanguage(k.order))
}

// Blur stops any key repeat and releases shift.
func (k *Keyboard) Blur() []Effect {
	k.repeater.Stop()
	return k.Apply(k.state.Blur())
}

// Translate maps a character typed on a physical keyboard with the base
// layout to the character the same key gives in the current layout. The
// on-screen shift and caps lock apply on top of the physical shift.
func (k *Keyboard) Translate(r rune) (string, bool) {
	base, ok := k.layouts[k.base]
	if !ok {
		return "", false
	}

	code, level, ok := base.Find(string(r))
	if !ok {
		if k.state.Language == k.base {
			return string(r), true
		}
		return "", false
	}

	return k.Layout().Value(code, combineLevels(level, k.state))
}

// combineLevels merges the level a physical key was found at with the
// on-screen modifiers.
func combineLevels(physical Level, s State) Level {
	shift := physical == LevelShift || s.Shift
	return State{Shift: shift, CapsLock: s.CapsLock}.Level()
}
