package keyboard

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/ionut-t/vkeyboard/core"
)

//go:embed layouts/*.toml
var layoutFiles embed.FS

const commonFile = "common.toml"

// Level selects which of a key's four values is active.
type Level string

const (
	LevelKey          Level = "key"
	LevelShift        Level = "shift"
	LevelCaps         Level = "caps"
	LevelCapsAndShift Level = "capsAndShift"
)

func (l Level) index() int {
	switch l {
	case LevelShift:
		return 1
	case LevelCaps:
		return 2
	case LevelCapsAndShift:
		return 3
	default:
		return 0
	}
}

// Layout holds the language dependent values of the character keys.
type Layout struct {
	Language language.Tag
	Name     string
	keys     map[string][4]string
}

// Value returns the character the key with code produces at level.
func (l *Layout) Value(code string, level Level) (string, bool) {
	v, ok := l.keys[code]
	if !ok {
		return "", false
	}
	return v[level.index()], true
}

// Find returns the code and level producing value.
func (l *Layout) Find(value string) (code string, level Level, ok bool) {
	for _, lvl := range []Level{LevelKey, LevelShift} {
		for c, v := range l.keys {
			if v[lvl.index()] == value {
				return c, lvl, true
			}
		}
	}
	return "", LevelKey, false
}

type layoutFile struct {
	Language string              `toml:"language"`
	Name     string              `toml:"name"`
	Keys     map[string][]string `toml:"keys"`
}

// ModifierKind is the keyboard state a special key changes.
type ModifierKind string

const (
	ModifierShift    ModifierKind = "shift"
	ModifierCaps     ModifierKind = "caps"
	ModifierLanguage ModifierKind = "language"
)

// Special is a key whose meaning does not depend on the language.
type Special struct {
	Label      string
	Command    core.CommandKind
	Modifier   ModifierKind
	Repeatable bool
}

type specialFile struct {
	Label      string `toml:"label"`
	Command    string `toml:"command"`
	Modifier   string `toml:"modifier"`
	Repeatable bool   `toml:"repeatable"`
}

type commonFileData struct {
	Rows    [][]string             `toml:"rows"`
	Special map[string]specialFile `toml:"special"`
}

// Common is the language independent part of the keyboard.
type Common struct {
	Rows     [][]string
	Specials map[string]Special
}

// LoadLayouts parses the bundled layout tables. The returned order is the
// language switch order.
func LoadLayouts() (*Common, map[language.Tag]*Layout, []language.Tag, error) {
	common, err := loadCommon()
	if err != nil {
		return nil, nil, nil, err
	}

	entries, err := layoutFiles.ReadDir("layouts")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read layouts: %w", err)
	}

	layouts := make(map[language.Tag]*Layout)
	var order []language.Tag

	for _, entry := range entries {
		if entry.Name() == commonFile || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}

		l, err := loadLayout(path.Join("layouts", entry.Name()))
		if err != nil {
			return nil, nil, nil, err
		}

		layouts[l.Language] = l
		order = append(order, l.Language)
	}

	return common, layouts, order, nil
}

func loadCommon() (*Common, error) {
	name := path.Join("layouts", commonFile)
	content, err := layoutFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var data commonFileData
	if _, err := toml.Decode(string(content), &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	common := &Common{Rows: data.Rows, Specials: make(map[string]Special, len(data.Special))}
	for code, s := range data.Special {
		special := Special{
			Label:      s.Label,
			Modifier:   ModifierKind(s.Modifier),
			Repeatable: s.Repeatable,
		}

		if s.Command != "" {
			kind, ok := core.ParseCommandKind(s.Command)
			if !ok {
				return nil, fmt.Errorf("%s: key %s: unknown command %q", name, code, s.Command)
			}
			special.Command = kind
		}

		common.Specials[code] = special
	}

	return common, nil
}

func loadLayout(name string) (*Layout, error) {
	content, err := layoutFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var data layoutFile
	if _, err := toml.Decode(string(content), &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	tag, err := language.Parse(data.Language)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	l := &Layout{Language: tag, Name: data.Name, keys: make(map[string][4]string, len(data.Keys))}
	for code, values := range data.Keys {
		if len(values) != 4 {
			return nil, fmt.Errorf("%s: key %s: want 4 values, got %d", name, code, len(values))
		}
		l.keys[code] = [4]string{values[0], values[1], values[2], values[3]}
	}

	return l, nil
}
