package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Message ids used by the presentation layer.
const (
	LanguageName         = "language_name"
	CaretPosition        = "caret_position"
	LayoutSwitched       = "layout_switched"
	LayoutNotReady       = "layout_not_ready"
	ClipboardUnavailable = "clipboard_unavailable"
	UnknownCommand       = "unknown_command"
	SelectionCount       = "selection_count"
	ClipboardCopied      = "clipboard_copied"
	ClipboardCut         = "clipboard_cut"
	ClipboardPasted      = "clipboard_pasted"
)

// Translator localizes messages for one language at a time.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      language.Tag
}

// New loads the bundled message files and selects lang.
func New(lang language.Tag) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		content, err := locales.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(content, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	t := &Translator{bundle: bundle}
	t.SetLanguage(lang)

	return t, nil
}

func (t *Translator) SetLanguage(lang language.Tag) {
	t.lang = lang
	t.localizer = i18n.NewLocalizer(t.bundle, lang.String(), language.English.String())
}

// SetWithCode selects a language by BCP 47 code.
func (t *Translator) SetWithCode(code string) error {
	lang, err := language.Parse(code)
	if err != nil {
		return err
	}
	t.SetLanguage(lang)
	return nil
}

func (t *Translator) Language() language.Tag {
	return t.lang
}

// Languages lists the languages with a message file.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// Text returns the message id, or id itself when there is no translation.
func (t *Translator) Text(id string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id})
}

func (t *Translator) TextWith(id string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Plural picks the plural form of id for count; the template sees it as .Count.
func (t *Translator) Plural(id string, count int) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

// LanguageName returns the native name of lang.
func (t *Translator) LanguageName(lang language.Tag) string {
	l := i18n.NewLocalizer(t.bundle, lang.String())
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: LanguageName})
	if err != nil {
		return lang.String()
	}
	return msg
}

func (t *Translator) localize(cfg *i18n.LocalizeConfig) string {
	msg, err := t.localizer.Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return msg
}
