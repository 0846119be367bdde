package highlighter

import (
	"sync"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter colours buffer text by rune offset.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style

	cacheMutex sync.RWMutex
	text       string
	spans      []TokenSpan
	styleCache map[chroma.TokenType]lipgloss.Style
}

// TokenSpan is a token's half-open rune range in the buffer.
type TokenSpan struct {
	Type  chroma.TokenType
	Start int
	End   int
}

// New creates a highlighter for language with a chroma theme.
// Unknown languages fall back to plain text.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      styles.Get(theme),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// InvalidateCache drops the tokens and styles.
func (sh *Highlighter) InvalidateCache() {
	sh.cacheMutex.Lock()
	defer sh.cacheMutex.Unlock()
	sh.text = ""
	sh.spans = nil
	sh.styleCache = make(map[chroma.TokenType]lipgloss.Style)
}

// Spans tokenizes text, reusing the previous result while text is unchanged.
func (sh *Highlighter) Spans(text string) []TokenSpan {
	sh.cacheMutex.RLock()
	if sh.spans != nil && sh.text == text {
		defer sh.cacheMutex.RUnlock()
		return sh.spans
	}
	sh.cacheMutex.RUnlock()

	spans := sh.tokenize(text)

	sh.cacheMutex.Lock()
	defer sh.cacheMutex.Unlock()
	sh.text = text
	sh.spans = spans

	return spans
}

func (sh *Highlighter) tokenize(text string) []TokenSpan {
	spans := []TokenSpan{}
	if text == "" {
		return spans
	}

	iterator, err := sh.lexer.Tokenise(nil, text)
	if err != nil {
		// Cache the failure as plain text so rendering does not retry it.
		return spans
	}

	offset := 0
	for _, token := range iterator.Tokens() {
		n := utf8.RuneCountInString(token.Value)
		if n == 0 {
			continue
		}
		spans = append(spans, TokenSpan{Type: token.Type, Start: offset, End: offset + n})
		offset += n
	}

	return spans
}

// TokenTypes returns the token type of every rune of text.
func (sh *Highlighter) TokenTypes(text string) []chroma.TokenType {
	types := make([]chroma.TokenType, utf8.RuneCountInString(text))
	for _, span := range sh.Spans(text) {
		for i := span.Start; i < span.End && i < len(types); i++ {
			types[i] = span.Type
		}
	}
	return types
}

// GetStyleForToken converts a Chroma token type to a lipgloss style.
func (sh *Highlighter) GetStyleForToken(tokenType chroma.TokenType) lipgloss.Style {
	sh.cacheMutex.RLock()
	style, ok := sh.styleCache[tokenType]
	sh.cacheMutex.RUnlock()
	if ok {
		return style
	}

	entry := sh.style.Get(tokenType)

	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}

	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	sh.cacheMutex.Lock()
	sh.styleCache[tokenType] = style
	sh.cacheMutex.Unlock()

	return style
}

// FindTokenAt returns the span containing offset.
func FindTokenAt(spans []TokenSpan, offset int) (TokenSpan, bool) {
	for _, span := range spans {
		if offset >= span.Start && offset < span.End {
			return span, true
		}
	}
	return TokenSpan{}, false
}
