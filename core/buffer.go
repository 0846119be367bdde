package core

import (
	"fmt"
	"strings"
)

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeNewlines turns "\r\n" and lone "\r" into "\n", the only line
// delimiter the rows know.
func NormalizeNewlines(text string) string {
	return newlineReplacer.Replace(text)
}

// Buffer is the flat character sequence the editor operates on. Offsets count
// characters, not bytes.
type Buffer interface {
	Text() string
	Len() int
	Slice(start, end int) string
	InsertAt(offset int, runes []rune) error
	DeleteRange(start, end int) error
	SetContent(content []byte)
	IsEmpty() bool
}

type textBuffer struct {
	runes []rune
}

func NewBuffer() Buffer {
	return &textBuffer{}
}

func (b *textBuffer) Text() string {
	return string(b.runes)
}

func (b *textBuffer) Len() int {
	return len(b.runes)
}

func (b *textBuffer) Slice(start, end int) string {
	start = max(0, min(start, len(b.runes)))
	end = max(start, min(end, len(b.runes)))
	return string(b.runes[start:end])
}

func (b *textBuffer) InsertAt(offset int, runes []rune) error {
	if offset < 0 || offset > len(b.runes) {
		return fmt.Errorf("%w: insert at %d, length %d", ErrInvalidPosition, offset, len(b.runes))
	}
	if len(runes) == 0 {
		return nil
	}

	newRunes := make([]rune, 0, len(b.runes)+len(runes))
	newRunes = append(newRunes, b.runes[:offset]...)
	newRunes = append(newRunes, runes...)
	newRunes = append(newRunes, b.runes[offset:]...)
	b.runes = newRunes

	return nil
}

func (b *textBuffer) DeleteRange(start, end int) error {
	if start < 0 || end > len(b.runes) || start > end {
		return fmt.Errorf("%w: delete [%d,%d), length %d", ErrInvalidPosition, start, end, len(b.runes))
	}
	if start == end {
		return nil
	}

	b.runes = append(b.runes[:start], b.runes[end:]...)
	return nil
}

// SetContent replaces the buffer with content, line endings normalized.
func (b *textBuffer) SetContent(content []byte) {
	b.runes = []rune(NormalizeNewlines(string(content)))
}

func (b *textBuffer) IsEmpty() bool {
	return len(b.runes) == 0
}
