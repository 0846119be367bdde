package core

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// RowSpan is one rendered row. End is the caret offset just after the row's
// last character, so End == Start + len(Text) in characters.
type RowSpan struct {
	Start int
	End   int
	Text  string
	// Soft reports that the row ends at an automatic wrap, not at a '\n'.
	Soft bool
}

func (r RowSpan) Len() int {
	return r.End - r.Start
}

// Affinity picks a row for an offset that sits on a soft-wrap boundary,
// where it is both the end of one row and the start of the next.
type Affinity int

const (
	AffinityDown Affinity = iota
	AffinityUp
)

// RowIndex maps the flat buffer to rendered rows.
type RowIndex struct {
	rows       []RowSpan
	autoBreaks map[int]struct{}
	hardBreaks map[int]struct{}
	length     int
}

func NewRowIndex() *RowIndex {
	return &RowIndex{
		rows:       []RowSpan{{}},
		autoBreaks: map[int]struct{}{},
		hardBreaks: map[int]struct{}{},
	}
}

// Rebuild recomputes the rows of text. A nil oracle lays out hard lines only.
// When the oracle's rows do not reproduce text the index is left unchanged.
func (ri *RowIndex) Rebuild(text string, oracle WrapOracle) error {
	runes := []rune(text)

	hard := make(map[int]struct{})
	for i, r := range runes {
		if r == '\n' {
			hard[i] = struct{}{}
		}
	}

	var rendered []string
	for _, line := range strings.Split(text, "\n") {
		if oracle == nil {
			rendered = append(rendered, line)
			continue
		}

		parts := oracle.Wrap(line)
		if len(parts) == 0 {
			parts = []string{""}
		}
		rendered = append(rendered, parts...)
	}

	rows := make([]RowSpan, 0, len(rendered))
	auto := make(map[int]struct{})
	pos := 0

	for i, rowText := range rendered {
		n := utf8.RuneCountInString(rowText)
		start, end := pos, pos+n
		if end > len(runes) || string(runes[start:end]) != rowText {
			return fmt.Errorf("%w: row %d %q at offset %d", ErrLayoutMismatch, i, rowText, start)
		}

		row := RowSpan{Start: start, End: end, Text: rowText}
		_, isHard := hard[end]

		switch {
		case i == len(rendered)-1:
			pos = end
		case isHard:
			pos = end + 1
		case n == 0:
			return fmt.Errorf("%w: empty wrapped row %d at offset %d", ErrLayoutMismatch, i, start)
		default:
			row.Soft = true
			auto[end] = struct{}{}
			pos = end
		}

		rows = append(rows, row)
	}

	if pos != len(runes) {
		return fmt.Errorf("%w: rows cover %d of %d characters", ErrLayoutMismatch, pos, len(runes))
	}

	ri.rows = rows
	ri.autoBreaks = auto
	ri.hardBreaks = hard
	ri.length = len(runes)

	return nil
}

func (ri *RowIndex) Rows() []RowSpan {
	return ri.rows
}

func (ri *RowIndex) Len() int {
	return len(ri.rows)
}

// Row returns row i, clamped to the valid range.
func (ri *RowIndex) Row(i int) RowSpan {
	return ri.rows[max(0, min(i, len(ri.rows)-1))]
}

// RowOf returns the index of the row containing offset.
func (ri *RowIndex) RowOf(offset int, affinity Affinity) int {
	offset = max(0, min(offset, ri.length))

	i := sort.Search(len(ri.rows), func(i int) bool {
		return ri.rows[i].End >= offset
	})
	if i == len(ri.rows) {
		return len(ri.rows) - 1
	}

	if affinity == AffinityDown && ri.rows[i].Soft && ri.rows[i].End == offset && i+1 < len(ri.rows) {
		return i + 1
	}

	return i
}

// IsAutoBreak reports whether offset is a soft-wrap boundary.
func (ri *RowIndex) IsAutoBreak(offset int) bool {
	_, ok := ri.autoBreaks[offset]
	return ok
}

// IsHardBreak reports whether the character at offset is a '\n'.
func (ri *RowIndex) IsHardBreak(offset int) bool {
	_, ok := ri.hardBreaks[offset]
	return ok
}
