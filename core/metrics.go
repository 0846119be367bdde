package core

import (
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultTabCells is how many space advances a raw tab character occupies.
const DefaultTabCells = 4

// Metrics reports rendered glyph widths for the font the rows are laid out in.
type Metrics interface {
	// RuneWidth returns the advance of a single character in pixels.
	RuneWidth(r rune) float64
	// Width returns the sum of the single character widths of s.
	Width(s string) float64
	LineHeight() float64
}

// WidthOfChar measures exactly one character and panics on anything else.
func WidthOfChar(m Metrics, ch string) float64 {
	if utf8.RuneCountInString(ch) != 1 {
		panic(fmt.Sprintf("core: WidthOfChar expects a single character, got %q", ch))
	}

	r, _ := utf8.DecodeRuneInString(ch)
	return m.RuneWidth(r)
}

// glyphCache memoizes per character measurements for one font.
type glyphCache struct {
	widths  map[rune]float64
	measure func(r rune) float64
}

func newGlyphCache(measure func(r rune) float64) glyphCache {
	return glyphCache{widths: make(map[rune]float64), measure: measure}
}

func (c *glyphCache) width(r rune) float64 {
	if w, ok := c.widths[r]; ok {
		return w
	}

	w := c.measure(r)
	c.widths[r] = w
	return w
}

func (c *glyphCache) sum(s string) float64 {
	total := 0.0
	for _, r := range s {
		total += c.width(r)
	}
	return total
}

func (c *glyphCache) reset() {
	clear(c.widths)
}

// FaceMetrics measures a proportional font face.
type FaceMetrics struct {
	face       font.Face
	cache      glyphCache
	lineHeight float64
	tabCells   int
}

// NewFaceMetrics binds the metrics to face; lineHeight <= 0 uses the face height.
func NewFaceMetrics(face font.Face, lineHeight float64) *FaceMetrics {
	m := &FaceMetrics{face: face, tabCells: DefaultTabCells}
	m.cache = newGlyphCache(m.advance)

	if lineHeight <= 0 {
		lineHeight = fixedToFloat(face.Metrics().Height)
	}
	m.lineHeight = lineHeight

	return m
}

// LoadFace builds one of the bundled Go fonts: "goregular" or "gomono".
func LoadFace(name string, size, dpi float64) (font.Face, error) {
	var ttf []byte
	switch name {
	case "goregular", "":
		ttf = goregular.TTF
	case "gomono":
		ttf = gomono.TTF
	default:
		return nil, fmt.Errorf("unknown font face %q", name)
	}

	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %s: %w", name, err)
	}

	return face, nil
}

func (m *FaceMetrics) advance(r rune) float64 {
	switch r {
	case '\n':
		return 0
	case '\t':
		return float64(m.tabCells) * m.advance(' ')
	}

	adv, ok := m.face.GlyphAdvance(r)
	if !ok {
		adv, _ = m.face.GlyphAdvance(utf8.RuneError)
	}
	return fixedToFloat(adv)
}

func (m *FaceMetrics) RuneWidth(r rune) float64 { return m.cache.width(r) }
func (m *FaceMetrics) Width(s string) float64   { return m.cache.sum(s) }
func (m *FaceMetrics) LineHeight() float64      { return m.lineHeight }

// SetFace switches to another face and drops every cached width.
func (m *FaceMetrics) SetFace(face font.Face, lineHeight float64) {
	m.face = face
	if lineHeight <= 0 {
		lineHeight = fixedToFloat(face.Metrics().Height)
	}
	m.lineHeight = lineHeight
	m.Reset()
}

func (m *FaceMetrics) Reset() {
	m.cache.reset()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// CellMetrics measures terminal cells: every cell is CellWidth pixels wide.
type CellMetrics struct {
	cellWidth  float64
	lineHeight float64
	tabCells   int
	cache      glyphCache
}

func NewCellMetrics(cellWidth, lineHeight float64) *CellMetrics {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if lineHeight <= 0 {
		lineHeight = 1
	}

	m := &CellMetrics{cellWidth: cellWidth, lineHeight: lineHeight, tabCells: DefaultTabCells}
	m.cache = newGlyphCache(m.cells)
	return m
}

func (m *CellMetrics) cells(r rune) float64 {
	switch r {
	case '\n':
		return 0
	case '\t':
		return float64(m.tabCells) * m.cellWidth
	}
	return float64(runewidth.RuneWidth(r)) * m.cellWidth
}

func (m *CellMetrics) RuneWidth(r rune) float64 { return m.cache.width(r) }
func (m *CellMetrics) Width(s string) float64   { return m.cache.sum(s) }
func (m *CellMetrics) LineHeight() float64      { return m.lineHeight }

func (m *CellMetrics) Reset() {
	m.cache.reset()
}
