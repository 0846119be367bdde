package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidthOfCharRejectsNonSingleCharacters(t *testing.T) {
	m := NewCellMetrics(1, 1)

	assert.Equal(t, 1.0, WidthOfChar(m, "a"))
	assert.Equal(t, 2.0, WidthOfChar(m, "世"))
	assert.Panics(t, func() { WidthOfChar(m, "") })
	assert.Panics(t, func() { WidthOfChar(m, "ab") })
}

func TestCellMetrics(t *testing.T) {
	m := NewCellMetrics(2, 3)

	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"ascii", "abc", 6},
		{"wide", "a世", 6},
		{"tab", "\t", 8},
		{"newline", "\n", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Width(tt.in))
		})
	}

	assert.Equal(t, 3.0, m.LineHeight())
}

func TestCellMetricsDefaults(t *testing.T) {
	m := NewCellMetrics(0, 0)

	assert.Equal(t, 1.0, m.RuneWidth('x'))
	assert.Equal(t, 1.0, m.LineHeight())
}

func TestGlyphCacheMeasuresEachCharacterOnce(t *testing.T) {
	calls := map[rune]int{}
	c := newGlyphCache(func(r rune) float64 {
		calls[r]++
		return 2
	})

	assert.Equal(t, 10.0, c.sum("hello"))
	assert.Equal(t, 10.0, c.sum("hello"))
	assert.Equal(t, 2.0, c.width('h'))
	assert.Equal(t, map[rune]int{'h': 1, 'e': 1, 'l': 1, 'o': 1}, calls)

	c.reset()
	c.width('h')
	assert.Equal(t, 2, calls['h'])
}

func TestWidthIsSumOfCharacterWidths(t *testing.T) {
	face, err := LoadFace("goregular", 16, 72)
	require.NoError(t, err)
	m := NewFaceMetrics(face, 0)

	text := "Wilhelm"
	sum := 0.0
	for _, r := range text {
		sum += m.RuneWidth(r)
	}

	assert.InDelta(t, sum, m.Width(text), 1e-9)
	assert.Greater(t, m.RuneWidth('W'), m.RuneWidth('i'))
	assert.Greater(t, m.LineHeight(), 0.0)
}

func TestFaceMetricsMonospace(t *testing.T) {
	face, err := LoadFace("gomono", 12, 96)
	require.NoError(t, err)
	m := NewFaceMetrics(face, 20)

	assert.Equal(t, m.RuneWidth('W'), m.RuneWidth('i'))
	assert.Equal(t, 4*m.RuneWidth(' '), m.RuneWidth('\t'))
	assert.Equal(t, 20.0, m.LineHeight())
}

func TestFaceMetricsSetFaceResetsCache(t *testing.T) {
	small, err := LoadFace("gomono", 10, 72)
	require.NoError(t, err)
	large, err := LoadFace("gomono", 20, 72)
	require.NoError(t, err)

	m := NewFaceMetrics(small, 0)
	before := m.RuneWidth('m')

	m.SetFace(large, 0)
	assert.Greater(t, m.RuneWidth('m'), before)
}

func TestLoadFaceUnknown(t *testing.T) {
	_, err := LoadFace("comic", 12, 72)
	assert.Error(t, err)
}
