package core

// ColumnMemory caches where the caret projects onto the rows. Width is the
// sticky pixel column carried across consecutive vertical moves; it may be
// wider than the row the caret currently sits on.
type ColumnMemory struct {
	Offset int
	Row    int
	Col    int
	Width  float64
	valid  bool
}

func (m ColumnMemory) Valid() bool {
	return m.valid
}

// memoryAt projects offset onto the rows without any sticky history.
func memoryAt(offset int, rows *RowIndex, metrics Metrics, affinity Affinity) ColumnMemory {
	row := rows.RowOf(offset, affinity)
	span := rows.Row(row)
	col := max(0, min(offset-span.Start, span.Len()))

	return ColumnMemory{
		Offset: offset,
		Row:    row,
		Col:    col,
		Width:  metrics.Width(prefix(span.Text, col)),
		valid:  true,
	}
}

// columnAtWidth scans text for the split point nearest to target pixels.
// Ties go to the left split. When the whole row is narrower than target the
// column is the row end and clamped is true.
func columnAtWidth(metrics Metrics, text string, target float64) (col int, clamped bool) {
	if target <= 0 {
		return 0, false
	}

	acc := 0.0
	for _, r := range text {
		next := acc + metrics.RuneWidth(r)
		if next >= target {
			if next-target < target-acc {
				return col + 1, false
			}
			return col, false
		}
		acc = next
		col++
	}

	return col, true
}

// prefix returns the first n characters of s.
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}

	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
