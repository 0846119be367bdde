package core

// Geometry is the pixel box the rows are rendered into.
type Geometry struct {
	Width       float64
	Height      float64
	LineHeight  float64
	PaddingTop  float64
	PaddingLeft float64
}

// Ready reports whether rows can be laid out and hit-tested.
func (g Geometry) Ready() bool {
	return g.Width > 0 && g.LineHeight > 0
}

// ScrollIntoView returns the scroll offset that keeps row fully visible.
// If the row is above the viewport it scrolls up to it, if it is below it
// scrolls down until the row's bottom edge meets the viewport's.
func ScrollIntoView(g Geometry, scrollTop float64, row, totalRows int) float64 {
	if g.LineHeight <= 0 {
		return 0
	}

	top := g.PaddingTop + float64(row)*g.LineHeight
	bottom := top + g.LineHeight

	switch {
	case top < scrollTop:
		scrollTop = top
	case g.Height > 0 && bottom > scrollTop+g.Height:
		scrollTop = bottom - g.Height
	}

	contentHeight := g.PaddingTop + float64(totalRows)*g.LineHeight
	maxScroll := max(0, contentHeight-g.Height)
	if g.Height <= 0 {
		maxScroll = contentHeight
	}

	return max(0, min(scrollTop, maxScroll))
}

// VisibleRows returns the half-open range of row indexes inside the viewport.
func VisibleRows(g Geometry, scrollTop float64, totalRows int) (first, last int) {
	if g.LineHeight <= 0 || totalRows == 0 {
		return 0, totalRows
	}

	first = int((scrollTop - g.PaddingTop) / g.LineHeight)
	first = max(0, min(first, totalRows-1))

	if g.Height <= 0 {
		return first, totalRows
	}

	count := int(g.Height / g.LineHeight)
	last = min(totalRows, first+max(1, count))
	return first, last
}

// ScrollViewport brings the caret row into view and records the new offset.
func (e *editor) ScrollViewport() {
	e.state.ScrollTop = ScrollIntoView(e.state.Geometry, e.state.ScrollTop, e.CaretRow(), e.rows.Len())
}
