package core

// Phase tags what the caret is doing between commands.
type Phase int

const (
	IdleCaret Phase = iota
	SelectingLeft
	SelectingRight
	// VerticalBoundary: a vertical move ran out of rows and jumped the caret to
	// the buffer start or end.
	VerticalBoundary
)

func (p Phase) String() string {
	switch p {
	case IdleCaret:
		return "idle"
	case SelectingLeft:
		return "selecting-left"
	case SelectingRight:
		return "selecting-right"
	case VerticalBoundary:
		return "vertical-boundary"
	default:
		return "unknown"
	}
}

// Effect is a side effect the host applies after a transition.
type Effect int

const (
	EffectCaretMoved Effect = iota + 1
	EffectSelectionChanged
	EffectScrollIntoView
	EffectBoundaryReached
)

// Cursor is the caret and selection state. It is a value: every movement
// returns a Transition holding the next Cursor and leaves the receiver as is.
type Cursor struct {
	Selection Selection
	Phase     Phase
	// Clamped reports that the last vertical move landed on the end of a row
	// narrower than the sticky column.
	Clamped bool
	Memory  ColumnMemory
}

type Transition struct {
	Next    Cursor
	Effects []Effect
}

// Layout is the read-only view of the text surface that navigation needs.
type Layout struct {
	Rows      *RowIndex
	Metrics   Metrics
	Length    int
	Geometry  Geometry
	ScrollTop float64
	// Ready is false until geometry with a positive width and line height
	// has been synced.
	Ready bool
}

// Head is the active end of the selection, the caret proper.
func (c Cursor) Head() int {
	switch c.Phase {
	case SelectingLeft:
		return c.Selection.Start
	case SelectingRight:
		return c.Selection.End
	default:
		return c.Selection.Start
	}
}

// Anchor is the end of the selection that stays put while extending.
func (c Cursor) Anchor() int {
	switch c.Phase {
	case SelectingLeft:
		return c.Selection.End
	default:
		return c.Selection.Start
	}
}

// Row returns the row the caret is drawn on.
func (c Cursor) Row(rows *RowIndex) int {
	if c.Memory.valid && c.Memory.Offset == c.Head() {
		return c.Memory.Row
	}
	return rows.RowOf(c.Head(), AffinityDown)
}

func (c Cursor) transition(next Cursor) Transition {
	t := Transition{Next: next}
	if next.Head() != c.Head() {
		t.Effects = append(t.Effects, EffectCaretMoved)
	}
	if next.Selection != c.Selection {
		t.Effects = append(t.Effects, EffectSelectionChanged)
	}
	if len(t.Effects) > 0 {
		t.Effects = append(t.Effects, EffectScrollIntoView)
	}
	return t
}

func (c Cursor) remember(l Layout) ColumnMemory {
	if l.Rows == nil || l.Metrics == nil {
		return ColumnMemory{}
	}
	return memoryAt(c.Head(), l.Rows, l.Metrics, AffinityDown)
}

// memory returns the cached projection when it still describes the caret.
func (c Cursor) memory(l Layout) ColumnMemory {
	if c.Memory.valid && c.Memory.Offset == c.Head() {
		return c.Memory
	}
	return memoryAt(c.Head(), l.Rows, l.Metrics, AffinityDown)
}

func collapsed(offset int) Cursor {
	return Cursor{Selection: Caret(offset), Phase: IdleCaret}
}

// MoveLeft collapses the selection and steps one character back from its start.
func (c Cursor) MoveLeft(l Layout) Transition {
	o := c.Selection.Normalize().Start
	return c.transition(collapsed(max(0, o-1)))
}

// MoveRight collapses the selection and steps one character past its start.
func (c Cursor) MoveRight(l Layout) Transition {
	o := c.Selection.Normalize().Start
	return c.transition(collapsed(min(l.Length, o+1)))
}

func (c Cursor) MoveBufferStart(l Layout) Transition {
	return c.transition(collapsed(0))
}

func (c Cursor) MoveBufferEnd(l Layout) Transition {
	return c.transition(collapsed(l.Length))
}

// MoveRowStart puts the caret at the start of the caret's row.
func (c Cursor) MoveRowStart(l Layout) Transition {
	if l.Rows == nil {
		return c.MoveBufferStart(l)
	}

	row := c.Row(l.Rows)
	next := collapsed(l.Rows.Row(row).Start)
	if l.Metrics != nil {
		next.Memory = ColumnMemory{Offset: next.Head(), Row: row, valid: true}
	}
	return c.transition(next)
}

// MoveRowEnd puts the caret after the last character of the caret's row. On
// a soft-wrapped row the caret stays pinned to that row.
func (c Cursor) MoveRowEnd(l Layout) Transition {
	if l.Rows == nil {
		return c.MoveBufferEnd(l)
	}

	row := c.Row(l.Rows)
	span := l.Rows.Row(row)
	next := collapsed(span.End)
	if l.Metrics != nil {
		next.Memory = ColumnMemory{
			Offset: span.End,
			Row:    row,
			Col:    span.Len(),
			Width:  l.Metrics.Width(span.Text),
			valid:  true,
		}
	}
	return c.transition(next)
}

// SelectLeft extends or shrinks the selection by one character on the left.
func (c Cursor) SelectLeft(l Layout) Transition {
	sel := c.Selection.Normalize()
	phase := c.Phase

	switch {
	case sel.IsEmpty():
		phase = SelectingLeft
	case phase != SelectingLeft && phase != SelectingRight:
		phase = SelectingRight
	}

	if phase == SelectingLeft {
		sel.Start = max(0, sel.Start-1)
	} else {
		sel.End--
	}

	return c.transition(c.settle(sel, phase, l))
}

// SelectRight extends or shrinks the selection by one character on the right.
func (c Cursor) SelectRight(l Layout) Transition {
	sel := c.Selection.Normalize()
	phase := c.Phase

	switch {
	case sel.IsEmpty():
		phase = SelectingRight
	case phase != SelectingLeft && phase != SelectingRight:
		phase = SelectingRight
	}

	if phase == SelectingRight {
		sel.End = min(l.Length, sel.End+1)
	} else {
		sel.Start++
	}

	return c.transition(c.settle(sel, phase, l))
}

func (c Cursor) settle(sel Selection, phase Phase, l Layout) Cursor {
	if sel.IsEmpty() {
		phase = IdleCaret
	}

	next := Cursor{Selection: sel, Phase: phase}
	next.Memory = next.remember(l)
	return next
}

func (c Cursor) SelectAll(l Layout) Transition {
	next := Cursor{Selection: Selection{Start: 0, End: l.Length}, Phase: SelectingRight}
	if l.Length == 0 {
		next.Phase = IdleCaret
	}
	next.Memory = next.remember(l)
	return c.transition(next)
}

func (c Cursor) MoveUp(l Layout) (Transition, error)   { return c.vertical(-1, false, l) }
func (c Cursor) MoveDown(l Layout) (Transition, error) { return c.vertical(1, false, l) }
func (c Cursor) SelectUp(l Layout) (Transition, error) { return c.vertical(-1, true, l) }

func (c Cursor) SelectDown(l Layout) (Transition, error) {
	return c.vertical(1, true, l)
}

// extendTo moves the head to offset, keeping the anchor. Crossing the anchor
// flips the direction.
func (c Cursor) extendTo(offset int) Cursor {
	anchor := c.Anchor()

	switch {
	case offset < anchor:
		return Cursor{Selection: Selection{Start: offset, End: anchor}, Phase: SelectingLeft}
	case offset > anchor:
		return Cursor{Selection: Selection{Start: anchor, End: offset}, Phase: SelectingRight}
	default:
		return collapsed(anchor)
	}
}

func (c Cursor) vertical(dir int, extend bool, l Layout) (Transition, error) {
	if !l.Ready || l.Rows == nil || l.Metrics == nil {
		return Transition{Next: c}, ErrLayoutNotReady
	}

	mem := c.memory(l)
	target := mem.Row + dir

	if target < 0 || target >= l.Rows.Len() {
		offset, row := 0, 0
		if dir > 0 {
			offset, row = l.Length, l.Rows.Len()-1
		}

		next := Cursor{Selection: Caret(offset), Phase: VerticalBoundary}
		if extend {
			next = c.extendTo(offset)
		}
		next.Memory = ColumnMemory{
			Offset: offset,
			Row:    row,
			Col:    offset - l.Rows.Row(row).Start,
			Width:  mem.Width,
			valid:  true,
		}

		t := c.transition(next)
		t.Effects = append(t.Effects, EffectBoundaryReached)
		return t, nil
	}

	span := l.Rows.Row(target)
	col, clamped := columnAtWidth(l.Metrics, span.Text, mem.Width)
	offset := span.Start + col

	next := collapsed(offset)
	if extend {
		next = c.extendTo(offset)
	}
	next.Clamped = clamped
	next.Memory = ColumnMemory{Offset: offset, Row: target, Col: col, Width: mem.Width, valid: true}

	return c.transition(next), nil
}

// Click places the caret at the point (x, y) of the text surface.
func (c Cursor) Click(x, y float64, l Layout) (Transition, error) {
	g := l.Geometry
	if !l.Ready || l.Rows == nil || l.Metrics == nil || g.LineHeight <= 0 {
		return Transition{Next: c}, ErrLayoutNotReady
	}

	line := int((y + l.ScrollTop - g.PaddingTop) / g.LineHeight)
	line = max(0, min(line, l.Rows.Len()-1))

	span := l.Rows.Row(line)
	col, _ := columnAtWidth(l.Metrics, span.Text, x-g.PaddingLeft)
	offset := span.Start + col
	row := clickRow(l.Rows, offset, line)
	rowSpan := l.Rows.Row(row)

	next := collapsed(offset)
	next.Memory = ColumnMemory{
		Offset: offset,
		Row:    row,
		Col:    offset - rowSpan.Start,
		Width:  l.Metrics.Width(prefix(rowSpan.Text, offset-rowSpan.Start)),
		valid:  true,
	}

	return c.transition(next), nil
}

// clickRow resolves the row of a clicked offset. On a soft-wrap boundary the
// offset ends row N and starts row N+1; the clicked line decides.
func clickRow(rows *RowIndex, offset, line int) int {
	row := rows.RowOf(offset, AffinityUp)
	if rows.IsAutoBreak(offset) && row+1 == line {
		return line
	}
	return row
}
