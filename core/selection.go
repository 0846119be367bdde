package core

// Selection is a half-open character range [Start, End). It is degenerate,
// a plain caret, when Start == End.
type Selection struct {
	Start int
	End   int
}

func Caret(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

// NormalizeSelection orders the two ends of a range.
func NormalizeSelection(a, b int) Selection {
	if a <= b {
		return Selection{Start: a, End: b}
	}
	return Selection{Start: b, End: a}
}

func (s Selection) Normalize() Selection {
	return NormalizeSelection(s.Start, s.End)
}

func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

func (s Selection) Len() int {
	n := s.Normalize()
	return n.End - n.Start
}

func (s Selection) Contains(offset int) bool {
	n := s.Normalize()
	return offset >= n.Start && offset < n.End
}

func (s Selection) clamp(length int) Selection {
	n := s.Normalize()
	n.Start = max(0, min(n.Start, length))
	n.End = max(n.Start, min(n.End, length))
	return n
}
