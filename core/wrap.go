package core

import "unicode"

// WrapOracle reports how the rendering surface breaks one hard line into rows.
// Concatenating the returned rows must reproduce the line.
type WrapOracle interface {
	Wrap(line string) []string
}

// WrapFunc adapts a plain function to WrapOracle.
type WrapFunc func(line string) []string

func (f WrapFunc) Wrap(line string) []string {
	return f(line)
}

// GreedyWrapper breaks lines after whitespace runs so that every row fits in
// Width pixels. Whitespace hangs past the edge; a word wider than a row is
// split between characters.
type GreedyWrapper struct {
	Metrics Metrics
	Width   float64
}

func (w GreedyWrapper) Wrap(line string) []string {
	runes := []rune(line)
	if len(runes) == 0 || w.Metrics == nil || w.Width <= 0 {
		return []string{line}
	}

	var rows []string
	start := 0

	for start < len(runes) {
		used := 0.0
		lastBreak := -1
		i := start

		for i < len(runes) {
			r := runes[i]
			if unicode.IsSpace(r) {
				used += w.Metrics.RuneWidth(r)
				i++
				lastBreak = i
				continue
			}

			cw := w.Metrics.RuneWidth(r)
			if used+cw > w.Width && i > start {
				break
			}
			used += cw
			i++
		}

		if i >= len(runes) {
			rows = append(rows, string(runes[start:]))
			break
		}

		end := i
		if lastBreak > start {
			end = lastBreak
		}

		rows = append(rows, string(runes[start:end]))
		start = end
	}

	return rows
}
