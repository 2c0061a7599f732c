package render

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Layer is a block of lines drawn at a cell offset. Lines may carry ANSI
// styling; lines narrower than Width are padded.
type Layer struct {
	X, Y  int
	Width int
	Lines []string
}

// Compose draws layers into a width x height canvas. Layers are clipped to
// the canvas; where two overlap, the leftmost one wins.
func Compose(width, height int, layers ...Layer) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	sorted := slices.Clone(layers)
	slices.SortStableFunc(sorted, func(a, b Layer) int { return cmp.Compare(a.X, b.X) })

	out := make([]string, height)
	for row := range height {
		var b strings.Builder
		cursor := 0
		for _, l := range sorted {
			start := max(l.X, cursor)
			end := min(l.X+l.Width, width)
			if start >= end {
				continue
			}
			var line string
			if r := row - l.Y; r >= 0 && r < len(l.Lines) {
				line = l.Lines[r]
			}
			seg := ansi.Cut(line, start-l.X, end-l.X)
			b.WriteString(strings.Repeat(" ", start-cursor))
			b.WriteString(seg)
			b.WriteString(strings.Repeat(" ", max(end-start-ansi.StringWidth(seg), 0)))
			cursor = end
		}
		b.WriteString(strings.Repeat(" ", width-cursor))
		out[row] = b.String()
	}
	return out
}

// CellAt returns the visible character at column col of a styled line, or
// a space when there is none.
func CellAt(line string, col int) string {
	if col < 0 {
		return " "
	}
	c := ansi.Strip(ansi.Cut(line, col, col+1))
	if c == "" {
		return " "
	}
	return c
}

// PadStyled fills a styled line with spaces up to width cells. Escape
// sequences take no room.
func PadStyled(s string, width int) string {
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}
