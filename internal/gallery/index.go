package gallery

// Normalize maps any index into [0, count) with wrap-around.
// It returns 0 when count is not positive.
func Normalize(i, count int) int {
	if count <= 0 {
		return 0
	}
	return (count + i%count) % count
}

// circle normalizes i against the current item count.
func (g *Gallery) circle(i int) int {
	return Normalize(i, g.num)
}

// direction returns 1 when moving backward (to < from), -1 when moving
// forward and 0 when from == to.
func direction(from, to int) int {
	switch {
	case from > to:
		return 1
	case from < to:
		return -1
	default:
		return 0
	}
}

// continuous reports whether navigation currently wraps.
func (g *Gallery) continuous() bool {
	return g.continuity == ContinuityOn
}

// atLeftEdge reports whether i is the first slide of a linear gallery.
func (g *Gallery) atLeftEdge(i int) bool {
	return i == 0
}

// atRightEdge reports whether i is the last slide of a linear gallery.
func (g *Gallery) atRightEdge(i int) bool {
	return i == g.num-1
}

// pastBounds reports whether a horizontal drag of dx from index i pushes
// beyond a linear edge.
func (g *Gallery) pastBounds(i int, dx float64) bool {
	if g.continuous() {
		return false
	}
	return (g.atLeftEdge(i) && dx > 0) || (g.atRightEdge(i) && dx < 0)
}

func (g *Gallery) updateEdges(i int) {
	g.display.LeftEdge = g.atLeftEdge(i)
	g.display.RightEdge = g.atRightEdge(i)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
