package pathfind

import "github.com/1siamBot/rts-pathfinder/engine/maplib"

// Heuristic is the Chebyshev distance between two tiles. Diagonal and
// orthogonal steps both cost 1, so it never overestimates.
func Heuristic(a, b maplib.Pos) int {
	return maplib.Chebyshev(a, b)
}

// goalHeuristic lower-bounds the steps a size-s mover at p needs before the
// goal range is satisfied. One step changes the footprint gap by at most 1.
func goalHeuristic(p maplib.Pos, s maplib.Size, g Goal) int {
	d := maplib.RectDistance(p, s, g.Pos, g.Size) - g.MaxRange
	if d < 0 {
		return 0
	}
	return d
}

// goalTieBreak is the Manhattan gap to the goal footprint. Among nodes of
// equal cost it prefers the one nearer the straight line to the goal.
func goalTieBreak(p maplib.Pos, s maplib.Size, g Goal) int {
	dx, dy := maplib.RectGap(p, s, g.Pos, g.Size)
	return dx + dy
}

// inRange reports whether a size-s mover at p satisfies the goal range
func inRange(p maplib.Pos, s maplib.Size, g Goal) bool {
	d := maplib.RectDistance(p, s, g.Pos, g.Size)
	return d >= g.MinRange && d <= g.MaxRange
}
