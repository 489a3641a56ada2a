package maplib

// RectDistance is the Chebyshev gap between two footprints
func RectDistance(a Pos, as Size, b Pos, bs Size) int {
	dx, dy := RectGap(a, as, b, bs)
	if dx > dy {
		return dx
	}
	return dy
}

// RectGap returns the per-axis gap between two footprints, 0 on an axis
// where they overlap
func RectGap(a Pos, as Size, b Pos, bs Size) (dx, dy int) {
	return gap(a.X, as.W, b.X, bs.W), gap(a.Y, as.H, b.Y, bs.H)
}

func gap(a, aw, b, bw int) int {
	switch {
	case b > a+aw-1:
		return b - (a + aw - 1)
	case a > b+bw-1:
		return a - (b + bw - 1)
	}
	return 0
}

// Chebyshev is max(|dx|, |dy|) between two tiles
func Chebyshev(a, b Pos) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
