package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

func expandAll(*Traversal, maplib.Pos, maplib.Pos) VisitResult { return VisitOK }

func TestTraversalDistances(t *testing.T) {
	l := maplib.NewLayer(0, 5, 5)
	tr := NewTraversal(l)
	require.True(t, tr.PushPos(pos(2, 2)))
	assert.False(t, tr.PushPos(pos(2, 2)), "already seeded")
	assert.False(t, tr.PushPos(pos(5, 0)), "border")

	assert.False(t, tr.Run(expandAll), "ran out of tiles")
	assert.Equal(t, 1, tr.Get(pos(2, 2)))
	assert.Equal(t, 2, tr.Get(pos(3, 3)))
	assert.Equal(t, 3, tr.Get(pos(0, 0)))
	assert.Equal(t, 3, tr.Get(pos(4, 2)))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			assert.True(t, tr.IsVisited(pos(x, y)))
		}
	}
	assert.True(t, tr.IsInvalid(pos(-1, 0)))
	assert.True(t, tr.IsInvalid(pos(5, 5)))
	assert.True(t, tr.IsInvalid(pos(-7, 40)))
	assert.False(t, tr.IsInvalid(pos(4, 4)))

	tr.Init()
	assert.False(t, tr.IsVisited(pos(2, 2)), "Init clears labels")
	assert.True(t, tr.IsInvalid(pos(5, 2)))
}

func TestTraversalStopsEarly(t *testing.T) {
	l := maplib.NewLayer(0, 6, 6)

	tr := NewTraversal(l)
	tr.PushPos(pos(0, 0))
	var hit maplib.Pos
	finished := tr.Run(func(_ *Traversal, p, _ maplib.Pos) VisitResult {
		if p == pos(3, 3) {
			hit = p
			return VisitFinished
		}
		return VisitOK
	})
	assert.True(t, finished)
	assert.Equal(t, pos(3, 3), hit)
	assert.False(t, tr.IsVisited(pos(5, 5)))

	tr.Init()
	tr.PushPos(pos(0, 0))
	calls := 0
	assert.False(t, tr.Run(func(*Traversal, maplib.Pos, maplib.Pos) VisitResult {
		calls++
		return VisitCancel
	}))
	assert.Equal(t, 1, calls)
}

func TestTraversalDeadEnds(t *testing.T) {
	l := maplib.NewLayer(0, 5, 3)
	tr := NewTraversal(l)
	tr.PushPos(pos(0, 1))
	tr.Run(func(_ *Traversal, p, _ maplib.Pos) VisitResult {
		if p.X == 2 {
			return VisitDeadEnd
		}
		return VisitOK
	})
	assert.Equal(t, 3, tr.Get(pos(2, 0)), "dead ends keep their label")
	assert.Zero(t, tr.Get(pos(3, 1)), "but are not expanded")
}

func TestTraversalSeeds(t *testing.T) {
	l := maplib.NewLayer(0, 6, 6)
	tr := NewTraversal(l)
	tr.PushNeighbors(pos(0, 0))
	assert.Equal(t, 1, tr.Get(pos(1, 1)))
	assert.Equal(t, 1, tr.Get(pos(0, 1)))
	assert.Zero(t, tr.Get(pos(0, 0)), "centre is not seeded")

	tr.Init()
	u := core.NewUnit("depot", maplib.DomainLand, 0, pos(2, 2))
	u.Size = maplib.Size{W: 2, H: 2}
	tr.PushUnitPosAndNeighbors(u)
	for y := 1; y <= 4; y++ {
		for x := 1; x <= 4; x++ {
			assert.Equal(t, 1, tr.Get(pos(x, y)), "(%d,%d)", x, y)
		}
	}
	assert.Zero(t, tr.Get(pos(0, 0)))
	assert.Zero(t, tr.Get(pos(5, 5)))
}

func TestTraversalResize(t *testing.T) {
	tr := &Traversal{}
	tr.SetSize(8, 8)
	tr.Init()
	tr.SetSize(3, 2)
	tr.Init()
	assert.True(t, tr.IsInvalid(pos(3, 0)))
	assert.True(t, tr.IsInvalid(pos(0, 2)))
	assert.False(t, tr.IsInvalid(pos(2, 1)))
}

func TestFloodFillRespectsWalls(t *testing.T) {
	l, err := maplib.FromRows(0, []string{
		"..#..",
		"..#..",
		"..#..",
	})
	require.NoError(t, err)
	passable := func(p maplib.Pos) bool { return l.Flags(p)&maplib.FlagLand != 0 }

	tr := FloodFill(l, []maplib.Pos{pos(0, 1), pos(2, 1)}, passable)
	assert.Equal(t, 1, tr.Get(pos(0, 1)))
	assert.Equal(t, 2, tr.Get(pos(1, 0)))
	for y := 0; y < 3; y++ {
		assert.False(t, tr.IsVisited(pos(2, y)), "wall (2,%d) stays unlabelled", y)
		assert.False(t, tr.IsVisited(pos(3, y)))
		assert.False(t, tr.IsVisited(pos(4, y)))
	}
	assert.Equal(t, 2, tr.Get(pos(1, 2)))
}

func TestTraversalSkipLeavesTileOpen(t *testing.T) {
	l := maplib.NewLayer(0, 3, 3)
	tr := NewTraversal(l)
	tr.PushPos(pos(0, 0))
	offered := 0
	tr.Run(func(_ *Traversal, p, _ maplib.Pos) VisitResult {
		if p == pos(2, 2) {
			offered++
			return VisitSkip
		}
		return VisitOK
	})
	assert.False(t, tr.IsVisited(pos(2, 2)))
	assert.Equal(t, 3, offered, "offered once per labelled neighbour")
	assert.Equal(t, 2, tr.Get(pos(1, 1)))
}
