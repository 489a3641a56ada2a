package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

var corridor = []string{
	"#########",
	".........",
	"#########",
}

// step calls NextPathElement and applies a move to the world
func step(t *testing.T, w *core.World, c *Context, u *core.Unit, pc *PathCache) (Status, maplib.Pos) {
	t.Helper()
	st, d, err := c.NextPathElement(u, pc)
	require.NoError(t, err)
	if st == StatusMove {
		require.NoError(t, w.MoveUnit(u, u.Pos.Add(d.X, d.Y)))
	}
	return st, d
}

func TestNextPathElementWalksToGoal(t *testing.T) {
	w, c := newFixture(t, openRows(10, 10))
	u := spawn(t, w, "scout", maplib.DomainLand, pos(0, 0))
	pc := NewPathCache(PointGoal(0, pos(5, 5)))

	for i := 0; i < 5; i++ {
		st, d := step(t, w, c, u, pc)
		require.Equal(t, StatusMove, st)
		assert.Equal(t, SouthEast.Delta(), d)
	}
	assert.Equal(t, pos(5, 5), u.Pos)
	st, d := step(t, w, c, u, pc)
	assert.Equal(t, StatusReached, st)
	assert.Equal(t, maplib.Pos{}, d)
}

func TestNextPathElementLongPathReplans(t *testing.T) {
	w, c := newFixture(t, openRows(40, 1))
	u := spawn(t, w, "scout", maplib.DomainLand, pos(0, 0))
	pc := NewPathCache(PointGoal(0, pos(39, 0)))

	moves := 0
	for {
		st, _ := step(t, w, c, u, pc)
		if st != StatusMove {
			require.Equal(t, StatusReached, st)
			break
		}
		moves++
		require.Less(t, moves, 100)
	}
	assert.Equal(t, 39, moves, "steps beyond the cap come from a second search")
	assert.Equal(t, pos(39, 0), u.Pos)
}

func TestGoalChangeForcesReplan(t *testing.T) {
	w, c := newFixture(t, openRows(10, 10))
	u := spawn(t, w, "scout", maplib.DomainLand, pos(0, 0))
	pc := NewPathCache(PointGoal(0, pos(9, 0)))

	st, d := step(t, w, c, u, pc)
	require.Equal(t, StatusMove, st)
	assert.Equal(t, East.Delta(), d)
	assert.False(t, pc.NeedsRecalc())
	assert.Len(t, pc.Remaining(), 8)

	pc.SetGoal(PointGoal(0, pos(9, 0)))
	assert.False(t, pc.NeedsRecalc(), "same goal keeps the cached path")

	pc.SetGoal(PointGoal(0, pos(1, 9)))
	assert.True(t, pc.NeedsRecalc())
	st, d = step(t, w, c, u, pc)
	require.Equal(t, StatusMove, st)
	assert.Equal(t, South.Delta(), d, "new goal, new path")
	assert.Len(t, pc.Remaining(), 8)

	pc.Invalidate()
	assert.True(t, pc.NeedsRecalc())
}

func TestFootprintChangeForcesReplan(t *testing.T) {
	w, c := newFixture(t, openRows(10, 10))
	u := spawn(t, w, "scout", maplib.DomainLand, pos(0, 0))
	pc := NewPathCache(PointGoal(0, pos(0, 9)))
	st, _ := step(t, w, c, u, pc)
	require.Equal(t, StatusMove, st)
	require.Len(t, pc.Remaining(), 8)

	u.Size = maplib.Size{W: 2, H: 2}
	st, _ = step(t, w, c, u, pc)
	require.Equal(t, StatusMove, st)
	assert.Len(t, pc.Remaining(), 6, "a 2x2 footprint reaches the bottom row sooner")
}

func TestBlockedStepWaitsThenGivesUp(t *testing.T) {
	w, c := newFixture(t, corridor)
	u := spawn(t, w, "tank", maplib.DomainLand, pos(0, 1))
	pc := NewPathCache(PointGoal(0, pos(8, 1)))

	st, _ := step(t, w, c, u, pc)
	require.Equal(t, StatusMove, st)
	spawn(t, w, "wreck", maplib.DomainLand, pos(2, 1))

	for i := 0; i < c.Config().RetryBudget; i++ {
		st, d := step(t, w, c, u, pc)
		require.Equal(t, StatusWait, st, "tick %d", i)
		assert.Equal(t, maplib.Pos{}, d)
		assert.True(t, pc.Waiting())
	}
	st, d := step(t, w, c, u, pc)
	assert.Equal(t, StatusUnreachable, st)
	assert.Equal(t, maplib.Pos{}, d)
	assert.Equal(t, pos(1, 1), u.Pos)
	assert.True(t, pc.NeedsRecalc())

	st, _ = step(t, w, c, u, pc)
	assert.Equal(t, StatusUnreachable, st, "stays unreachable while the wreck is there")
}

func TestReplanIntoMovingBlockerGivesUp(t *testing.T) {
	w, c := newFixture(t, corridor)
	u := spawn(t, w, "tank", maplib.DomainLand, pos(0, 1))
	pc := NewPathCache(PointGoal(0, pos(8, 1)))
	blocker := spawn(t, w, "truck", maplib.DomainLand, pos(1, 1))
	blocker.Moving = true

	for i := 0; i < c.Config().RetryBudget; i++ {
		st, _ := step(t, w, c, u, pc)
		require.Equal(t, StatusWait, st, "tick %d", i)
	}
	st, d := step(t, w, c, u, pc)
	assert.Equal(t, StatusUnreachable, st, "replanned path still starts into the truck")
	assert.Equal(t, maplib.Pos{}, d)
	assert.True(t, pc.NeedsRecalc())
}

func TestWaitEndsWhenBlockerLeaves(t *testing.T) {
	w, c := newFixture(t, corridor)
	u := spawn(t, w, "tank", maplib.DomainLand, pos(0, 1))
	pc := NewPathCache(PointGoal(0, pos(8, 1)))
	blocker := spawn(t, w, "truck", maplib.DomainLand, pos(1, 1))
	blocker.Moving = true

	for i := 0; i < 3; i++ {
		st, _ := step(t, w, c, u, pc)
		require.Equal(t, StatusWait, st)
	}
	require.NoError(t, w.MoveUnit(blocker, pos(8, 1)))
	st, d := step(t, w, c, u, pc)
	require.Equal(t, StatusMove, st)
	assert.Equal(t, East.Delta(), d)
	assert.False(t, pc.Waiting())

	// A fresh blockage gets the full budget again
	require.NoError(t, w.MoveUnit(blocker, pos(2, 1)))
	for i := 0; i < c.Config().RetryBudget; i++ {
		st, _ := step(t, w, c, u, pc)
		require.Equal(t, StatusWait, st, "tick %d", i)
	}
}

func TestGoalOnOtherLayerIsUnreachable(t *testing.T) {
	w, c := newFixture(t, openRows(6, 6), openRows(6, 6))
	u := spawn(t, w, "tank", maplib.DomainLand, pos(0, 0))
	pc := NewPathCache(PointGoal(1, pos(3, 3)))

	for i := 0; i < 3; i++ {
		st, d := step(t, w, c, u, pc)
		require.Equal(t, StatusUnreachable, st, "tick %d", i)
		assert.Equal(t, maplib.Pos{}, d)
	}
	assert.Equal(t, pos(0, 0), u.Pos, "never walks on its own layer")
	assert.Empty(t, pc.Remaining())

	// The same tile on the unit's own layer is a normal goal
	pc.SetGoal(PointGoal(0, pos(3, 3)))
	st, _ := step(t, w, c, u, pc)
	assert.Equal(t, StatusMove, st)

	// Cached steps are dropped once the unit sits on another layer
	u.Layer = 1
	st, _, err := c.NextPathElement(u, pc)
	require.NoError(t, err)
	assert.Equal(t, StatusUnreachable, st)
	assert.True(t, pc.NeedsRecalc())
}

func TestNextPathElementErrors(t *testing.T) {
	w, c := newFixture(t, openRows(4, 4))
	_, _, err := c.NextPathElement(nil, NewPathCache(PointGoal(0, pos(1, 1))))
	assert.ErrorIs(t, err, ErrNilUnit)

	u := spawn(t, w, "tank", maplib.DomainLand, pos(0, 0))
	st, _, err := c.NextPathElement(u, NewPathCache(PointGoal(2, pos(1, 1))))
	assert.ErrorIs(t, err, ErrBadLayer)
	assert.Equal(t, StatusUnreachable, st)
}
