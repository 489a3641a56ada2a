package pathfind

import (
	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

// PathCache is the per-unit remainder of the last search. It is owned by
// the unit's move order and needs no locking.
type PathCache struct {
	goal  Goal
	size  maplib.Size // mover footprint the steps were computed for
	steps []Direction
	// cursor counts the steps not yet taken; the next one is steps[len-cursor]
	cursor int
	// MaxLength bounds each search (0 = no limit)
	MaxLength int

	wait    int
	waiting bool
	recalc  bool
}

// NewPathCache creates a cache that plans toward g on first use
func NewPathCache(g Goal) *PathCache {
	return &PathCache{goal: g, recalc: true}
}

// Goal returns the current goal
func (pc *PathCache) Goal() Goal { return pc.goal }

// SetGoal changes the goal, forcing a new search only if it differs
func (pc *PathCache) SetGoal(g Goal) {
	if g != pc.goal {
		pc.goal = g
		pc.recalc = true
	}
}

// Invalidate forces a new search on the next step
func (pc *PathCache) Invalidate() { pc.recalc = true }

// NeedsRecalc reports whether the next step will run a search
func (pc *PathCache) NeedsRecalc() bool { return pc.recalc || pc.cursor == 0 }

// Remaining returns the cached headings not yet taken
func (pc *PathCache) Remaining() []Direction {
	if pc.cursor == 0 {
		return nil
	}
	return append([]Direction(nil), pc.steps[len(pc.steps)-pc.cursor:]...)
}

// Waiting reports whether the unit is sitting out a blocked step
func (pc *PathCache) Waiting() bool { return pc.waiting }

func (pc *PathCache) clear() {
	pc.steps = pc.steps[:0]
	pc.cursor = 0
}

// plan searches from u's position and loads the result into the cache
func (c *Context) plan(u *core.Unit, pc *PathCache) (Status, error) {
	res, err := c.FindPath(u, Request{
		Start:     u.Pos,
		Size:      u.Size,
		Goal:      pc.goal,
		MaxLength: pc.MaxLength,
	})
	pc.size = u.Size
	pc.recalc = false
	pc.clear()
	if err != nil {
		pc.recalc = true
		return StatusUnreachable, err
	}
	switch res.Status {
	case StatusMove:
		pc.steps = append(pc.steps, res.Steps...)
		pc.cursor = len(pc.steps)
	case StatusUnreachable:
		pc.recalc = true
	}
	return res.Status, nil
}

func (pc *PathCache) next() Direction {
	return pc.steps[len(pc.steps)-pc.cursor]
}

// NextPathElement returns what unit u should do this tick: StatusMove with
// the one-tile delta to take, StatusReached, StatusWait while a blocked step
// is given time to clear, or StatusUnreachable. A goal on a layer other
// than u's is unreachable. On StatusMove the caller is
// expected to move the unit by the delta before the next call.
//
// A blocked step is waited on for RetryBudget ticks; the path is then
// searched again, and if the new first step is blocked too the goal is
// reported unreachable for this tick.
func (c *Context) NextPathElement(u *core.Unit, pc *PathCache) (Status, maplib.Pos, error) {
	if u == nil {
		return StatusUnreachable, maplib.Pos{}, ErrNilUnit
	}
	// Steps are only valid on the goal's layer. A missing layer is left to
	// plan, which reports it as an error.
	if u.Layer != pc.goal.Layer && c.layer(pc.goal.Layer) != nil {
		c.log.Debug("goal on another layer", "unit", u.ID, "layer", u.Layer, "goal_layer", pc.goal.Layer)
		pc.waiting = false
		pc.recalc = true
		return StatusUnreachable, maplib.Pos{}, nil
	}
	if u.Size != pc.size {
		pc.recalc = true
	}
	if pc.recalc || pc.cursor == 0 {
		st, err := c.plan(u, pc)
		if err != nil || st != StatusMove {
			pc.waiting = false
			return st, maplib.Pos{}, err
		}
	}

	d := pc.next()
	if !c.CanOccupy(u, u.Pos.Add(d.Delta().X, d.Delta().Y)) {
		if !pc.waiting {
			pc.waiting = true
			pc.wait = c.cfg.RetryBudget
		}
		if pc.wait > 0 {
			pc.wait--
			return StatusWait, maplib.Pos{}, nil
		}
		pc.waiting = false
		st, err := c.plan(u, pc)
		if err != nil || st != StatusMove {
			return st, maplib.Pos{}, err
		}
		d = pc.next()
		if !c.CanOccupy(u, u.Pos.Add(d.Delta().X, d.Delta().Y)) {
			c.log.Debug("gave up on blocked step",
				"unit", u.ID, "layer", pc.goal.Layer, "goal", pc.goal.Pos)
			pc.recalc = true
			return StatusUnreachable, maplib.Pos{}, nil
		}
	}

	pc.waiting = false
	pc.wait = 0
	pc.cursor--
	return StatusMove, d.Delta(), nil
}
