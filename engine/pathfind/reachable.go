package pathfind

import (
	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

// mover returns the unit whose position, footprint and layer a reachability
// query starts from, or nil if src cannot move at all
func mover(src *core.Unit, fromOutsideContainer bool) *core.Unit {
	if src == nil || src.Building || src.Removed {
		return nil
	}
	if src.Container == nil {
		return src
	}
	if !fromOutsideContainer {
		return nil
	}
	outer := src.Container
	for outer.Container != nil {
		outer = outer.Container
	}
	// Move as src would after leaving: src's domain and mask, the outermost
	// container's tiles and identity so the container does not block itself
	m := *src
	m.ID = outer.ID
	m.Pos = outer.Pos
	m.Size = outer.Size
	m.Layer = outer.Layer
	m.Container = nil
	return &m
}

// connected reports whether the component labels leave any chance of a
// path from the mover's tile to within range 1 of the goal footprint. Masks
// spanning several passability classes are never pruned.
func (c *Context) connected(m *core.Unit, l *maplib.Layer, g Goal) bool {
	from := l.At(m.Pos)
	if from == nil {
		return false
	}
	id, ok := from.Component(m.MovementMask)
	if !ok || id == 0 {
		return true
	}
	w := min(g.Size.W, l.Width-g.Pos.X)
	h := min(g.Size.H, l.Height-g.Pos.Y)
	for y := g.Pos.Y; y < g.Pos.Y+h; y++ {
		for x := g.Pos.X; x < g.Pos.X+w; x++ {
			if c.Map.MayReach(id, m.MovementMask, l.At(maplib.Pos{X: x, Y: y})) {
				return true
			}
		}
	}
	return false
}

// reachDistance is the path length to the goal, 1 when already in range, and
// 0 when the goal cannot be reached
func (c *Context) reachDistance(src *core.Unit, g Goal, maxLength int, fromOutsideContainer bool) int {
	m := mover(src, fromOutsideContainer)
	if m == nil || g.Layer != m.Layer {
		return 0
	}
	l := c.layer(g.Layer)
	if l == nil || !l.Contains(g.Pos) {
		return 0
	}
	// Beyond range 1 the tiles that qualify need not share the goal's labels
	if g.MaxRange <= 1 && !c.connected(m, l, g) {
		return 0
	}
	res, err := c.FindPath(m, Request{Start: m.Pos, Size: m.Size, Goal: g, MaxLength: maxLength})
	if err != nil {
		c.log.Debug("reachability query rejected", "unit", src.ID, "err", err)
		return 0
	}
	switch res.Status {
	case StatusReached:
		return 1
	case StatusMove:
		return res.Length
	}
	return 0
}

// PlaceReachable reports whether src can get within range of the goal
// footprint. With fromOutsideContainer a carried unit is treated as standing
// where its container is.
func (c *Context) PlaceReachable(src *core.Unit, g Goal, maxLength int, fromOutsideContainer bool) bool {
	return c.reachDistance(src, g, maxLength, fromOutsideContainer) > 0
}

// UnitReachable returns how many steps src needs to get within rng tiles of
// dst, 1 if it already is, or 0 if it cannot. A range below 1 is treated
// as 1 since a unit cannot stand on another.
func (c *Context) UnitReachable(src, dst *core.Unit, rng, maxLength int, fromOutsideContainer bool) int {
	if dst == nil || !dst.OnMap() {
		return 0
	}
	g := Goal{
		Pos:      dst.Pos,
		Size:     dst.Size,
		MaxRange: max(rng, 1),
		Layer:    dst.Layer,
	}
	return c.reachDistance(src, g, maxLength, fromOutsideContainer)
}
