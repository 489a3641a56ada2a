package pathfind

import (
	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
)

// CostImpassable is returned by Cost for tiles a unit can never stand on
const CostImpassable = -1

type occupant uint8

const (
	occFree occupant = iota
	occMoving
	occStationary
)

// terrainOK reports whether every tile of a size-s footprint at p is on the
// layer and passable for u's movement mask
func terrainOK(l *maplib.Layer, u *core.Unit, p maplib.Pos, s maplib.Size) bool {
	if !l.RectInBounds(p, s) {
		return false
	}
	air := u.Domain.IsAir()
	for y := p.Y; y < p.Y+s.H; y++ {
		row := y * l.Width
		for x := p.X; x < p.X+s.W; x++ {
			f := l.Tiles[row+x].Flags
			if f&u.MovementMask == 0 {
				return false
			}
			if !air && f&maplib.FlagBuilding != 0 {
				return false
			}
		}
	}
	return true
}

// occupancy returns the strongest blocker on the footprint: a stationary
// blocker outranks a moving one
func (c *Context) occupancy(z int, u *core.Unit, p maplib.Pos, s maplib.Size) occupant {
	if c.Occ == nil {
		return occFree
	}
	worst := occFree
	for y := p.Y; y < p.Y+s.H; y++ {
		for x := p.X; x < p.X+s.W; x++ {
			for _, o := range c.Occ.UnitsAt(z, maplib.Pos{X: x, Y: y}) {
				if o == nil || !o.Blocks(u) {
					continue
				}
				if !o.Moving {
					return occStationary
				}
				worst = occMoving
			}
		}
	}
	return worst
}

// Cost returns the weight of moving a size-s footprint of unit u onto p on
// layer z: CostImpassable for terrain it cannot enter, the soft block cost
// when a stationary unit is in the way, 1 plus the moving unit cost when a
// moving unit is, and 1 otherwise.
func (c *Context) Cost(u *core.Unit, z int, p maplib.Pos, s maplib.Size) int {
	l := c.layer(z)
	if l == nil || !terrainOK(l, u, p, s) {
		return CostImpassable
	}
	switch c.occupancy(z, u, p, s) {
	case occStationary:
		return c.cfg.SoftBlockCost
	case occMoving:
		return 1 + c.cfg.MovingUnitCost
	}
	return 1
}

// CanOccupy reports whether u could stand at p on its layer right now:
// terrain allows it and no other unit is in the way
func (c *Context) CanOccupy(u *core.Unit, p maplib.Pos) bool {
	l := c.layer(u.Layer)
	if l == nil || !terrainOK(l, u, p, u.Size) {
		return false
	}
	return c.occupancy(u.Layer, u, p, u.Size) == occFree
}

// softBlocked reports whether an edge weight comes from a stationary blocker
func (c *Context) softBlocked(cost int) bool {
	return cost >= c.cfg.SoftBlockCost
}
