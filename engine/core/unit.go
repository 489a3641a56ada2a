package core

import "github.com/1siamBot/rts-pathfinder/engine/maplib"

// Unit is anything that stands on the map: a mobile unit or a building
type Unit struct {
	ID    EntityID
	Name  string
	Owner int

	Pos   maplib.Pos  // top-left tile of the footprint
	Layer int         // map layer index
	Size  maplib.Size // footprint in tiles

	Domain       maplib.Domain
	MovementMask maplib.TileFlag // passability classes this unit may enter

	Building    bool // never moves, blocks ground units
	Transparent bool // never blocks other units
	Moving      bool // currently executing a move order

	Container *Unit // transporter or building carrying this unit

	AttackRange int // tiles
	SightRange  int // tiles

	Removed bool
}

// NewUnit creates a 1x1 unit of the given domain using its default mask
func NewUnit(name string, d maplib.Domain, layer int, p maplib.Pos) *Unit {
	return &Unit{
		Name:         name,
		Pos:          p,
		Layer:        layer,
		Size:         maplib.One,
		Domain:       d,
		MovementMask: d.DefaultMask(),
		AttackRange:  1,
		SightRange:   4,
	}
}

// OnMap reports whether the unit currently occupies tiles
func (u *Unit) OnMap() bool { return !u.Removed && u.Container == nil }

// Footprint lists the tiles the unit covers
func (u *Unit) Footprint() []maplib.Pos {
	tiles := make([]maplib.Pos, 0, u.Size.W*u.Size.H)
	for dy := 0; dy < u.Size.H; dy++ {
		for dx := 0; dx < u.Size.W; dx++ {
			tiles = append(tiles, u.Pos.Add(dx, dy))
		}
	}
	return tiles
}

// Blocks reports whether u keeps mover out of the tiles u stands on
func (u *Unit) Blocks(mover *Unit) bool {
	if u == mover || u.ID == mover.ID || u.Transparent || !u.OnMap() {
		return false
	}
	if u.Building {
		return mover.Domain.IsGround()
	}
	return u.Domain.SharesSpace(mover.Domain)
}

// Distance is the Chebyshev gap between the footprints of u and o
// (0 when they overlap)
func (u *Unit) Distance(o *Unit) int {
	return maplib.RectDistance(u.Pos, u.Size, o.Pos, o.Size)
}
