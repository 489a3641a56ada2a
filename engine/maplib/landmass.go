package maplib

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

var neighborOffsets = [8]Pos{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// ComputeLandmasses labels, for every layer, the 8-connected components of
// land-passable tiles (Landmass), of water-passable tiles (Sea) and of
// air-passable tiles (World), and records which land and sea components
// border each other. A bridge belongs to both a landmass and a sea, so a
// boat passing under it stays in one sea. Landmass and sea IDs share one
// sequence starting at 1, unique across layers; world IDs have their own.
// 0 means unlabelled. Building flags are ignored, so a base does not split
// its landmass.
func (m *Map) ComputeLandmasses() {
	m.borders = make(map[int]mapset.Set[int])
	m.landmasses = 0
	m.worlds = 0

	for _, l := range m.Layers {
		for i := range l.Tiles {
			t := &l.Tiles[i]
			t.Landmass, t.Sea, t.World = 0, 0, 0
		}
		for i := range l.Tiles {
			t := &l.Tiles[i]
			if t.Landmass == 0 && t.Flags&FlagLand != 0 {
				m.landmasses++
				l.label(i, func(o *Tile) bool {
					return o.Landmass == 0 && o.Flags&FlagLand != 0
				}, func(o *Tile) { o.Landmass = m.landmasses })
			}
			if t.Sea == 0 && t.Flags&FlagWater != 0 {
				m.landmasses++
				l.label(i, func(o *Tile) bool {
					return o.Sea == 0 && o.Flags&FlagWater != 0
				}, func(o *Tile) { o.Sea = m.landmasses })
			}
			if t.World == 0 && t.Flags&FlagAir != 0 {
				m.worlds++
				l.label(i, func(o *Tile) bool {
					return o.World == 0 && o.Flags&FlagAir != 0
				}, func(o *Tile) { o.World = m.worlds })
			}
		}
		m.collectBorders(l)
	}
}

// label flood-fills from tile index start over tiles accepted by want
func (l *Layer) label(start int, want func(*Tile) bool, mark func(*Tile)) {
	q := queue.New[int]()
	mark(&l.Tiles[start])
	q.Enqueue(start)
	for !q.Empty() {
		p := l.PosOf(q.Dequeue())
		for _, d := range neighborOffsets {
			np := Pos{p.X + d.X, p.Y + d.Y}
			if !l.Contains(np) {
				continue
			}
			idx := l.Index(np)
			if want(&l.Tiles[idx]) {
				mark(&l.Tiles[idx])
				q.Enqueue(idx)
			}
		}
	}
}

// collectBorders pairs every landmass with the seas on its own tiles and
// on the 8 tiles around them
func (m *Map) collectBorders(l *Layer) {
	for i := range l.Tiles {
		a := l.Tiles[i].Landmass
		if a == 0 {
			continue
		}
		if s := l.Tiles[i].Sea; s != 0 {
			addPair(m.borders, a, s)
		}
		p := l.PosOf(i)
		for _, d := range neighborOffsets {
			o := l.At(Pos{p.X + d.X, p.Y + d.Y})
			if o != nil && o.Sea != 0 {
				addPair(m.borders, a, o.Sea)
			}
		}
	}
}

func addPair(sets map[int]mapset.Set[int], a, b int) {
	if _, ok := sets[a]; !ok {
		sets[a] = mapset.New[int]()
	}
	if _, ok := sets[b]; !ok {
		sets[b] = mapset.New[int]()
	}
	sets[a].Put(b)
	sets[b].Put(a)
}

// LinkLandmasses records that two landmasses or seas connect through
// something the tile grid cannot see, such as a tunnel between layers.
// Links survive ComputeLandmasses only while tile labels stay the same.
func (m *Map) LinkLandmasses(a, b int) {
	if a == 0 || b == 0 || a == b {
		return
	}
	if m.links == nil {
		m.links = make(map[int]mapset.Set[int])
	}
	addPair(m.links, a, b)
}

// Linked reports whether LinkLandmasses joined a and b
func (m *Map) Linked(a, b int) bool {
	s, ok := m.links[a]
	return ok && s.Has(b)
}

// LandmassCount returns how many landmasses and seas the last labelling
// produced
func (m *Map) LandmassCount() int { return m.landmasses }

// WorldCount returns how many air-connected worlds the last labelling produced
func (m *Map) WorldCount() int { return m.worlds }

// HasBorderLandmass reports whether landmass a touches sea b, or sea a
// touches landmass b
func (m *Map) HasBorderLandmass(a, b int) bool {
	s, ok := m.borders[a]
	return ok && s.Has(b)
}

// BorderLandmasses lists the components touching id, in ascending order
func (m *Map) BorderLandmasses(id int) []int {
	s, ok := m.borders[id]
	if !ok {
		return nil
	}
	out := make([]int, 0, s.Size())
	s.Each(func(b int) { out = append(out, b) })
	sort.Ints(out)
	return out
}

// MayReach reports whether a mover of the single-class mask whose own
// tile has component id could end up on or next to tile t. It is a
// necessary condition for a path of range at most 1, never a sufficient
// one: it answers true whenever the labels say nothing.
func (m *Map) MayReach(id int, mask TileFlag, t *Tile) bool {
	if t == nil {
		return false
	}
	other, ok := t.Component(mask)
	if !ok || id == 0 {
		return true
	}
	ground := mask&FlagAir == 0
	if other != 0 {
		return other == id || (ground && m.Linked(id, other))
	}
	// t is outside the mover's class: a tile next to it must border it
	switch mask & FlagPassAll {
	case FlagLand:
		if t.Sea != 0 {
			return m.HasBorderLandmass(id, t.Sea)
		}
	case FlagWater:
		if t.Landmass != 0 {
			return m.HasBorderLandmass(id, t.Landmass)
		}
	}
	return true
}
