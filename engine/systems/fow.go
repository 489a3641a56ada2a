package systems

import (
	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
)

// FogState represents visibility of a tile
type FogState uint8

const (
	FogShroud   FogState = iota // never seen
	FogExplored                 // seen before but not now
	FogVisible                  // currently visible
)

// FogOfWar manages visibility of one layer for one player
type FogOfWar struct {
	Width, Height int
	Grid          []FogState // per-tile fog state
	PlayerID      int
}

func NewFogOfWar(w, h, playerID int) *FogOfWar {
	return &FogOfWar{
		Width:    w,
		Height:   h,
		Grid:     make([]FogState, w*h),
		PlayerID: playerID,
	}
}

// At returns the fog state at p
func (f *FogOfWar) At(p maplib.Pos) FogState {
	if p.X < 0 || p.Y < 0 || p.X >= f.Width || p.Y >= f.Height {
		return FogShroud
	}
	return f.Grid[p.Y*f.Width+p.X]
}

// IsVisible returns true if tile is currently visible
func (f *FogOfWar) IsVisible(p maplib.Pos) bool {
	return f.At(p) == FogVisible
}

// FogSystem updates fog of war each tick. Each unit sees the tiles within
// SightRange steps of its footprint; allies share what they see.
type FogSystem struct {
	Layer   *maplib.Layer
	Fogs    map[int]*FogOfWar // playerID -> fog
	Players *core.PlayerManager

	tr *pathfind.Traversal
}

func NewFogSystem(l *maplib.Layer, pm *core.PlayerManager) *FogSystem {
	fs := &FogSystem{
		Layer:   l,
		Fogs:    make(map[int]*FogOfWar),
		Players: pm,
		tr:      pathfind.NewTraversal(l),
	}
	for _, p := range pm.Players {
		fs.Fogs[p.ID] = NewFogOfWar(l.Width, l.Height, p.ID)
	}
	return fs
}

func (s *FogSystem) Priority() int { return 2 }

func (s *FogSystem) Update(w *core.World, _ float64) {
	// Demote all visible to explored
	for _, fog := range s.Fogs {
		for i := range fog.Grid {
			if fog.Grid[i] == FogVisible {
				fog.Grid[i] = FogExplored
			}
		}
	}

	for _, u := range w.Units() {
		if !u.OnMap() || u.Layer != s.Layer.Z || s.Fogs[u.Owner] == nil {
			continue
		}
		s.sight(u)
		for _, p := range s.Players.Players {
			if p.ID == u.Owner || !s.Players.AreAllies(u.Owner, p.ID) {
				continue
			}
			if fog := s.Fogs[p.ID]; fog != nil {
				s.reveal(fog, u.SightRange)
			}
		}
		s.reveal(s.Fogs[u.Owner], u.SightRange)
	}
}

// sight labels the tiles u can see in the shared traversal. The footprint
// and the ring around it are 1; anything labelled above SightRange is not
// seen.
func (s *FogSystem) sight(u *core.Unit) {
	s.tr.Init()
	s.tr.PushUnitPosAndNeighbors(u)
	r := u.SightRange
	s.tr.Run(func(t *pathfind.Traversal, _, from maplib.Pos) pathfind.VisitResult {
		if t.Get(from) >= r {
			return pathfind.VisitDeadEnd
		}
		return pathfind.VisitOK
	})
}

func (s *FogSystem) reveal(fog *FogOfWar, r int) {
	r = max(r, 1)
	for i := range fog.Grid {
		p := maplib.Pos{X: i % fog.Width, Y: i / fog.Width}
		if d := s.tr.Get(p); d > 0 && d <= r {
			fog.Grid[i] = FogVisible
		}
	}
}
