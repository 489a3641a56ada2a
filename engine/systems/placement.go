package systems

import (
	"errors"
	"fmt"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
)

// ErrNoRoom is returned when no free tile exists near a building
var ErrNoRoom = errors.New("no free tile nearby")

// PlaceNear finds the tile closest to near's footprint where u could stand
// right now, searching at most maxDist rings out. u's layer is taken from
// near. Candidates are tried in breadth-first order around near, so the
// result is deterministic.
func PlaceNear(paths *pathfind.Context, u, near *core.Unit, maxDist int) (maplib.Pos, bool) {
	l := paths.Map.Layer(near.Layer)
	if l == nil {
		return maplib.Pos{}, false
	}
	cand := *u
	cand.Layer = near.Layer
	cand.Container = nil
	cand.Removed = false

	tr := pathfind.NewTraversal(l)
	// The ring touching the footprint is seeded, so check it first
	for y := near.Pos.Y - 1; y <= near.Pos.Y+near.Size.H; y++ {
		for x := near.Pos.X - 1; x <= near.Pos.X+near.Size.W; x++ {
			p := maplib.Pos{X: x, Y: y}
			if l.Contains(p) && paths.CanOccupy(&cand, p) {
				return p, true
			}
		}
	}
	tr.PushUnitPosAndNeighbors(near)

	passable := paths.Passable(&cand)
	var found maplib.Pos
	ok := tr.Run(func(t *pathfind.Traversal, p, from maplib.Pos) pathfind.VisitResult {
		if t.Get(from) >= maxDist || !passable(p) {
			return pathfind.VisitDeadEnd
		}
		if paths.CanOccupy(&cand, p) {
			found = p
			return pathfind.VisitFinished
		}
		return pathfind.VisitOK
	})
	return found, ok
}

// SpawnNear puts u on the map next to near, the way a factory releases a
// finished unit
func SpawnNear(w *core.World, paths *pathfind.Context, u, near *core.Unit, maxDist int) error {
	p, ok := PlaceNear(paths, u, near, maxDist)
	if !ok {
		return fmt.Errorf("spawn %q near %q: %w", u.Name, near.Name, ErrNoRoom)
	}
	u.Layer = near.Layer
	u.Pos = p
	if _, err := w.Spawn(u); err != nil {
		return err
	}
	return nil
}
