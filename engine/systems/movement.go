package systems

import (
	"log/slog"
	"sort"

	"github.com/1siamBot/rts-pathfinder/engine/core"
	"github.com/1siamBot/rts-pathfinder/engine/maplib"
	"github.com/1siamBot/rts-pathfinder/engine/pathfind"
)

// MoveOrder is a unit's standing order to reach a goal. It owns the unit's
// path cache for as long as the order lives.
type MoveOrder struct {
	Unit   core.EntityID
	Cache  *pathfind.PathCache
	Issued uint64 // tick the order was given
	Waited int    // consecutive ticks spent blocked
}

// MoveResult is the payload of goal and blocking events
type MoveResult struct {
	Goal   pathfind.Goal
	Status pathfind.Status
}

// MovementSystem advances every ordered unit at most one tile per tick
type MovementSystem struct {
	Paths *pathfind.Context
	Log   *slog.Logger

	orders map[core.EntityID]*MoveOrder
}

// NewMovementSystem creates the system and drops orders of destroyed units
func NewMovementSystem(w *core.World, paths *pathfind.Context) *MovementSystem {
	s := &MovementSystem{
		Paths:  paths,
		Log:    slog.Default(),
		orders: make(map[core.EntityID]*MoveOrder),
	}
	w.Events.On(core.EvtUnitDestroyed, func(e core.Event) { delete(s.orders, e.Unit) })
	return s
}

func (s *MovementSystem) Priority() int { return 10 }

// Order sends u toward g, replacing any goal it already had. Re-issuing
// the same goal keeps the cached path.
func (s *MovementSystem) Order(w *core.World, u *core.Unit, g pathfind.Goal) {
	if o, ok := s.orders[u.ID]; ok {
		o.Cache.SetGoal(g)
	} else {
		s.orders[u.ID] = &MoveOrder{Unit: u.ID, Cache: pathfind.NewPathCache(g), Issued: w.TickCount}
	}
	u.Moving = true
	w.Events.Emit(core.Event{Type: core.EvtUnitMoveOrder, Tick: w.TickCount, Unit: u.ID, Payload: g})
	s.Log.Debug("order issued", "unit", u.ID, "layer", g.Layer, "goal", g.Pos, "range", g.MaxRange)
}

// Stop clears u's order
func (s *MovementSystem) Stop(u *core.Unit) {
	delete(s.orders, u.ID)
	u.Moving = false
}

// OrderOf returns the unit's current order, or nil
func (s *MovementSystem) OrderOf(id core.EntityID) *MoveOrder { return s.orders[id] }

// Active returns how many units have orders
func (s *MovementSystem) Active() int { return len(s.orders) }

func (s *MovementSystem) Update(w *core.World, _ float64) {
	// Map order is random; move units in ID order so replays agree
	ids := make([]core.EntityID, 0, len(s.orders))
	for id := range s.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		o := s.orders[id]
		u := w.Unit(id)
		if u == nil || !u.OnMap() {
			delete(s.orders, id)
			continue
		}
		st, d, err := s.Paths.NextPathElement(u, o.Cache)
		if err != nil {
			s.Log.Debug("order rejected", "unit", id, "err", err)
			s.finish(w, u, core.EvtGoalUnreachable, st)
			continue
		}
		switch st {
		case pathfind.StatusMove:
			o.Waited = 0
			if err := w.MoveUnit(u, u.Pos.Add(d.X, d.Y)); err != nil {
				s.Log.Debug("step failed", "unit", id, "err", err)
				o.Cache.Invalidate()
			}
		case pathfind.StatusWait:
			o.Waited++
			w.Events.Emit(core.Event{
				Type:    core.EvtMoveBlocked,
				Tick:    w.TickCount,
				Unit:    id,
				Payload: MoveResult{Goal: o.Cache.Goal(), Status: st},
			})
		case pathfind.StatusReached:
			s.Log.Debug("goal reached", "unit", id, "pos", u.Pos)
			s.finish(w, u, core.EvtGoalReached, st)
		case pathfind.StatusUnreachable:
			s.Log.Debug("goal unreachable", "unit", id, "pos", u.Pos, "goal", o.Cache.Goal().Pos)
			s.finish(w, u, core.EvtGoalUnreachable, st)
		}
	}
}

func (s *MovementSystem) finish(w *core.World, u *core.Unit, evt core.EventType, st pathfind.Status) {
	g := s.orders[u.ID].Cache.Goal()
	s.Stop(u)
	w.Events.Emit(core.Event{
		Type:    evt,
		Tick:    w.TickCount,
		Unit:    u.ID,
		Payload: MoveResult{Goal: g, Status: st},
	})
}

// MoveTo is a convenience for a single-tile goal on the unit's layer
func (s *MovementSystem) MoveTo(w *core.World, u *core.Unit, p maplib.Pos) {
	s.Order(w, u, pathfind.PointGoal(u.Layer, p))
}
